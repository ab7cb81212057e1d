package picker

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors the builtin picker.
type Theme struct {
	Name   string
	Text   string
	Muted  string
	Accent string
	Title  string
}

// DefaultTheme is used when a preference names no known theme.
const DefaultTheme = "Dracula"

var themes = map[string]Theme{
	"Dracula": {Name: "Dracula", Text: "#F8F8F2", Muted: "#6272A4", Accent: "#FF79C6", Title: "#282A36"},
	"Slate":   {Name: "Slate", Text: "#E2E8F0", Muted: "#64748B", Accent: "#38BDF8", Title: "#0F172A"},
	"Nord":    {Name: "Nord", Text: "#ECEFF4", Muted: "#4C566A", Accent: "#88C0D0", Title: "#2E3440"},
}

// ThemeNames lists the available themes alphabetically.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName finds a theme case-insensitively, falling back to the default.
func ThemeByName(name string) Theme {
	for key, theme := range themes {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			return theme
		}
	}
	return themes[DefaultTheme]
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Title)).
		Background(lipgloss.Color(t.Accent)).
		Bold(true).
		Padding(0, 1)
}

func (t Theme) delegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(lipgloss.Color(t.Text))
	d.Styles.DimmedTitle = d.Styles.DimmedTitle.Foreground(lipgloss.Color(t.Muted))
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(lipgloss.Color(t.Accent)).
		BorderLeftForeground(lipgloss.Color(t.Accent))
	return d
}
