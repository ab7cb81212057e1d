package picker

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
)

// Builtin is a filterable Bubble Tea list rendered on stderr.
type Builtin struct {
	theme   Theme
	height  int
	onTheme func(name string)
}

// NewBuiltin returns a builtin picker. height caps the list height; zero
// uses the terminal height. onTheme, when set, receives the theme name each
// time the user cycles themes with ctrl+t.
func NewBuiltin(themeName string, height int, onTheme func(name string)) *Builtin {
	return &Builtin{theme: ThemeByName(themeName), height: height, onTheme: onTheme}
}

// Pick blocks until the user chooses or cancels.
func (b *Builtin) Pick(ctx context.Context, prompt string, options []string) (Selection, error) {
	model := newPickModel(prompt, options, b.theme, b.height)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return Selection{}, fmt.Errorf("run picker: %w", err)
	}
	m, ok := final.(pickModel)
	if !ok {
		return Selection{}, fmt.Errorf("unexpected picker model %T", final)
	}
	if m.theme.Name != b.theme.Name {
		b.theme = m.theme
		if b.onTheme != nil {
			b.onTheme(m.theme.Name)
		}
	}
	return m.selection(), nil
}

type option string

func (o option) FilterValue() string { return string(o) }
func (o option) Title() string       { return string(o) }
func (o option) Description() string { return "" }

type pickModel struct {
	list      list.Model
	theme     Theme
	maxHeight int
	value     string
	chosen    bool
}

func newPickModel(prompt string, options []string, theme Theme, maxHeight int) pickModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = option(o)
	}
	height := defaultHeight
	if maxHeight > 0 {
		height = maxHeight
	}
	l := list.New(items, theme.delegate(), defaultWidth, height)
	l.Title = prompt
	l.Styles.Title = theme.titleStyle()
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	return pickModel{list: l, theme: theme, maxHeight: maxHeight}
}

func (m pickModel) Init() tea.Cmd { return nil }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height
		if m.maxHeight > 0 && height > m.maxHeight {
			height = m.maxHeight
		}
		m.list.SetSize(msg.Width, height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(option); ok {
				m.value = string(item)
			}
			m.chosen = true
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, tea.Quit
		case "q":
			return m, tea.Quit
		case "ctrl+t":
			m.theme = nextTheme(m.theme.Name)
			m.list.SetDelegate(m.theme.delegate())
			m.list.Styles.Title = m.theme.titleStyle()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	return m.list.View()
}

func (m pickModel) selection() Selection {
	if !m.chosen {
		return Selection{Cancelled: true}
	}
	return Selection{Value: m.value}
}

func nextTheme(current string) Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return themes[names[(i+1)%len(names)]]
		}
	}
	return themes[DefaultTheme]
}
