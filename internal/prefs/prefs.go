// Package prefs persists the builtin picker's look: theme and list height.
// The file lives at ~/.config/mediabrowse/prefs.toml unless overridden.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/mediabrowse/internal/location"
	"github.com/five82/mediabrowse/internal/picker"
)

// DefaultPath is used when no path is given.
const DefaultPath = "~/.config/mediabrowse/prefs.toml"

// Prefs holds user preferences for the builtin picker. Height zero follows
// the terminal.
type Prefs struct {
	Theme  string `toml:"theme"`
	Height int    `toml:"height"`
}

// Defaults returns the preferences used before anything is saved.
func Defaults() Prefs {
	return Prefs{Theme: picker.DefaultTheme}
}

// File is a preferences file at a resolved path.
type File struct {
	path string
}

// Open resolves path, or DefaultPath when empty. The file itself need not
// exist.
func Open(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	resolved, err := location.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	return &File{path: resolved}, nil
}

// Path returns the resolved file path.
func (f *File) Path() string { return f.path }

// Load reads the file. A missing or unparsable file yields Defaults; invalid
// fields are reset individually.
func (f *File) Load() Prefs {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Defaults()
	}
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// Save writes p, creating parent directories.
func (f *File) Save(p Prefs) error {
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// SetTheme records a theme change, keeping the other fields on disk.
func (f *File) SetTheme(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("theme name is empty")
	}
	p := f.Load()
	p.Theme = name
	return f.Save(p)
}

func (p Prefs) normalized() Prefs {
	p.Theme = picker.ThemeByName(p.Theme).Name
	if p.Height < 0 {
		p.Height = 0
	}
	return p
}
