package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/mediabrowse/internal/location"
)

// ErrNoMediaRoot is returned when no media root is configured.
var ErrNoMediaRoot = errors.New("media root is not set")

// Config is loaded once at startup and passed to every component.
type Config struct {
	MediaRoot      string
	VideoPlayer    string
	ResumePlayer   string
	FuzzyFinder    string
	M3UFile        string
	CacheDir       string
	DownloadTool   string
	PreferredOrder []string
	LogLevel       string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/mediabrowse/config.toml"
	defaultVideoPlayer    = "mpv"
	defaultResumePlayer   = "mpv --save-position-on-quit"
	defaultFuzzyFinder    = "fzf"
	defaultM3UFile        = "~/.cache/mediabrowse/playlist.m3u"
	defaultCacheDir       = "~/.cache/mediabrowse/continue"
	defaultDownloadTool   = "wget -c"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 15 * time.Second
)

// Overrides carry command-line values. Empty fields leave the file value
// in place.
type Overrides struct {
	MediaRoot      string
	VideoPlayer    string
	ResumePlayer   string
	FuzzyFinder    string
	M3UFile        string
	CacheDir       string
	DownloadTool   string
	PreferredOrder []string
	LogLevel       string
}

type fileConfig struct {
	MediaRoot      string   `toml:"media_root" yaml:"media_root"`
	VideoPlayer    string   `toml:"video_player" yaml:"video_player"`
	ResumePlayer   string   `toml:"resume_player" yaml:"resume_player"`
	FuzzyFinder    string   `toml:"fuzzy_finder" yaml:"fuzzy_finder"`
	M3UFile        string   `toml:"m3u_file" yaml:"m3u_file"`
	CacheDir       string   `toml:"cache_dir" yaml:"cache_dir"`
	DownloadTool   string   `toml:"download_tool" yaml:"download_tool"`
	PreferredOrder []string `toml:"preferred_order" yaml:"preferred_order"`
	LogLevel       string   `toml:"log_level" yaml:"log_level"`
	RequestTimeout string   `toml:"request_timeout" yaml:"request_timeout"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		VideoPlayer:    defaultVideoPlayer,
		ResumePlayer:   defaultResumePlayer,
		FuzzyFinder:    defaultFuzzyFinder,
		M3UFile:        defaultM3UFile,
		CacheDir:       defaultCacheDir,
		DownloadTool:   defaultDownloadTool,
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
	}
}

// Resolve loads the file at path, applies overrides, expands paths and
// checks that a media root is set.
func Resolve(path string, o Overrides) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	cfg = cfg.Apply(o)
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Files ending in .yaml or .yml are parsed as YAML, anything
// else as TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.MediaRoot, raw.MediaRoot)
	setString(&cfg.VideoPlayer, raw.VideoPlayer)
	setString(&cfg.ResumePlayer, raw.ResumePlayer)
	setString(&cfg.FuzzyFinder, raw.FuzzyFinder)
	setString(&cfg.M3UFile, raw.M3UFile)
	setString(&cfg.CacheDir, raw.CacheDir)
	setString(&cfg.DownloadTool, raw.DownloadTool)
	setString(&cfg.LogLevel, raw.LogLevel)
	if order := cleanList(raw.PreferredOrder); len(order) > 0 {
		cfg.PreferredOrder = order
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// Apply returns a copy of c with non-empty overrides applied.
func (c Config) Apply(o Overrides) Config {
	setString(&c.MediaRoot, o.MediaRoot)
	setString(&c.VideoPlayer, o.VideoPlayer)
	setString(&c.ResumePlayer, o.ResumePlayer)
	setString(&c.FuzzyFinder, o.FuzzyFinder)
	setString(&c.M3UFile, o.M3UFile)
	setString(&c.CacheDir, o.CacheDir)
	setString(&c.DownloadTool, o.DownloadTool)
	setString(&c.LogLevel, o.LogLevel)
	if order := cleanList(o.PreferredOrder); len(order) > 0 {
		c.PreferredOrder = order
	} else {
		c.PreferredOrder = append([]string(nil), c.PreferredOrder...)
	}
	return c
}

// Validate reports fatal configuration problems.
func (c Config) Validate() error {
	if strings.TrimSpace(c.MediaRoot) == "" {
		return ErrNoMediaRoot
	}
	return nil
}

// MediaLocation returns the media root as a location.
func (c Config) MediaLocation() location.Location {
	return location.Parse(c.MediaRoot)
}

// CacheLocation returns the resume cache directory as a location.
func (c Config) CacheLocation() location.Location {
	return location.Parse(c.CacheDir)
}

func (c *Config) normalize() error {
	if root := strings.TrimSpace(c.MediaRoot); root != "" && !location.IsRemoteString(root) {
		expanded, err := location.ExpandPath(root)
		if err != nil {
			return fmt.Errorf("media root: %w", err)
		}
		c.MediaRoot = expanded
	}
	m3u, err := location.ExpandPath(c.M3UFile)
	if err != nil {
		return fmt.Errorf("m3u file: %w", err)
	}
	c.M3UFile = m3u
	cacheDir, err := location.ExpandPath(c.CacheDir)
	if err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	c.CacheDir = cacheDir
	return nil
}

// SplitList parses a comma-separated flag value.
func SplitList(value string) []string {
	return cleanList(strings.Split(value, ","))
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func setString(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	return location.ExpandPath(path)
}
