// Package config loads mediabrowse configuration.
//
// # Overview
//
// Configuration is read once at startup into an immutable Config value that
// is handed to every component. Nothing else reads the environment or a
// config file after that point.
//
// # Configuration Discovery
//
// Resolve follows this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mediabrowse/config.toml (default)
//  3. If the file doesn't exist, fall back to hardcoded defaults
//  4. Apply non-empty command-line overrides
//  5. Expand paths and require a media root
//
// # File Formats
//
// TOML is the default. A path ending in .yaml or .yml is parsed as YAML
// with the same keys:
//
//	media_root = "http://nas.local/media"
//	video_player = "mpv"
//	resume_player = "mpv --save-position-on-quit"
//	fuzzy_finder = "fzf"          # or "builtin"
//	m3u_file = "~/.cache/mediabrowse/playlist.m3u"
//	cache_dir = "~/.cache/mediabrowse/continue"
//	download_tool = "wget -c"
//	preferred_order = ["movies/", "tv/"]
//	log_level = "info"
//	request_timeout = "15s"
//
// # Path Expansion
//
// Tilde and relative paths are expanded for media_root (local roots only),
// m3u_file and cache_dir. An http(s) media root is kept verbatim.
//
// # Error Handling
//
// Load returns errors for unreadable or malformed files and bad durations.
// Missing files are NOT an error. Resolve additionally returns
// ErrNoMediaRoot when neither the file nor the overrides name a media root.
package config
