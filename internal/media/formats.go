package media

import (
	"path/filepath"
	"strings"
)

var supportedExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".webm": true,
	".flv":  true,
	".mov":  true,
	".wmv":  true,
	".m4v":  true,
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".aac":  true,
	".ogg":  true,
	".m4a":  true,
	".gif":  true,
}

// IsSupported reports whether name carries a playable extension. The match is
// case-insensitive.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return supportedExtensions[ext]
}
