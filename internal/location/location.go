// Package location models a browsable collection: a local directory or a
// remote HTTP directory index.
package location

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Location is a normalized collection address. The zero value is invalid.
// Internally it never carries a trailing separator; WithSlash appends one for
// listing.
type Location struct {
	raw    string
	remote bool
}

// Parse normalizes s into a Location. Strings with an http or https scheme
// are remote; everything else is treated as a filesystem path.
func Parse(s string) Location {
	trimmed := strings.TrimSpace(s)
	if IsRemoteString(trimmed) {
		schemeEnd := strings.Index(trimmed, "://") + len("://")
		host := trimmed[:schemeEnd]
		rest := strings.TrimRight(trimmed[schemeEnd:], "/")
		return Location{raw: host + rest, remote: true}
	}
	if trimmed == "" {
		return Location{}
	}
	return Location{raw: filepath.Clean(trimmed)}
}

// IsRemoteString reports whether s looks like an HTTP index URL.
func IsRemoteString(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// String returns the normalized form without a trailing separator.
func (l Location) String() string { return l.raw }

// IsZero reports whether l was never set.
func (l Location) IsZero() bool { return l.raw == "" }

// IsRemote reports whether l addresses an HTTP index.
func (l Location) IsRemote() bool { return l.remote }

// WithSlash returns the address with exactly one trailing separator, the form
// used when listing.
func (l Location) WithSlash() string {
	sep := string(filepath.Separator)
	if l.remote {
		sep = "/"
	}
	if strings.HasSuffix(l.raw, sep) {
		return l.raw
	}
	return l.raw + sep
}

// Locator joins a child name onto l. Remote names are percent-encoded; local
// names are joined as plain paths.
func (l Location) Locator(name string) string {
	name = strings.TrimSuffix(name, "/")
	if l.remote {
		return l.raw + "/" + Escape(name)
	}
	return filepath.Join(l.raw, name)
}

// Child descends into the named sub-collection.
func (l Location) Child(name string) Location {
	if l.remote {
		return Location{raw: l.Locator(name), remote: true}
	}
	return Parse(l.Locator(name))
}

// Parent returns the enclosing collection. The parent of a root (filesystem
// root or a bare scheme://host) is itself.
func (l Location) Parent() Location {
	if !l.remote {
		return Location{raw: filepath.Dir(l.raw)}
	}
	schemeEnd := strings.Index(l.raw, "://") + len("://")
	idx := strings.LastIndex(l.raw, "/")
	if idx < schemeEnd {
		return l
	}
	return Location{raw: l.raw[:idx], remote: true}
}

// Contains reports whether other is l or lies beneath it.
func (l Location) Contains(other Location) bool {
	if l.remote != other.remote || l.raw == "" {
		return false
	}
	if l.raw == other.raw {
		return true
	}
	return strings.HasPrefix(other.raw, strings.TrimSuffix(l.WithSlash(), "/")+separator(l))
}

func separator(l Location) string {
	if l.remote {
		return "/"
	}
	return string(filepath.Separator)
}

// ParentOf returns the collection holding the item addressed by locator.
func ParentOf(locator string) Location {
	return Parse(locator).Parent()
}

// Escape percent-encodes a single path segment. The output is canonical:
// Escape(Unescape(x)) is stable for any x that Unescape accepts.
func Escape(name string) string {
	return url.PathEscape(name)
}

// Unescape percent-decodes a path segment. Malformed escapes are returned
// verbatim so listings never lose entries.
func Unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// ExpandPath resolves a leading "~" against the home directory and returns
// an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, trimmed[1:])
	}
	return filepath.Abs(trimmed)
}
