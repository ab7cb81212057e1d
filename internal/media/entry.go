// Package media classifies listed names into collections, playable files and
// resume artifacts.
package media

import (
	"path"
	"strings"
)

// PlaylistSuffix marks a persisted playback queue (resume artifact).
const PlaylistSuffix = ".m3u"

// Kind is the classification of a listed name, decided once at listing time.
type Kind int

const (
	KindUnknown Kind = iota
	KindCollection
	KindMediaFile
	KindResumeArtifact
)

func (k Kind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindMediaFile:
		return "media"
	case KindResumeArtifact:
		return "resume"
	default:
		return "unknown"
	}
}

// Entry is one name returned by listing a location. Name is the decoded form
// as presented to the user; collections keep their trailing slash.
type Entry struct {
	Name string
	Kind Kind
}

// NewEntry classifies name.
func NewEntry(name string) Entry {
	return Entry{Name: name, Kind: Classify(name)}
}

// Classify derives the entry kind from its name alone.
func Classify(name string) Kind {
	switch {
	case strings.HasSuffix(name, "/"):
		return KindCollection
	case strings.HasSuffix(strings.ToLower(name), PlaylistSuffix):
		return KindResumeArtifact
	case IsSupported(name):
		return KindMediaFile
	default:
		return KindUnknown
	}
}

// IsCollection reports whether e is a sub-collection.
func (e Entry) IsCollection() bool { return e.Kind == KindCollection }

// BaseName strips the trailing slash of a collection name.
func (e Entry) BaseName() string {
	return path.Base(strings.TrimSuffix(e.Name, "/"))
}

// Names returns the raw names of entries in order.
func Names(entries []Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// FilterMedia keeps media files, preserving order.
func FilterMedia(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == KindMediaFile {
			out = append(out, e)
		}
	}
	return out
}
