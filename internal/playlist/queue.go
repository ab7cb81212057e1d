package playlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/five82/mediabrowse/internal/location"
	"github.com/five82/mediabrowse/internal/media"
)

const (
	// Header is the first line of every playback queue artifact.
	Header = "#EXTM3U"
	// MarkerPrefix starts the display-metadata line preceding each locator.
	MarkerPrefix = "#EXTINF:"
)

// Item is one queued media file.
type Item struct {
	Title   string
	Locator string
}

// Queue is an ordered playback queue.
type Queue struct {
	Items []Item
}

// FromEntries builds a queue of every media file in entries, in order,
// addressed relative to loc.
func FromEntries(loc location.Location, entries []media.Entry) Queue {
	var q Queue
	for _, e := range media.FilterMedia(entries) {
		q.Items = append(q.Items, Item{Title: e.Name, Locator: loc.Locator(e.Name)})
	}
	return q
}

// Len returns the number of queued items.
func (q Queue) Len() int { return len(q.Items) }

// IsEmpty reports whether nothing is queued.
func (q Queue) IsEmpty() bool { return len(q.Items) == 0 }

// Locators returns the locators in queue order.
func (q Queue) Locators() []string {
	if len(q.Items) == 0 {
		return nil
	}
	out := make([]string, len(q.Items))
	for i, item := range q.Items {
		out[i] = item.Locator
	}
	return out
}

// Index returns the position of the first item whose locator equals locator,
// or -1.
func (q Queue) Index(locator string) int {
	for i, item := range q.Items {
		if item.Locator == locator {
			return i
		}
	}
	return -1
}

// TruncateAt drops every item before the first occurrence of locator. When
// locator is absent the result is empty.
func (q Queue) TruncateAt(locator string) Queue {
	idx := q.Index(locator)
	if idx < 0 {
		return Queue{}
	}
	items := make([]Item, len(q.Items)-idx)
	copy(items, q.Items[idx:])
	return Queue{Items: items}
}

// Parents returns the distinct parent locations of the queued items in order
// of first appearance.
func (q Queue) Parents() []location.Location {
	var out []location.Location
	seen := make(map[location.Location]bool)
	for _, item := range q.Items {
		parent := location.ParentOf(item.Locator)
		if parent.IsZero() || seen[parent] {
			continue
		}
		seen[parent] = true
		out = append(out, parent)
	}
	return out
}

// Marshal renders q as an extended m3u artifact.
func (q Queue) Marshal() []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	for _, item := range q.Items {
		fmt.Fprintf(&buf, "%s-1,%s\n%s\n", MarkerPrefix, sanitizeTitle(item.Title), item.Locator)
	}
	return buf.Bytes()
}

// MarshalDownloadList renders only the locator lines.
func (q Queue) MarshalDownloadList() []byte {
	var buf bytes.Buffer
	for _, item := range q.Items {
		buf.WriteString(item.Locator)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Unmarshal parses an m3u artifact. Lines are read leniently: a locator without
// a preceding marker gets its base name as title, and a missing header is
// tolerated.
func Unmarshal(r io.Reader) (Queue, error) {
	var q Queue
	var title string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			continue
		case strings.HasPrefix(line, MarkerPrefix):
			title = markerTitle(line)
		case strings.HasPrefix(line, "#"):
			continue
		default:
			if title == "" {
				title = locatorTitle(line)
			}
			q.Items = append(q.Items, Item{Title: title, Locator: line})
			title = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return Queue{}, fmt.Errorf("read playlist: %w", err)
	}
	return q, nil
}

// locatorTitle names an unmarked locator by its last segment. Only remote
// locators are percent-encoded.
func locatorTitle(locator string) string {
	if location.IsRemoteString(locator) {
		return location.Unescape(path.Base(locator))
	}
	return filepath.Base(locator)
}

func markerTitle(line string) string {
	rest := strings.TrimPrefix(line, MarkerPrefix)
	if idx := strings.Index(rest, ","); idx >= 0 {
		return rest[idx+1:]
	}
	return rest
}

func sanitizeTitle(title string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(title)
}
