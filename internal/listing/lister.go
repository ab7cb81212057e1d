// Package listing enumerates the entries of a location and applies the
// user's preferred category order.
package listing

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/index"
	"github.com/five82/mediabrowse/internal/location"
	"github.com/five82/mediabrowse/internal/media"
)

// Lister lists local directories and remote indexes. Failures never surface
// as errors: a missing or unreachable location lists as empty.
type Lister struct {
	fetcher index.Fetcher
	logger  zerolog.Logger
}

// NewLister returns a Lister that uses fetcher for remote locations.
func NewLister(fetcher index.Fetcher, logger zerolog.Logger) *Lister {
	return &Lister{fetcher: fetcher, logger: logger}
}

// List returns the immediate children of loc. Collections carry a trailing
// slash.
func (l *Lister) List(ctx context.Context, loc location.Location) []media.Entry {
	if loc.IsZero() {
		return nil
	}
	var names []string
	if loc.IsRemote() {
		names = l.listRemote(ctx, loc)
	} else {
		names = l.listLocal(loc)
	}
	if len(names) == 0 {
		return nil
	}
	entries := make([]media.Entry, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		entries = append(entries, media.NewEntry(name))
	}
	return entries
}

func (l *Lister) listRemote(ctx context.Context, loc location.Location) []string {
	if l.fetcher == nil {
		l.logger.Warn().Str("location", loc.String()).Msg("no index client configured")
		return nil
	}
	names, err := l.fetcher.FetchNames(ctx, loc.WithSlash())
	if err != nil {
		l.logger.Warn().Err(err).Str("location", loc.String()).Msg("remote listing failed")
		return nil
	}
	return names
}

func (l *Lister) listLocal(loc location.Location) []string {
	dir := loc.WithSlash()
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn().Err(err).Str("location", loc.String()).Msg("local listing failed")
		}
		return nil
	}
	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		// Pickers take one option per line.
		if strings.ContainsAny(name, "\r\n") {
			l.logger.Warn().Str("location", loc.String()).Str("entry", strconv.Quote(name)).Msg("skipping name containing a line break")
			continue
		}
		if isDir(dir, e) {
			name += "/"
		}
		names = append(names, name)
	}
	return names
}

func isDir(dir string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}
