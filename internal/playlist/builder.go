package playlist

import (
	"context"
	"fmt"

	"github.com/five82/mediabrowse/internal/location"
	"github.com/five82/mediabrowse/internal/media"
)

// Lister lists the entries of a location.
type Lister interface {
	List(ctx context.Context, loc location.Location) []media.Entry
}

// Builder constructs the playback queue artifact for a selection.
type Builder struct {
	lister Lister
	path   string
}

// NewBuilder returns a Builder that writes its artifact to path.
func NewBuilder(lister Lister, path string) *Builder {
	return &Builder{lister: lister, path: path}
}

// Path returns where the artifact is written.
func (b *Builder) Path() string { return b.path }

// Build lists loc, queues every media file starting at selected, and
// overwrites the artifact. A selection that is not in the listing yields an
// empty queue and a header-only artifact; callers must treat that as a no-op.
func (b *Builder) Build(ctx context.Context, loc location.Location, selected string) (Queue, error) {
	q := FromEntries(loc, b.lister.List(ctx, loc)).TruncateAt(loc.Locator(selected))
	if err := WriteFile(b.path, q); err != nil {
		return q, fmt.Errorf("write playlist: %w", err)
	}
	return q, nil
}
