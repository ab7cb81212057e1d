package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/playlist"
)

// Report summarizes one poll pass.
type Report struct {
	Slots     int
	Refreshed int
	Emptied   int
	Failed    int
}

// Poller refreshes every slot against the locations its items came from.
type Poller struct {
	cache  *Cache
	lister playlist.Lister
	logger zerolog.Logger
}

// NewPoller returns a Poller over cache.
func NewPoller(cache *Cache, lister playlist.Lister, logger zerolog.Logger) *Poller {
	return &Poller{cache: cache, lister: lister, logger: logger}
}

// PollAll refreshes each slot once. Each slot's new content is computed in
// full and swapped in atomically, so concurrent readers see old or new
// content only. A slot removed or rewritten while its parents are being
// listed is left as the user left it. Per-slot failures are collected and
// the pass continues.
func (p *Poller) PollAll(ctx context.Context) (Report, error) {
	var report Report
	names, err := p.cache.Slots()
	if err != nil {
		return report, err
	}
	report.Slots = len(names)

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		changed, empty, err := p.refresh(ctx, name)
		switch {
		case err != nil:
			report.Failed++
			errs = append(errs, err)
			p.logger.Warn().Err(err).Str("slot", name).Msg("resume slot refresh failed")
		case changed && empty:
			report.Emptied++
			p.logger.Info().Str("slot", name).Msg("resume slot items no longer available")
		case changed:
			report.Refreshed++
		}
	}
	return report, errors.Join(errs...)
}

func (p *Poller) refresh(ctx context.Context, name string) (changed, empty bool, err error) {
	path := p.cache.SlotPath(name)
	current, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("read slot %s: %w", name, err)
	}
	old, err := playlist.Unmarshal(bytes.NewReader(current))
	if err != nil {
		return false, false, fmt.Errorf("parse slot %s: %w", name, err)
	}

	fresh := Rebuild(ctx, p.lister, old)
	next := fresh.Marshal()
	if bytes.Equal(next, current) {
		return false, fresh.IsEmpty(), nil
	}
	// The listing above may be slow; a slot removed or re-saved meanwhile wins.
	written, err := playlist.WriteAtomicIfUnchanged(path, current, next)
	if err != nil {
		return false, false, fmt.Errorf("write slot %s: %w", name, err)
	}
	if !written {
		p.logger.Debug().Str("slot", name).Msg("resume slot changed during refresh, skipped")
		return false, false, nil
	}
	return true, fresh.IsEmpty(), nil
}

// Rebuild re-lists every parent location old refers to and anchors the
// result at the first of old's items that still exists, keeping the
// remembered position. When none survive the result is empty.
func Rebuild(ctx context.Context, lister playlist.Lister, old playlist.Queue) playlist.Queue {
	var fresh playlist.Queue
	for _, parent := range old.Parents() {
		fresh.Items = append(fresh.Items, playlist.FromEntries(parent, lister.List(ctx, parent)).Items...)
	}
	for _, item := range old.Items {
		if fresh.Index(item.Locator) >= 0 {
			return fresh.TruncateAt(item.Locator)
		}
	}
	return playlist.Queue{}
}
