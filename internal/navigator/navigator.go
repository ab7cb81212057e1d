package navigator

import (
	"bytes"
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/listing"
	"github.com/five82/mediabrowse/internal/location"
	"github.com/five82/mediabrowse/internal/media"
	"github.com/five82/mediabrowse/internal/picker"
	"github.com/five82/mediabrowse/internal/player"
	"github.com/five82/mediabrowse/internal/playlist"
)

// Lister lists the entries of a location.
type Lister interface {
	List(ctx context.Context, loc location.Location) []media.Entry
}

// QueueBuilder builds the playback queue artifact for a selection.
type QueueBuilder interface {
	Build(ctx context.Context, loc location.Location, selected string) (playlist.Queue, error)
	Path() string
}

// Cache is the resume cache as seen by the navigator.
type Cache interface {
	IsEmpty() bool
	List() []string
	Remove(name string) error
	Offer(ctx context.Context, artifactPath, originalName string) (bool, error)
}

// Fetcher downloads remote files such as saved playlists.
type Fetcher interface {
	Fetch(ctx context.Context, fileURL string) ([]byte, error)
}

// Options configure a Navigator.
type Options struct {
	MediaRoot      location.Location
	CacheRoot      location.Location
	PreferredOrder []string
	Download       bool
}

// Deps are the collaborators a Navigator drives.
type Deps struct {
	Lister   Lister
	Builder  QueueBuilder
	Cache    Cache
	Picker   picker.Picker
	Launcher player.Launcher
	Fetcher  Fetcher // remote resume artifacts; nil disables them
	Logger   zerolog.Logger
}

// Navigator runs the interactive browse loop.
type Navigator struct {
	opts     Options
	lister   Lister
	builder  QueueBuilder
	cache    Cache
	picker   picker.Picker
	launcher player.Launcher
	fetcher  Fetcher
	logger   zerolog.Logger
}

// New returns a Navigator starting at opts.MediaRoot.
func New(opts Options, deps Deps) *Navigator {
	return &Navigator{
		opts:     opts,
		lister:   deps.Lister,
		builder:  deps.Builder,
		cache:    deps.Cache,
		picker:   deps.Picker,
		launcher: deps.Launcher,
		fetcher:  deps.Fetcher,
		logger:   deps.Logger,
	}
}

// Run browses from the media root until the user exits, an action
// completes, or ctx is cancelled.
func (n *Navigator) Run(ctx context.Context) error {
	loc := n.opts.MediaRoot
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, done, err := n.Step(ctx, loc)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		loc = next
	}
}

// Step presents the options for loc once and returns the next location, or
// done when the session should end.
func (n *Navigator) Step(ctx context.Context, loc location.Location) (location.Location, bool, error) {
	labels, byLabel := render(n.Options(ctx, loc))
	sel, err := n.picker.Pick(ctx, loc.String(), labels)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return loc, true, ctxErr
		}
		n.logger.Warn().Err(err).Str("location", loc.String()).Msg("selection failed")
		sel = picker.Selection{Cancelled: true}
	}
	if sel.Cancelled {
		next, done := n.cancel(loc)
		return next, done, nil
	}
	if sel.Value == "" {
		return loc, true, nil
	}

	opt, ok := byLabel[sel.Value]
	if !ok {
		n.logger.Warn().Str("choice", sel.Value).Str("location", loc.String()).Msg("choice not offered")
		return loc, false, nil
	}

	switch opt.Kind {
	case OptionResumeList:
		return n.opts.CacheRoot, false, nil
	case OptionManageCache:
		return n.manage(ctx), false, nil
	case OptionAscend:
		return n.ascend(loc), false, nil
	}

	entry := opt.Entry
	switch entry.Kind {
	case media.KindCollection:
		return loc.Child(entry.Name), false, nil
	case media.KindResumeArtifact:
		return loc, n.resume(ctx, loc, entry), nil
	case media.KindMediaFile:
		return loc, n.play(ctx, loc, entry), nil
	default:
		n.logger.Warn().Str("entry", entry.Name).Str("location", loc.String()).Msg("not a collection or playable file")
		return loc, false, nil
	}
}

// Options returns the choices shown at loc, in display order.
func (n *Navigator) Options(ctx context.Context, loc location.Location) []Option {
	var opts []Option
	atMediaRoot := loc == n.opts.MediaRoot
	if atMediaRoot && !n.cache.IsEmpty() {
		opts = append(opts, Option{Kind: OptionResumeList})
	}
	for _, e := range listing.Reorder(n.lister.List(ctx, loc), n.opts.PreferredOrder) {
		opts = append(opts, Option{Kind: OptionEntry, Entry: e})
	}
	if loc == n.opts.CacheRoot {
		opts = append(opts, Option{Kind: OptionManageCache})
	}
	if !atMediaRoot {
		opts = append(opts, Option{Kind: OptionAscend})
	}
	return opts
}

func (n *Navigator) cancel(loc location.Location) (location.Location, bool) {
	switch loc {
	case n.opts.MediaRoot:
		return loc, true
	case n.opts.CacheRoot:
		return n.opts.MediaRoot, false
	default:
		return n.ascend(loc), false
	}
}

func (n *Navigator) ascend(loc location.Location) location.Location {
	if loc == n.opts.CacheRoot || loc == n.opts.MediaRoot {
		return n.opts.MediaRoot
	}
	parent := loc.Parent()
	if parent == loc || !n.opts.MediaRoot.Contains(parent) {
		return n.opts.MediaRoot
	}
	return parent
}

func (n *Navigator) manage(ctx context.Context) location.Location {
	sel, err := n.picker.Pick(ctx, "remove", n.cache.List())
	switch {
	case err != nil:
		n.logger.Warn().Err(err).Msg("cache selection failed")
	case !sel.Cancelled:
		if err := n.cache.Remove(sel.Value); err != nil {
			n.logger.Warn().Err(err).Str("slot", sel.Value).Msg("remove resume slot failed")
		}
	}
	if n.cache.IsEmpty() {
		return n.opts.MediaRoot
	}
	return n.opts.CacheRoot
}

// resume hands a saved queue to the resume player or downloader. An empty
// or unreadable queue is a no-op and browsing continues.
func (n *Navigator) resume(ctx context.Context, loc location.Location, entry media.Entry) bool {
	path := loc.Locator(entry.Name)
	q, err := n.readArtifact(ctx, loc, path)
	if err != nil {
		n.logger.Warn().Err(err).Str("slot", path).Msg("read resume slot failed")
		return false
	}
	if q.IsEmpty() {
		n.logger.Warn().Str("slot", path).Msg("resume slot is empty, nothing to play")
		return false
	}

	if n.opts.Download {
		n.report(n.launcher.Download(ctx, q.Locators()))
	} else {
		n.report(n.launcher.Resume(ctx, path))
	}
	return true
}

func (n *Navigator) readArtifact(ctx context.Context, loc location.Location, path string) (playlist.Queue, error) {
	if !loc.IsRemote() {
		return playlist.ReadFile(path)
	}
	if n.fetcher == nil {
		return playlist.Queue{}, errors.New("no client for remote playlists")
	}
	body, err := n.fetcher.Fetch(ctx, path)
	if err != nil {
		return playlist.Queue{}, err
	}
	return playlist.Unmarshal(bytes.NewReader(body))
}

// play builds the queue from loc anchored at entry and launches it. An empty
// queue is a no-op and browsing continues.
func (n *Navigator) play(ctx context.Context, loc location.Location, entry media.Entry) bool {
	q, err := n.builder.Build(ctx, loc, entry.Name)
	if err != nil {
		n.logger.Error().Err(err).Str("location", loc.String()).Msg("build playlist failed")
		return false
	}
	if q.IsEmpty() {
		n.logger.Warn().Str("entry", entry.Name).Str("location", loc.String()).Msg("selection not found in listing, nothing queued")
		return false
	}

	if n.opts.Download {
		n.report(n.launcher.Download(ctx, q.Locators()))
		return true
	}

	n.report(n.launcher.Play(ctx, n.builder.Path()))
	if _, err := n.cache.Offer(ctx, n.builder.Path(), entry.Name); err != nil && !errors.Is(err, context.Canceled) {
		n.logger.Warn().Err(err).Str("entry", entry.Name).Msg("save resume slot failed")
	}
	return true
}

func (n *Navigator) report(res player.Result) {
	if res.OK() {
		return
	}
	n.logger.Warn().Err(res.Err).Str("tool", res.Tool).Int("exit_code", res.ExitCode).Msg("external tool failed")
}
