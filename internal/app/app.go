package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/config"
	"github.com/five82/mediabrowse/internal/index"
	"github.com/five82/mediabrowse/internal/listing"
	"github.com/five82/mediabrowse/internal/navigator"
	"github.com/five82/mediabrowse/internal/picker"
	"github.com/five82/mediabrowse/internal/player"
	"github.com/five82/mediabrowse/internal/playlist"
	"github.com/five82/mediabrowse/internal/prefs"
	"github.com/five82/mediabrowse/internal/resume"
	"github.com/five82/mediabrowse/internal/state"
)

// ErrPrivileged is returned when started as the superuser.
var ErrPrivileged = errors.New("refusing to run as root")

// geteuid is swapped in tests.
var geteuid = os.Geteuid

// Options configure a mediabrowse session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mediabrowse/prefs.toml
	Overrides  config.Overrides
	Download   bool
	NoPoll     bool
	PollEvery  time.Duration // zero polls once at startup
	LogOutput  io.Writer     // nil uses stderr
}

// Run checks preconditions, wires the components and browses until the
// user exits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if geteuid() == 0 {
		return ErrPrivileged
	}

	cfg, err := config.Resolve(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := newLogger(cfg.LogLevel, out)

	prefsFile, err := prefs.Open(opts.PrefsPath)
	if err != nil {
		return err
	}
	userPrefs := prefsFile.Load()
	builtin := picker.NewBuiltin(userPrefs.Theme, userPrefs.Height, func(name string) {
		if err := prefsFile.SetTheme(name); err != nil {
			logger.Warn().Err(err).Str("path", prefsFile.Path()).Msg("save preferences failed")
		}
	})
	pick, err := picker.New(cfg.FuzzyFinder, builtin, logger)
	if err != nil {
		return fmt.Errorf("init picker: %w", err)
	}

	launcher, err := player.NewExec(player.Commands{
		Player:     cfg.VideoPlayer,
		Resume:     cfg.ResumePlayer,
		Downloader: cfg.DownloadTool,
	})
	if err != nil {
		return fmt.Errorf("init player: %w", err)
	}

	client := index.NewClient(cfg.RequestTimeout)
	lister := listing.NewLister(client, logger)
	cache := resume.NewCache(cfg.CacheDir, pick, logger)
	store := &state.Store{}

	if !opts.NoPoll {
		pollCtx, cancelPoll := context.WithCancel(ctx)
		done := StartPoller(pollCtx, store, resume.NewPoller(cache, lister, logger), opts.PollEvery, logger)
		defer func() {
			if opts.PollEvery > 0 {
				cancelPoll()
			}
			<-done
			cancelPoll()
			logPollSummary(logger, store.Snapshot())
		}()
	}

	nav := navigator.New(navigator.Options{
		MediaRoot:      cfg.MediaLocation(),
		CacheRoot:      cfg.CacheLocation(),
		PreferredOrder: cfg.PreferredOrder,
		Download:       opts.Download,
	}, navigator.Deps{
		Lister:   lister,
		Builder:  playlist.NewBuilder(lister, cfg.M3UFile),
		Cache:    cache,
		Picker:   pick,
		Launcher: launcher,
		Fetcher:  client,
		Logger:   logger,
	})

	logger.Debug().
		Str("media_root", cfg.MediaRoot).
		Str("cache_dir", cfg.CacheDir).
		Bool("download", opts.Download).
		Msg("starting navigator")

	if err := nav.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newLogger(level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func logPollSummary(logger zerolog.Logger, snap state.Snapshot) {
	if !snap.HasReport {
		return
	}
	event := logger.Debug()
	if snap.IsDegraded() {
		event = logger.Warn()
	}
	event.
		Int("passes", snap.Passes).
		Int("slots", snap.Report.Slots).
		Int("refreshed", snap.Totals.Refreshed).
		Int("emptied", snap.Totals.Emptied).
		Int("failed", snap.Totals.Failed).
		AnErr("last_error", snap.LastError).
		Msg("resume cache poll summary")
}
