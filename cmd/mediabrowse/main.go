package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/mediabrowse/internal/app"
	"github.com/five82/mediabrowse/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (default ~/.config/mediabrowse/config.toml)")
	prefsPath := flag.String("prefs", "", "builtin picker preferences path (optional)")
	root := flag.String("root", "", "media root directory or http(s) index URL")
	videoPlayer := flag.String("player", "", "video player command")
	resumePlayer := flag.String("resume-player", "", "player command for continue-watching playlists")
	finder := flag.String("picker", "", `fuzzy finder command, or "builtin"`)
	m3uFile := flag.String("playlist", "", "path of the generated m3u playlist")
	cacheDir := flag.String("cache", "", "continue-watching cache directory")
	downloader := flag.String("downloader", "", "download tool command")
	order := flag.String("order", "", "comma-separated names listed first")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	download := flag.Bool("download", false, "download the queue instead of playing it")
	noPoll := flag.Bool("no-poll", false, "skip refreshing the continue-watching cache")
	pollEvery := flag.Duration("poll-every", 0, "refresh the continue-watching cache periodically (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Download:   *download,
		NoPoll:     *noPoll,
		Overrides: config.Overrides{
			MediaRoot:      *root,
			VideoPlayer:    *videoPlayer,
			ResumePlayer:   *resumePlayer,
			FuzzyFinder:    *finder,
			M3UFile:        *m3uFile,
			CacheDir:       *cacheDir,
			DownloadTool:   *downloader,
			PreferredOrder: config.SplitList(*order),
			LogLevel:       *logLevel,
		},
	}
	if every := *pollEvery; every > 0 {
		opts.PollEvery = every
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "mediabrowse: %v\n", err)
		return 1
	}
	return 0
}
