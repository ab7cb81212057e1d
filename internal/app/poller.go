package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/mediabrowse/internal/resume"
	"github.com/five82/mediabrowse/internal/state"
)

// pollAller runs one resume-cache maintenance pass.
type pollAller interface {
	PollAll(ctx context.Context) (resume.Report, error)
}

// StartPoller launches a background goroutine that refreshes the resume
// cache once, then again every interval when interval is positive. The
// returned channel is closed when the goroutine exits.
func StartPoller(ctx context.Context, store *state.Store, poller pollAller, interval time.Duration, logger zerolog.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		refresh(ctx, store, poller, logger)
		if interval <= 0 {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh(ctx, store, poller, logger)
			}
		}
	}()
	return done
}

func refresh(ctx context.Context, store *state.Store, poller pollAller, logger zerolog.Logger) {
	report, err := poller.PollAll(ctx)
	store.Update(report, err)
	if err != nil && ctx.Err() == nil {
		logger.Warn().Err(err).Msg("resume cache poll failed")
		return
	}
	logger.Debug().
		Int("slots", report.Slots).
		Int("refreshed", report.Refreshed).
		Int("emptied", report.Emptied).
		Msg("resume cache polled")
}
