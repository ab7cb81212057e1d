package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/mediabrowse/internal/resume"
)

// Snapshot represents the outcome of the latest resume-cache poll.
type Snapshot struct {
	Report              resume.Report
	Totals              resume.Report // Refreshed, Emptied and Failed summed over all passes
	HasReport           bool
	Passes              int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive passes that reported an error
}

// IsDegraded returns true when several passes in a row have failed.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a finished pass. The report is kept even when err is
// non-nil, since a pass refreshes what it can before failing.
func (s *Store) Update(report resume.Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Report = report
	s.snapshot.Totals = addReports(s.snapshot.Totals, report)
	s.snapshot.HasReport = true
	s.snapshot.Passes++
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func addReports(total, pass resume.Report) resume.Report {
	total.Slots = pass.Slots
	total.Refreshed += pass.Refreshed
	total.Emptied += pass.Emptied
	total.Failed += pass.Failed
	return total
}
