// Package state holds the outcome of resume-cache poll passes.
//
// The background poller is the single writer; the app reads a Snapshot when
// it exits to log a summary. Store is usable as a zero value and guarded by
// a RWMutex. A pass that reports an error still records its partial Report,
// and ConsecutiveFailures resets on the next clean pass. Totals accumulates
// the per-pass counters for sessions that poll periodically.
package state
