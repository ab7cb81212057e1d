// Package app is the composition root for mediabrowse.
//
// Run refuses to start as root, resolves configuration, builds the logger,
// picker, lister, playlist builder, resume cache and player launcher, and
// hands them to the navigator.
//
// Unless disabled, a background goroutine refreshes the resume cache once at
// startup (or every PollEvery). Its reports are recorded in a state.Store and
// Run waits for the goroutine before returning, so a pass is never cut off
// mid-write by process exit. A periodic poller is cancelled at exit; a single
// startup pass is allowed to finish.
package app
