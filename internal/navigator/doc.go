// Package navigator implements the interactive browse loop.
//
// # States
//
// The navigator is always browsing one location. Two locations are special:
// the media root, where the session starts, and the resume cache root,
// reached through the "continue watching/" option.
//
// Each Step lists the current location, shows the options through the
// picker, and maps the answer to a transition:
//
//	choice                      next
//	------                      ----
//	continue watching/          cache root
//	collection entry            that collection
//	rm (cache root only)        cache management, then cache root
//	                            (media root once the cache is empty)
//	../                         parent (media root from the cache root)
//	resume artifact             resume player or downloader, exit
//	media file                  build queue, play or download,
//	                            offer to remember, exit
//	other entry                 stay, log a diagnostic
//	cancel                      exit at media root, media root from the
//	                            cache root, parent elsewhere
//	empty successful choice     exit
//
// # Options
//
// Options are tagged values (entry, ascend, manage cache, resume list) and
// are only turned into strings at the picker boundary. Display order is the
// resume sentinel, the reordered listing, the manage sentinel, then "../".
//
// # Soft Failures
//
// Empty listings, empty queues, picker errors and non-zero exits from
// external tools are logged and never end the loop with an error. Run only
// returns an error when its context is cancelled.
package navigator
