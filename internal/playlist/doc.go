// Package playlist builds, encodes and persists playback queues.
//
// # Artifact Format
//
// A playback queue artifact is UTF-8 extended m3u:
//
//	#EXTM3U
//	#EXTINF:-1,Episode 1.mkv
//	http://nas.local/tv/Episode%201.mkv
//	#EXTINF:-1,Episode 2.mkv
//	http://nas.local/tv/Episode%202.mkv
//
// The header is always written, even for an empty queue. The download
// variant (MarshalDownloadList) carries locator lines only.
//
// # Construction
//
// Builder.Build lists a location, keeps media files in listing order and
// drops everything before the selected file. Remote locators are the
// location joined with the percent-encoded name; local locators are plain
// joined paths. The anchor is matched using the same form, and the first
// match wins when encoded names collide.
//
// # Writes
//
// All writes go through WriteAtomic: content is written to a hidden
// temporary sibling, synced, then renamed over the target.
package playlist
