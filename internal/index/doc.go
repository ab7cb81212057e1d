// Package index provides an HTTP client for remote directory index pages.
//
// # Overview
//
// Web servers such as nginx (autoindex), Apache (mod_autoindex) and
// lighttpd render a directory as an HTML page of anchors. This package
// fetches such a page with a single GET and turns its anchors into entry
// names that the listing package can classify.
//
// # Index Conventions
//
//   - Every anchor href is collected in document order
//   - The first href is the parent-directory link and is discarded
//   - Remaining hrefs are percent-decoded; sub-collections keep their
//     trailing slash ("My%20Show/" becomes "My Show/")
//   - Malformed escapes are kept verbatim rather than dropped
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Carry a client timeout (default 15s)
//   - Set a mediabrowse User-Agent
//   - Treat HTTP status >= 400 as an error
//
// Callers decide what an error means. The listing package turns every
// failure into an empty listing so navigation never aborts.
package index
