// Package preview runs the live-preview server used during paywall design.
//
// The server mounts one paywall and mirrors it to any number of connected
// design tools over WebSocket: every frame tick it renders the active screen
// and broadcasts the result as a JSON frame message, and it accepts tap,
// scroll and page commands back from the tools, dispatching them into the
// view model exactly as the interactive player would.
//
// # Wire Protocol
//
// Messages are JSON objects with a "type" discriminator.
//
// Server to client:
//   - "frame": the rendered screen, its scroll extent and the tappable
//     hotspots of the pass
//   - "event": a paywall lifecycle event (product selected, purchase
//     completed, timer expired, ...)
//
// Client to server:
//   - "tap": press the hotspot at the given 1-based position
//   - "scroll": move the shared scroll offset by delta rows
//   - "page": flip every pager by delta pages
//   - "back": close the topmost screen
//
// # Discovery
//
// When announcement is enabled the server registers a "_paywallkit._tcp"
// mDNS service on the local network so design tools find running previews
// without manual addressing.
package preview
