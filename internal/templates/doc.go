// Package templates holds the top-level screen layout strategies. A screen
// composes a background, an optional fixed-height cover, a scrollable content
// region, an optional pinned footer and an optional overlay; the strategy
// decides how those regions share the viewport.
package templates
