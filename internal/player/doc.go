// Package player is a terminal front-end for a mounted paywall: the Go
// stand-in for the mobile host view. It drives animation and timer ticks,
// binds number keys to tappable elements, scrolls the content region and
// runs pager auto-advance with a spring-smoothed offset.
package player
