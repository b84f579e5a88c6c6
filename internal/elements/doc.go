// Package elements is the paywall element tree and its renderer.
//
// A view configuration parses into a tree of typed element variants (stacks,
// grids, pager, text, image, button, toggle, timer, section). Each variant
// implements three render entry points: bare, inside a row, and inside a
// column, because weighted sizing works differently per container axis.
//
// Rendering is pull based and side-effect free with two deliberate
// exceptions: buttons fire a one-time initial-selection notification, and
// timers dispatch their expiry actions exactly once. Everything else an
// element needs - resolved assets, resolved texts, runtime state, the event
// callback - arrives through the Context on every pass, so a render is a pure
// function of its inputs.
//
// The paint target is a styled terminal block built with lipgloss: colors,
// borders, padding, joins and alignment map one-to-one onto the element
// vocabulary, with one terminal cell as the layout unit.
package elements
