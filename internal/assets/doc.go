// Package assets maps abstract style references to concrete paint-time values.
//
// Paywall view-configurations refer to colors, gradients, fonts, images and
// videos by string id. This package owns the typed Asset variants, the
// id-keyed Resolver the renderer pulls from on every pass, and the layering
// rules for host-supplied custom assets, including light/dark theme variants
// selected by an "@dark" id suffix.
//
// # Theme Variants
//
// A backend may ship both "background" and "background@dark". The renderer
// asks for the asset through GetForTheme, which prefers the variant matching
// the active theme and falls back to the base id:
//
//	asset, ok := resolver.GetForTheme("background", assets.ThemeDark)
//
// # Custom Assets
//
// Hosts can override any asset id at runtime. Custom overrides are layered on
// top of the backend set without mutating it; local overrides shadow local
// assets while remote images keep their resolved preview until the remote
// data arrives.
package assets
