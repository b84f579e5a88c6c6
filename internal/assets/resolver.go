package assets

import (
	"go.uber.org/zap"
)

// Resolver answers asset lookups for the renderer. Backend assets and custom
// host overrides live in separate layers; Get consults custom first. The view
// model owns the only mutable reference and mutates it on the main execution
// context, so render-time reads never observe a torn write.
type Resolver struct {
	backend map[string]Asset
	custom  map[string]Asset
	theme   Theme
	logger  *zap.Logger
}

// NewResolver creates a resolver over the backend asset set. The map is
// retained, not copied; callers hand over ownership.
func NewResolver(backend map[string]Asset, logger *zap.Logger) *Resolver {
	if backend == nil {
		backend = make(map[string]Asset)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		backend: backend,
		custom:  make(map[string]Asset),
		theme:   ThemeLight,
		logger:  logger,
	}
}

// SetTheme selects which variant GetForCurrentTheme resolves to.
func (r *Resolver) SetTheme(theme Theme) {
	r.theme = theme
}

// Theme returns the active theme.
func (r *Resolver) Theme() Theme {
	return r.theme
}

// Get resolves an asset id, custom layer first.
func (r *Resolver) Get(id string) (Asset, bool) {
	if a, ok := r.custom[id]; ok {
		return a, true
	}
	a, ok := r.backend[id]
	return a, ok
}

// GetForTheme resolves an id preferring the variant for the given theme.
// Dark theme tries "<id>@dark" before the base id.
func (r *Resolver) GetForTheme(id string, theme Theme) (Asset, bool) {
	if theme == ThemeDark {
		if a, ok := r.Get(id + darkSuffix); ok {
			return a, true
		}
	}
	return r.Get(id)
}

// GetForCurrentTheme resolves an id for the active system theme.
func (r *Resolver) GetForCurrentTheme(id string) (Asset, bool) {
	return r.GetForTheme(id, r.theme)
}

// LayerCustom applies host-supplied overrides on top of the backend set.
// An override replaces any earlier custom entry under the same id. When a
// custom Image overrides a backend RemoteImage whose data has not arrived,
// the override simply wins; when a custom RemoteImage overrides a backend
// local Image, the backend image is kept as the preview so something renders
// while the remote fetch is pending.
func (r *Resolver) LayerCustom(overrides map[string]Asset) {
	for id, a := range overrides {
		if remote, ok := a.(RemoteImage); ok && remote.Preview == nil {
			if base, exists := r.backend[id]; exists {
				if img, isImage := base.(Image); isImage {
					remote.Preview = &img
					a = remote
				}
			}
		}
		r.custom[id] = a
		r.logger.Debug("Custom asset layered",
			zap.String("id", id),
			zap.String("kind", a.AssetKind().String()),
		)
	}
}

// StoreResolved replaces a remote asset with its fetched local form. Used by
// the view model when a RemoteImage finishes downloading.
func (r *Resolver) StoreResolved(a Asset) {
	id := a.AssetID()
	if _, ok := r.custom[id]; ok {
		r.custom[id] = a
		return
	}
	r.backend[id] = a
}

// RemoteImages returns all remote images that still need fetching, theme
// variants included. Order is unspecified.
func (r *Resolver) RemoteImages() []RemoteImage {
	var pending []RemoteImage
	seen := make(map[string]bool)
	collect := func(m map[string]Asset) {
		for id, a := range m {
			if seen[id] {
				continue
			}
			// The custom layer shadows the backend layer
			if m2, ok := r.custom[id]; ok {
				a = m2
			}
			seen[id] = true
			if remote, ok := a.(RemoteImage); ok {
				pending = append(pending, remote)
			}
		}
	}
	collect(r.custom)
	collect(r.backend)
	return pending
}
