package assets

import (
	"testing"
)

// Test fixture: a backend asset set with themed variants
func getSampleAssets() map[string]Asset {
	return map[string]Asset{
		"background":      Color{ID: "background", Value: "#FFFFFF"},
		"background@dark": Color{ID: "background@dark", Value: "#1C1C1E"},
		"accent":          Color{ID: "accent", Value: "#7D56F4"},
		"hero": Gradient{
			ID:       "hero",
			Geometry: GradientLinear,
			Angle:    90,
			Stops: []GradientStop{
				{Color: "#FF0000", Position: 0},
				{Color: "#0000FF", Position: 1},
			},
		},
		"cover": RemoteImage{ID: "cover", URL: "https://cdn.example.com/cover.png"},
	}
}

func TestResolver_Get(t *testing.T) {
	r := NewResolver(getSampleAssets(), nil)

	a, ok := r.Get("accent")
	if !ok {
		t.Fatal("Get(accent) should resolve")
	}
	if a.AssetKind() != KindColor {
		t.Errorf("Get(accent) kind = %v, want color", a.AssetKind())
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should not resolve")
	}
}

func TestResolver_GetForTheme(t *testing.T) {
	r := NewResolver(getSampleAssets(), nil)

	tests := []struct {
		name    string
		id      string
		theme   Theme
		wantID  string
		wantHit bool
	}{
		{"light uses base id", "background", ThemeLight, "background", true},
		{"dark prefers variant", "background", ThemeDark, "background@dark", true},
		{"dark falls back to base", "accent", ThemeDark, "accent", true},
		{"missing id misses in both themes", "nope", ThemeDark, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := r.GetForTheme(tt.id, tt.theme)
			if ok != tt.wantHit {
				t.Fatalf("GetForTheme(%q, %v) hit = %v, want %v", tt.id, tt.theme, ok, tt.wantHit)
			}
			if ok && a.AssetID() != tt.wantID {
				t.Errorf("GetForTheme(%q, %v) = %q, want %q", tt.id, tt.theme, a.AssetID(), tt.wantID)
			}
		})
	}
}

func TestResolver_GetForCurrentTheme(t *testing.T) {
	r := NewResolver(getSampleAssets(), nil)
	r.SetTheme(ThemeDark)

	a, ok := r.GetForCurrentTheme("background")
	if !ok || a.AssetID() != "background@dark" {
		t.Errorf("GetForCurrentTheme(background) = %v, want background@dark", a)
	}
}

func TestResolver_LayerCustom(t *testing.T) {
	r := NewResolver(getSampleAssets(), nil)

	r.LayerCustom(map[string]Asset{
		"accent": Color{ID: "accent", Value: "#00FF00"},
	})

	a, _ := r.Get("accent")
	if c, ok := a.(Color); !ok || c.Value != "#00FF00" {
		t.Errorf("custom override should shadow backend asset, got %v", a)
	}

	// The backend layer must be untouched underneath
	if base, ok := r.backend["accent"].(Color); !ok || base.Value != "#7D56F4" {
		t.Error("backend layer must not be mutated by custom overrides")
	}
}

func TestResolver_LayerCustom_RemoteKeepsLocalPreview(t *testing.T) {
	backend := map[string]Asset{
		"logo": Image{ID: "logo", Path: "bundled/logo.png"},
	}
	r := NewResolver(backend, nil)

	r.LayerCustom(map[string]Asset{
		"logo": RemoteImage{ID: "logo", URL: "https://cdn.example.com/logo2.png"},
	})

	a, _ := r.Get("logo")
	remote, ok := a.(RemoteImage)
	if !ok {
		t.Fatalf("expected RemoteImage override, got %T", a)
	}
	if remote.Preview == nil || remote.Preview.Path != "bundled/logo.png" {
		t.Error("remote override of a local image should keep the local image as preview")
	}
}

func TestResolver_StoreResolved(t *testing.T) {
	r := NewResolver(getSampleAssets(), nil)

	r.StoreResolved(Image{ID: "cover", Data: []byte{1, 2, 3}})

	a, _ := r.Get("cover")
	if _, ok := a.(Image); !ok {
		t.Errorf("StoreResolved should replace the remote image, got %T", a)
	}
	if len(r.RemoteImages()) != 0 {
		t.Error("no remote images should remain after resolution")
	}
}

func TestResolver_RemoteImages(t *testing.T) {
	r := NewResolver(getSampleAssets(), nil)
	pending := r.RemoteImages()
	if len(pending) != 1 || pending[0].ID != "cover" {
		t.Errorf("RemoteImages() = %v, want [cover]", pending)
	}
}
