package assets

import "fmt"

// Theme selects which variant of a themeable asset the renderer should use.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// String returns a human-readable name for the theme
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// darkSuffix marks the dark-theme variant of an asset id, e.g. "background@dark".
const darkSuffix = "@dark"

// Kind identifies the concrete Asset variant without a type switch.
type Kind int

const (
	KindColor Kind = iota
	KindGradient
	KindImage
	KindRemoteImage
	KindVideo
	KindFont
)

// String returns a human-readable name for the asset kind
func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindGradient:
		return "gradient"
	case KindImage:
		return "image"
	case KindRemoteImage:
		return "remote_image"
	case KindVideo:
		return "video"
	case KindFont:
		return "font"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Asset is a themeable visual resource referenced by id from element style
// attributes. The closed set of variants is Color, Gradient, Image,
// RemoteImage, Video and Font.
type Asset interface {
	AssetID() string
	AssetKind() Kind
}

// Color is a solid color in hex notation ("#RRGGBB" or "#RRGGBBAA").
type Color struct {
	ID    string
	Value string
}

func (c Color) AssetID() string { return c.ID }
func (c Color) AssetKind() Kind { return KindColor }

// GradientGeometry is the shape a gradient paints along.
type GradientGeometry int

const (
	GradientLinear GradientGeometry = iota
	GradientRadial
	GradientConic
)

// GradientStop is a color at a normalized position in [0, 1].
type GradientStop struct {
	Color    string
	Position float64
}

// Gradient is a multi-stop gradient. Angle is degrees for linear gradients
// and ignored for radial ones.
type Gradient struct {
	ID       string
	Geometry GradientGeometry
	Angle    float64
	Stops    []GradientStop
}

func (g Gradient) AssetID() string { return g.ID }
func (g Gradient) AssetKind() Kind { return KindGradient }

// Image is a locally available bitmap, either bundled with the host app or
// already fetched. Data may be nil when only a path reference exists.
type Image struct {
	ID   string
	Path string
	Data []byte
}

func (i Image) AssetID() string { return i.ID }
func (i Image) AssetKind() Kind { return KindImage }

// RemoteImage is an image that still lives behind a URL. Preview, when
// non-nil, is a low-resolution stand-in rendered until the remote data is
// fetched and layered in as a plain Image under the same id.
type RemoteImage struct {
	ID      string
	URL     string
	Preview *Image
}

func (r RemoteImage) AssetID() string { return r.ID }
func (r RemoteImage) AssetKind() Kind { return KindRemoteImage }

// Video is a video resource. The engine renders only its preview image; the
// playback surface belongs to the host.
type Video struct {
	ID      string
	URL     string
	Preview *Image
}

func (v Video) AssetID() string { return v.ID }
func (v Video) AssetKind() Kind { return KindVideo }

// Font carries the typographic attributes a text element resolves at paint
// time. Size is in layout units; Color is hex.
type Font struct {
	ID     string
	Family string
	Size   float64
	Weight int
	Italic bool
	Color  string
}

func (f Font) AssetID() string { return f.ID }
func (f Font) AssetKind() Kind { return KindFont }
