package animation

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/skylineapps/paywallkit/internal/assets"
)

// Lerper interpolates between two values of one property type at normalized
// progress t in [0, 1].
type Lerper[T any] func(from, to T, t float64) T

// LerpFloat interpolates scalars (opacity, rotation, scale, thickness).
func LerpFloat(from, to float64, t float64) float64 {
	return from + (to-from)*t
}

// LerpOffset interpolates translations component-wise.
func LerpOffset(from, to Offset, t float64) Offset {
	return Offset{
		X: LerpFloat(from.X, to.X, t),
		Y: LerpFloat(from.Y, to.Y, t),
	}
}

// LerpDims interpolates box sizes component-wise.
func LerpDims(from, to Dims, t float64) Dims {
	return Dims{
		Width:  LerpFloat(from.Width, to.Width, t),
		Height: LerpFloat(from.Height, to.Height, t),
	}
}

// LerpColor blends two hex colors in RGB space. Unparseable colors snap to
// the target at the halfway point.
func LerpColor(from, to string, t float64) string {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		if t < 0.5 {
			return from
		}
		return to
	}
	return a.BlendRgb(b, t).Hex()
}

// LerpShadow interpolates color, blur and offset together.
func LerpShadow(from, to Shadow, t float64) Shadow {
	return Shadow{
		Color:  LerpColor(from.Color, to.Color, t),
		Blur:   LerpFloat(from.Blur, to.Blur, t),
		Offset: LerpOffset(from.Offset, to.Offset, t),
	}
}

// LerpBorder interpolates stroke color and thickness.
func LerpBorder(from, to Border, t float64) Border {
	return Border{
		Color:     LerpColor(from.Color, to.Color, t),
		Thickness: LerpFloat(from.Thickness, to.Thickness, t),
	}
}

// LerpGradient morphs two gradients stop-by-stop when they share geometry
// and stop count. Mismatched gradients cannot be morphed parameter-wise;
// they cross-fade by snapping to the nearer side, mirroring a renderer that
// blends two fully rendered gradients instead of interpolating parameters.
func LerpGradient(from, to assets.Gradient, t float64) assets.Gradient {
	if from.Geometry != to.Geometry || len(from.Stops) != len(to.Stops) {
		if t < 0.5 {
			return from
		}
		return to
	}
	out := assets.Gradient{
		ID:       from.ID,
		Geometry: from.Geometry,
		Angle:    LerpFloat(from.Angle, to.Angle, t),
		Stops:    make([]assets.GradientStop, len(from.Stops)),
	}
	for i := range from.Stops {
		out.Stops[i] = assets.GradientStop{
			Color:    LerpColor(from.Stops[i].Color, to.Stops[i].Color, t),
			Position: LerpFloat(from.Stops[i].Position, to.Stops[i].Position, t),
		}
	}
	return out
}
