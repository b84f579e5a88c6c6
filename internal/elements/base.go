package elements

import (
	"github.com/skylineapps/paywallkit/internal/animation"
	"github.com/skylineapps/paywallkit/internal/assets"
)

// SizeRule is how an element claims space along one axis.
type SizeRule int

const (
	// SizeShrink wraps the element's content.
	SizeShrink SizeRule = iota
	// SizeFill consumes all space the parent offers.
	SizeFill
	// SizeSpecified is a fixed extent; content may still force it larger so
	// oversized children are not clipped.
	SizeSpecified
	// SizeMin wraps content but never below the given extent.
	SizeMin
)

// SizeSpec is one axis of an element's declared size.
type SizeSpec struct {
	Rule  SizeRule
	Value int
}

// Alignment positions content inside leftover space.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// EdgeInsets is padding in cells.
type EdgeInsets struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Fill paints an element's background: a solid color asset or a gradient
// asset, referenced by id.
type Fill struct {
	ColorAssetID    string
	GradientAssetID string
}

// Shape is an element's decorated footprint: fill, border, shadow and corner
// geometry.
type Shape struct {
	Fill            Fill
	BorderAssetID   string
	BorderThickness int
	ShadowAssetID   string
	CornerRadius    int
}

// AnimationSet groups an element's animation descriptors by the property
// they drive. Each list feeds an independent behavior instance; start and
// end values are homogeneous per list by construction.
type AnimationSet struct {
	Opacity            []animation.Animation[float64]
	Offset             []animation.Animation[animation.Offset]
	Scale              []animation.Animation[float64]
	Rotation           []animation.Animation[float64]
	BoxSize            []animation.Animation[animation.Dims]
	BackgroundColor    []animation.Animation[string]
	BackgroundGradient []animation.Animation[assets.Gradient]
	Border             []animation.Animation[animation.Border]
	Shadow             []animation.Animation[animation.Shadow]
}

// Empty reports whether no property animates.
func (s *AnimationSet) Empty() bool {
	if s == nil {
		return true
	}
	return len(s.Opacity) == 0 && len(s.Offset) == 0 && len(s.Scale) == 0 &&
		len(s.Rotation) == 0 && len(s.BoxSize) == 0 && len(s.BackgroundColor) == 0 &&
		len(s.BackgroundGradient) == 0 && len(s.Border) == 0 && len(s.Shadow) == 0
}

// BaseProps is the styling every element variant carries.
type BaseProps struct {
	Width      SizeSpec
	Height     SizeSpec
	Weight     int
	Shape      Shape
	Padding    EdgeInsets
	Offset     animation.Offset
	Opacity    float64 // 1 when undeclared
	Animations *AnimationSet

	behaviors *behaviors
}

// NewBaseProps returns props with the neutral defaults a config omits.
func NewBaseProps() BaseProps {
	return BaseProps{Opacity: 1}
}

// Block is a rendered element: a styled terminal string plus its measured
// extent. Omitted marks an element dropped from layout (broken asset,
// out-of-range section index).
type Block struct {
	Content string
	Width   int
	Height  int
	Omitted bool
}

// OmittedBlock is the canonical dropped-element output.
func OmittedBlock() Block {
	return Block{Omitted: true}
}
