package elements

import (
	"time"

	"github.com/skylineapps/paywallkit/internal/animation"
	"github.com/skylineapps/paywallkit/internal/assets"
)

// behaviors holds the per-property animation state machines of one element.
// Built once when the element first renders; sampled on every pass.
type behaviors struct {
	opacity    animation.Behavior[float64]
	offset     animation.Behavior[animation.Offset]
	scale      animation.Behavior[float64]
	rotation   animation.Behavior[float64]
	boxSize    animation.Behavior[animation.Dims]
	bgColor    animation.Behavior[string]
	bgGradient animation.Behavior[assets.Gradient]
	border     animation.Behavior[animation.Border]
	shadow     animation.Behavior[animation.Shadow]
}

// Behaviors lazily builds the element's behavior set. With no animations
// declared, every behavior is Static over the declared value and repeated
// sampling yields exactly that value.
func (b *BaseProps) Behaviors() *behaviors {
	if b.behaviors != nil {
		return b.behaviors
	}

	set := b.Animations
	bh := &behaviors{
		opacity:    animation.Static(b.Opacity),
		offset:     animation.Static(b.Offset),
		scale:      animation.Static(1.0),
		rotation:   animation.Static(0.0),
		boxSize:    animation.None[animation.Dims](),
		bgColor:    animation.Static(b.Shape.Fill.ColorAssetID),
		bgGradient: animation.None[assets.Gradient](),
		border: animation.Static(animation.Border{
			Color:     b.Shape.BorderAssetID,
			Thickness: float64(b.Shape.BorderThickness),
		}),
		shadow: animation.None[animation.Shadow](),
	}

	if set != nil {
		if len(set.Opacity) > 0 {
			bh.opacity = animation.Animated(b.Opacity, set.Opacity, animation.LerpFloat)
		}
		if len(set.Offset) > 0 {
			bh.offset = animation.Animated(b.Offset, set.Offset, animation.LerpOffset)
		}
		if len(set.Scale) > 0 {
			bh.scale = animation.Animated(1.0, set.Scale, animation.LerpFloat)
		}
		if len(set.Rotation) > 0 {
			bh.rotation = animation.Animated(0.0, set.Rotation, animation.LerpFloat)
		}
		if len(set.BoxSize) > 0 {
			bh.boxSize = animation.Animated(animation.Dims{
				Width:  float64(b.Width.Value),
				Height: float64(b.Height.Value),
			}, set.BoxSize, animation.LerpDims)
		}
		if len(set.BackgroundColor) > 0 {
			bh.bgColor = animation.Animated(b.Shape.Fill.ColorAssetID, set.BackgroundColor, animation.LerpColor)
		}
		if len(set.BackgroundGradient) > 0 {
			bh.bgGradient = animation.Animated(assets.Gradient{ID: b.Shape.Fill.GradientAssetID},
				set.BackgroundGradient, animation.LerpGradient)
		}
		if len(set.Border) > 0 {
			bh.border = animation.Animated(animation.Border{
				Color:     b.Shape.BorderAssetID,
				Thickness: float64(b.Shape.BorderThickness),
			}, set.Border, animation.LerpBorder)
		}
		if len(set.Shadow) > 0 {
			bh.shadow = animation.Animated(animation.Shadow{Color: b.Shape.ShadowAssetID},
				set.Shadow, animation.LerpShadow)
		}
	}

	b.behaviors = bh
	return bh
}

// OpacityAt samples the element's opacity.
func (b *BaseProps) OpacityAt(elapsed time.Duration) float64 {
	return b.Behaviors().opacity.ValueAt(elapsed)
}

// OffsetAt samples the element's translation.
func (b *BaseProps) OffsetAt(elapsed time.Duration) animation.Offset {
	return b.Behaviors().offset.ValueAt(elapsed)
}

// ScaleAt samples the element's scale factor.
func (b *BaseProps) ScaleAt(elapsed time.Duration) float64 {
	return b.Behaviors().scale.ValueAt(elapsed)
}

// RotationAt samples the element's rotation in degrees.
func (b *BaseProps) RotationAt(elapsed time.Duration) float64 {
	return b.Behaviors().rotation.ValueAt(elapsed)
}

// BoxSizeAt samples the animated box size; ok is false when the box does not
// animate its size.
func (b *BaseProps) BoxSizeAt(elapsed time.Duration) (animation.Dims, bool) {
	bh := b.Behaviors()
	if bh.boxSize.Kind() == animation.BehaviorNone {
		return animation.Dims{}, false
	}
	return bh.boxSize.ValueAt(elapsed), true
}

// BackgroundColorAt samples the background color reference: an asset id, or
// an interpolated "#rrggbb" literal while a color animation plays.
func (b *BaseProps) BackgroundColorAt(elapsed time.Duration) string {
	return b.Behaviors().bgColor.ValueAt(elapsed)
}

// BackgroundGradientAt samples a playing gradient animation; ok is false when
// the background gradient is not animated and the declared asset id applies.
func (b *BaseProps) BackgroundGradientAt(elapsed time.Duration) (assets.Gradient, bool) {
	bh := b.Behaviors()
	if bh.bgGradient.Kind() == animation.BehaviorNone {
		return assets.Gradient{}, false
	}
	return bh.bgGradient.ValueAt(elapsed), true
}

// BorderAt samples the border stroke.
func (b *BaseProps) BorderAt(elapsed time.Duration) animation.Border {
	return b.Behaviors().border.ValueAt(elapsed)
}

// ShadowAt samples the drop shadow; ok is false when no shadow animates and
// the declared asset id applies.
func (b *BaseProps) ShadowAt(elapsed time.Duration) (animation.Shadow, bool) {
	bh := b.Behaviors()
	if bh.shadow.Kind() == animation.BehaviorNone {
		return animation.Shadow{}, false
	}
	return bh.shadow.ValueAt(elapsed), true
}

// Live reports whether any property still animates at the elapsed time, i.e.
// the renderer should keep scheduling passes for this element.
func (b *BaseProps) Live(elapsed time.Duration) bool {
	bh := b.Behaviors()
	return bh.opacity.Live(elapsed) || bh.offset.Live(elapsed) ||
		bh.scale.Live(elapsed) || bh.rotation.Live(elapsed) ||
		bh.boxSize.Live(elapsed) || bh.bgColor.Live(elapsed) ||
		bh.bgGradient.Live(elapsed) || bh.border.Live(elapsed) ||
		bh.shadow.Live(elapsed)
}
