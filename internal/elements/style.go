package elements

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/skylineapps/paywallkit/internal/assets"
)

// ResolveColor maps a color reference to a concrete terminal color. The
// reference is either a "#rrggbb" literal (animated values arrive this way)
// or an asset id; gradient assets flatten to their midpoint blend since a
// terminal cell holds a single background color.
func ResolveColor(ctx *Context, ref string) (lipgloss.Color, bool) {
	if ref == "" {
		return "", false
	}
	if strings.HasPrefix(ref, "#") {
		return lipgloss.Color(ref), true
	}
	if ctx.Assets == nil {
		return "", false
	}
	asset, ok := ctx.Assets.GetForCurrentTheme(ref)
	if !ok {
		ctx.Logger.Debug("Color asset not found")
		return "", false
	}
	switch a := asset.(type) {
	case assets.Color:
		return lipgloss.Color(a.Value), true
	case assets.Gradient:
		return lipgloss.Color(FlattenGradient(a)), true
	default:
		return "", false
	}
}

// FlattenGradient reduces a gradient to one representative hex color: the
// midpoint blend of its first and last stops.
func FlattenGradient(g assets.Gradient) string {
	if len(g.Stops) == 0 {
		return "#000000"
	}
	first := g.Stops[0].Color
	last := g.Stops[len(g.Stops)-1].Color
	a, errA := colorful.Hex(first)
	b, errB := colorful.Hex(last)
	if errA != nil || errB != nil {
		return first
	}
	return a.BlendRgb(b, 0.5).Hex()
}

// StyleProps builds the lipgloss style for an element's base props at the
// current pass: padding, animated background, border stroke and opacity.
func StyleProps(ctx *Context, b *BaseProps) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(b.Padding.Top, b.Padding.Right, b.Padding.Bottom, b.Padding.Left)

	// Background: a playing gradient animation wins, then the color
	// behavior, then the declared gradient fill
	if grad, ok := b.BackgroundGradientAt(ctx.Elapsed); ok {
		style = style.Background(lipgloss.Color(FlattenGradient(grad)))
	} else if ref := b.BackgroundColorAt(ctx.Elapsed); ref != "" {
		if color, ok := ResolveColor(ctx, ref); ok {
			style = style.Background(color)
		}
	} else if b.Shape.Fill.GradientAssetID != "" {
		if color, ok := ResolveColor(ctx, b.Shape.Fill.GradientAssetID); ok {
			style = style.Background(color)
		}
	}

	border := b.BorderAt(ctx.Elapsed)
	if border.Thickness > 0 {
		style = style.Border(lipgloss.RoundedBorder())
		if color, ok := ResolveColor(ctx, border.Color); ok {
			style = style.BorderForeground(color)
		}
	}

	if opacity := b.OpacityAt(ctx.Elapsed); opacity < 1 {
		// Terminal cells have no alpha channel; low opacity renders faint
		// and zero opacity blanks the block entirely in finishBlock
		style = style.Faint(true)
	}
	return style
}

// finishBlock applies sizing rules and opacity to styled content and
// measures the result.
func finishBlock(ctx *Context, b *BaseProps, style lipgloss.Style, content string) Block {
	switch b.Width.Rule {
	case SizeFill:
		if ctx.MaxWidth > 0 {
			style = style.Width(ctx.MaxWidth)
		}
	case SizeSpecified:
		// A specified width is a floor, not a clip: oversized content may
		// exceed it so nothing is cut off
		if lipgloss.Width(content) < b.Width.Value {
			style = style.Width(b.Width.Value)
		}
	case SizeMin:
		if lipgloss.Width(content) < b.Width.Value {
			style = style.Width(b.Width.Value)
		}
	}
	switch b.Height.Rule {
	case SizeFill:
		if ctx.MaxHeight > 0 {
			style = style.Height(ctx.MaxHeight)
		}
	case SizeSpecified, SizeMin:
		if lipgloss.Height(content) < b.Height.Value {
			style = style.Height(b.Height.Value)
		}
	}

	rendered := style.Render(content)

	if b.OpacityAt(ctx.Elapsed) <= 0 {
		// Invisible but still occupying its layout slot
		rendered = blankLike(rendered)
	}

	return Block{
		Content: rendered,
		Width:   lipgloss.Width(rendered),
		Height:  lipgloss.Height(rendered),
	}
}

// blankLike replaces content with whitespace of the same footprint.
func blankLike(rendered string) string {
	lines := strings.Split(rendered, "\n")
	width := lipgloss.Width(rendered)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return strings.Join(lines, "\n")
}
