package elements

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box aligns a single child inside its declared bounds. A Specified size is
// intrinsic-friendly: oversized content grows the box instead of clipping.
type Box struct {
	Props  BaseProps
	HAlign Alignment
	VAlign Alignment
	Child  Element
}

func (b *Box) Base() *BaseProps { return &b.Props }

func (b *Box) Render(ctx *Context) Block {
	var content string
	if b.Child != nil {
		inner := ctx.WithConstraints(innerWidth(ctx, &b.Props), innerHeight(ctx, &b.Props))
		child := b.Child.Render(inner)
		if !child.Omitted {
			content = child.Content
		}
	}

	// Place the child inside the declared bounds when they exceed it
	w, h := b.Props.Width.Value, b.Props.Height.Value
	if dims, ok := b.Props.BoxSizeAt(ctx.Elapsed); ok {
		w, h = int(dims.Width), int(dims.Height)
	}
	if w > lipgloss.Width(content) || h > lipgloss.Height(content) {
		if w < lipgloss.Width(content) {
			w = lipgloss.Width(content)
		}
		if h < lipgloss.Height(content) {
			h = lipgloss.Height(content)
		}
		content = lipgloss.Place(w, h, hPosition(b.HAlign), vPosition(b.VAlign), content)
	}
	return finishBlock(ctx, &b.Props, StyleProps(ctx, &b.Props), content)
}

func (b *Box) RenderInRow(ctx *Context) Block    { return b.Render(ctx) }
func (b *Box) RenderInColumn(ctx *Context) Block { return b.Render(ctx) }

// BoxWithoutContent is a decorated footprint with no child: shape, size and
// animations only.
type BoxWithoutContent struct {
	Props BaseProps
}

func (b *BoxWithoutContent) Base() *BaseProps { return &b.Props }

func (b *BoxWithoutContent) Render(ctx *Context) Block {
	w, h := b.Props.Width.Value, b.Props.Height.Value
	if dims, ok := b.Props.BoxSizeAt(ctx.Elapsed); ok {
		w, h = int(dims.Width), int(dims.Height)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	blank := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", w)+"\n", h), "\n")
	return finishBlock(ctx, &b.Props, StyleProps(ctx, &b.Props), blank)
}

func (b *BoxWithoutContent) RenderInRow(ctx *Context) Block    { return b.Render(ctx) }
func (b *BoxWithoutContent) RenderInColumn(ctx *Context) Block { return b.Render(ctx) }

// Space is an empty spacer.
type Space struct {
	Props BaseProps
}

func (s *Space) Base() *BaseProps { return &s.Props }

func (s *Space) Render(ctx *Context) Block {
	w := s.Props.Width.Value
	h := s.Props.Height.Value
	if w < 1 && h < 1 {
		return Block{}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	blank := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", w)+"\n", h), "\n")
	return Block{Content: blank, Width: w, Height: h}
}

func (s *Space) RenderInRow(ctx *Context) Block    { return s.Render(ctx) }
func (s *Space) RenderInColumn(ctx *Context) Block { return s.Render(ctx) }

func innerWidth(ctx *Context, b *BaseProps) int {
	w := ctx.MaxWidth
	if b.Width.Rule == SizeSpecified && b.Width.Value > 0 {
		w = b.Width.Value
	}
	if w > 0 {
		w -= b.Padding.Left + b.Padding.Right
		if w < 0 {
			w = 0
		}
	}
	return w
}

func innerHeight(ctx *Context, b *BaseProps) int {
	h := ctx.MaxHeight
	if b.Height.Rule == SizeSpecified && b.Height.Value > 0 {
		h = b.Height.Value
	}
	if h > 0 {
		h -= b.Padding.Top + b.Padding.Bottom
		if h < 0 {
			h = 0
		}
	}
	return h
}

func hPosition(a Alignment) lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignEnd:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

func vPosition(a Alignment) lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignEnd:
		return lipgloss.Bottom
	default:
		return lipgloss.Top
	}
}
