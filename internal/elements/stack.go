package elements

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HStack lays children out left to right with uniform spacing. Weighted
// children share the leftover horizontal space.
type HStack struct {
	Props     BaseProps
	Spacing   int
	Alignment Alignment // cross-axis (vertical) alignment
	Children  []Element
}

func (s *HStack) Base() *BaseProps { return &s.Props }

func (s *HStack) Render(ctx *Context) Block {
	content := renderAxis(ctx, s.Children, s.Spacing, s.Alignment, true)
	return finishBlock(ctx, &s.Props, StyleProps(ctx, &s.Props), content)
}

func (s *HStack) RenderInRow(ctx *Context) Block    { return s.Render(ctx) }
func (s *HStack) RenderInColumn(ctx *Context) Block { return s.Render(ctx) }

// VStack lays children out top to bottom with uniform spacing. Weighted
// children share the leftover vertical space.
type VStack struct {
	Props     BaseProps
	Spacing   int
	Alignment Alignment // cross-axis (horizontal) alignment
	Children  []Element
}

func (s *VStack) Base() *BaseProps { return &s.Props }

func (s *VStack) Render(ctx *Context) Block {
	content := renderAxis(ctx, s.Children, s.Spacing, s.Alignment, false)
	return finishBlock(ctx, &s.Props, StyleProps(ctx, &s.Props), content)
}

func (s *VStack) RenderInRow(ctx *Context) Block    { return s.Render(ctx) }
func (s *VStack) RenderInColumn(ctx *Context) Block { return s.Render(ctx) }

// ZStack overlays all children at the same origin with a shared alignment.
// Later children paint over earlier ones.
type ZStack struct {
	Props     BaseProps
	Alignment Alignment
	Children  []Element
}

func (s *ZStack) Base() *BaseProps { return &s.Props }

func (s *ZStack) Render(ctx *Context) Block {
	var blocks []Block
	maxW, maxH := 0, 0
	for _, child := range s.Children {
		b := child.Render(ctx)
		if b.Omitted {
			continue
		}
		blocks = append(blocks, b)
		if b.Width > maxW {
			maxW = b.Width
		}
		if b.Height > maxH {
			maxH = b.Height
		}
	}
	if len(blocks) == 0 {
		return finishBlock(ctx, &s.Props, StyleProps(ctx, &s.Props), "")
	}

	canvas := blocks[0].Content
	if blocks[0].Width < maxW || blocks[0].Height < maxH {
		canvas = lipgloss.Place(maxW, maxH, position(s.Alignment), position(s.Alignment), canvas)
	}
	for _, b := range blocks[1:] {
		x := alignedOffset(maxW, b.Width, s.Alignment)
		y := alignedOffset(maxH, b.Height, s.Alignment)
		canvas = Overlay(canvas, b.Content, x, y)
	}
	return finishBlock(ctx, &s.Props, StyleProps(ctx, &s.Props), canvas)
}

func (s *ZStack) RenderInRow(ctx *Context) Block    { return s.Render(ctx) }
func (s *ZStack) RenderInColumn(ctx *Context) Block { return s.Render(ctx) }

// renderAxis renders children along one axis: fixed children first, then
// weighted children sharing whatever space remains.
func renderAxis(ctx *Context, children []Element, spacing int, align Alignment, horizontal bool) string {
	type slot struct {
		el    Element
		block Block
	}

	slots := make([]slot, 0, len(children))
	totalWeight := 0
	used := 0
	fixedCount := 0

	for _, child := range children {
		w := child.Base().Weight
		if w > 0 {
			totalWeight += w
			slots = append(slots, slot{el: child})
			continue
		}
		var b Block
		if horizontal {
			b = child.RenderInRow(ctx)
		} else {
			b = child.RenderInColumn(ctx)
		}
		if b.Omitted {
			continue
		}
		if horizontal {
			used += b.Width
		} else {
			used += b.Height
		}
		fixedCount++
		slots = append(slots, slot{el: child, block: b})
	}

	// Weighted children consume the remaining main-axis space
	if totalWeight > 0 {
		available := 0
		if horizontal && ctx.MaxWidth > 0 {
			available = ctx.MaxWidth - used - spacing*(len(slots)-1)
		} else if !horizontal && ctx.MaxHeight > 0 {
			available = ctx.MaxHeight - used - spacing*(len(slots)-1)
		}
		if available < 0 {
			available = 0
		}
		for i := range slots {
			w := slots[i].el.Base().Weight
			if w == 0 || slots[i].block.Content != "" {
				continue
			}
			share := available * w / totalWeight
			var childCtx *Context
			if horizontal {
				childCtx = ctx.WithConstraints(share, ctx.MaxHeight)
				slots[i].block = slots[i].el.RenderInRow(childCtx)
			} else {
				childCtx = ctx.WithConstraints(ctx.MaxWidth, share)
				slots[i].block = slots[i].el.RenderInColumn(childCtx)
			}
		}
	}

	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.block.Omitted {
			continue
		}
		parts = append(parts, s.block.Content)
	}
	if len(parts) == 0 {
		return ""
	}

	if spacing > 0 {
		parts = intersperse(parts, spacerBlock(spacing, horizontal))
	}
	if horizontal {
		return lipgloss.JoinHorizontal(position(align), parts...)
	}
	return lipgloss.JoinVertical(position(align), parts...)
}

func spacerBlock(spacing int, horizontal bool) string {
	if horizontal {
		return strings.Repeat(" ", spacing)
	}
	return strings.TrimSuffix(strings.Repeat("\n", spacing), "\n")
}

func intersperse(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func position(a Alignment) lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignEnd:
		return lipgloss.Bottom
	default:
		return lipgloss.Top
	}
}

func alignedOffset(total, size int, a Alignment) int {
	if size >= total {
		return 0
	}
	switch a {
	case AlignCenter:
		return (total - size) / 2
	case AlignEnd:
		return total - size
	default:
		return 0
	}
}
