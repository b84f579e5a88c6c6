package elements

import (
	"github.com/charmbracelet/lipgloss"
)

// Row is a grid axis container: GridItem children occupy fixed-width slots
// laid out left to right.
type Row struct {
	Props    BaseProps
	Spacing  int
	Children []Element
}

func (r *Row) Base() *BaseProps { return &r.Props }

func (r *Row) Render(ctx *Context) Block {
	content := renderAxis(ctx, r.Children, r.Spacing, AlignStart, true)
	return finishBlock(ctx, &r.Props, StyleProps(ctx, &r.Props), content)
}

func (r *Row) RenderInRow(ctx *Context) Block    { return r.Render(ctx) }
func (r *Row) RenderInColumn(ctx *Context) Block { return r.Render(ctx) }

// Column is a grid axis container: GridItem children occupy fixed-height
// slots laid out top to bottom.
type Column struct {
	Props    BaseProps
	Spacing  int
	Children []Element
}

func (c *Column) Base() *BaseProps { return &c.Props }

func (c *Column) Render(ctx *Context) Block {
	content := renderAxis(ctx, c.Children, c.Spacing, AlignStart, false)
	return finishBlock(ctx, &c.Props, StyleProps(ctx, &c.Props), content)
}

func (c *Column) RenderInRow(ctx *Context) Block    { return c.Render(ctx) }
func (c *Column) RenderInColumn(ctx *Context) Block { return c.Render(ctx) }

// GridItem occupies one axis slot: its span fixes the width inside a Row or
// the height inside a Column, with independent cross-axis alignment.
type GridItem struct {
	Props  BaseProps
	Span   int
	HAlign Alignment
	VAlign Alignment
	Child  Element
}

func (g *GridItem) Base() *BaseProps { return &g.Props }

// Render outside a grid axis falls back to the child's own layout.
func (g *GridItem) Render(ctx *Context) Block {
	if g.Child == nil {
		return Block{}
	}
	child := g.Child.Render(ctx)
	if child.Omitted {
		return child
	}
	return finishBlock(ctx, &g.Props, StyleProps(ctx, &g.Props), child.Content)
}

func (g *GridItem) RenderInRow(ctx *Context) Block {
	return g.renderSlot(ctx, true)
}

func (g *GridItem) RenderInColumn(ctx *Context) Block {
	return g.renderSlot(ctx, false)
}

func (g *GridItem) renderSlot(ctx *Context, horizontal bool) Block {
	var content string
	if g.Child != nil {
		var inner *Context
		if horizontal {
			inner = ctx.WithConstraints(g.Span, ctx.MaxHeight)
		} else {
			inner = ctx.WithConstraints(ctx.MaxWidth, g.Span)
		}
		child := g.Child.Render(inner)
		if child.Omitted {
			return child
		}
		content = child.Content
	}

	// Fix the main axis to the slot span; align on the cross axis
	if horizontal {
		w := g.Span
		h := lipgloss.Height(content)
		if ctx.MaxHeight > 0 {
			h = ctx.MaxHeight
		}
		content = lipgloss.Place(w, h, hPosition(g.HAlign), vPosition(g.VAlign), content)
	} else {
		h := g.Span
		w := lipgloss.Width(content)
		if ctx.MaxWidth > 0 {
			w = ctx.MaxWidth
		}
		content = lipgloss.Place(w, h, hPosition(g.HAlign), vPosition(g.VAlign), content)
	}
	return finishBlock(ctx, &g.Props, StyleProps(ctx, &g.Props), content)
}
