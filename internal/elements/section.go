package elements

import (
	"go.uber.org/zap"
)

// Section is an index-addressable child switcher. The active index lives in
// runtime state under the section's key and falls back to the static default
// declared in the configuration. An out-of-range index renders nothing.
type Section struct {
	Props        BaseProps
	ID           string
	DefaultIndex int
	Children     []Element
}

func (s *Section) Base() *BaseProps { return &s.Props }

func (s *Section) Render(ctx *Context) Block {
	index, ok := ctx.State.SectionIndex(s.ID)
	if !ok {
		index = s.DefaultIndex
	}
	if index < 0 || index >= len(s.Children) {
		ctx.Logger.Debug("Section index out of range",
			zap.String("section_id", s.ID),
			zap.Int("index", index),
			zap.Int("children", len(s.Children)),
		)
		return OmittedBlock()
	}

	child := s.Children[index].Render(ctx)
	if child.Omitted {
		return child
	}
	return finishBlock(ctx, &s.Props, StyleProps(ctx, &s.Props), child.Content)
}

func (s *Section) RenderInRow(ctx *Context) Block    { return s.Render(ctx) }
func (s *Section) RenderInColumn(ctx *Context) Block { return s.Render(ctx) }

// Reference renders a screen-level element definition by id, enabling
// template reuse across a configuration. A dangling reference renders
// nothing.
type Reference struct {
	Props BaseProps
	To    string
}

func (r *Reference) Base() *BaseProps { return &r.Props }

func (r *Reference) Render(ctx *Context) Block {
	target, ok := ctx.Elements[r.To]
	if !ok || target == nil {
		ctx.Logger.Debug("Dangling element reference", zap.String("to", r.To))
		return OmittedBlock()
	}
	return target.Render(ctx)
}

func (r *Reference) RenderInRow(ctx *Context) Block {
	if target, ok := ctx.Elements[r.To]; ok && target != nil {
		return target.RenderInRow(ctx)
	}
	return OmittedBlock()
}

func (r *Reference) RenderInColumn(ctx *Context) Block {
	if target, ok := ctx.Elements[r.To]; ok && target != nil {
		return target.RenderInColumn(ctx)
	}
	return OmittedBlock()
}

// Unknown is a skipped element: a config node this SDK version does not
// understand renders as nothing rather than failing the screen.
type Unknown struct {
	Props BaseProps
}

func (u *Unknown) Base() *BaseProps              { return &u.Props }
func (u *Unknown) Render(*Context) Block         { return OmittedBlock() }
func (u *Unknown) RenderInRow(*Context) Block    { return OmittedBlock() }
func (u *Unknown) RenderInColumn(*Context) Block { return OmittedBlock() }
