package elements

import (
	"github.com/charmbracelet/lipgloss"
)

// Button dispatches its action list on tap and can swap between a normal and
// a selected visual state driven by a Condition.
type Button struct {
	Props    BaseProps
	ID       string
	Normal   Element
	Selected Element
	// SelectedCondition picks the Selected child while it holds.
	SelectedCondition *Condition
	Actions           []Action

	notifiedInitial bool
}

func (b *Button) Base() *BaseProps { return &b.Props }

func (b *Button) Render(ctx *Context) Block {
	child := b.Normal
	if b.SelectedCondition != nil && b.SelectedCondition.Holds(ctx.State) {
		if b.Selected != nil {
			child = b.Selected
		}
		// Tell external listeners about the default selection, exactly once
		// per button instance
		if !b.notifiedInitial && b.SelectedCondition.Kind == CondSelectedProduct && ctx.Events != nil {
			b.notifiedInitial = true
			ctx.Events.OnInitialProductSelected(b.SelectedCondition.GroupID, b.SelectedCondition.ProductID)
		}
	}

	var content string
	if child != nil {
		inner := child.Render(ctx)
		if inner.Omitted {
			return inner
		}
		content = inner.Content
	}

	// A fully transparent button renders its slot but cannot be tapped
	if b.Props.OpacityAt(ctx.Elapsed) > 0 {
		ctx.RegisterHotspot(Hotspot{
			ID:      b.ID,
			Label:   hotspotLabel(ctx, child),
			Actions: b.Actions,
		})
	}

	return finishBlock(ctx, &b.Props, StyleProps(ctx, &b.Props), content)
}

func (b *Button) RenderInRow(ctx *Context) Block    { return b.Render(ctx) }
func (b *Button) RenderInColumn(ctx *Context) Block { return b.Render(ctx) }

// hotspotLabel extracts display text for key-binding help from the button's
// child, best effort.
func hotspotLabel(ctx *Context, child Element) string {
	if text, ok := child.(*Text); ok {
		return ctx.Resolve(text.StringID).PlainString()
	}
	return ""
}

// Toggle is a two-state switch bound to the Condition vocabulary: flipping
// it dispatches the on-action or off-action list depending on the current
// state.
type Toggle struct {
	Props      BaseProps
	ID         string
	Condition  Condition
	OnActions  []Action
	OffActions []Action
	// ThumbColorAssetID tints the knob when set.
	ThumbColorAssetID string
}

func (t *Toggle) Base() *BaseProps { return &t.Props }

func (t *Toggle) Render(ctx *Context) Block {
	on := t.Condition.Holds(ctx.State)

	knob := "○──"
	if on {
		knob = "──●"
	}
	content := knob
	if color, ok := ResolveColor(ctx, t.ThumbColorAssetID); ok {
		content = lipgloss.NewStyle().Foreground(color).Render(knob)
	}

	actions := t.OnActions
	if on {
		actions = t.OffActions
	}
	if t.Props.OpacityAt(ctx.Elapsed) > 0 {
		ctx.RegisterHotspot(Hotspot{ID: t.ID, Actions: actions})
	}

	return finishBlock(ctx, &t.Props, StyleProps(ctx, &t.Props), content)
}

func (t *Toggle) RenderInRow(ctx *Context) Block    { return t.Render(ctx) }
func (t *Toggle) RenderInColumn(ctx *Context) Block { return t.Render(ctx) }
