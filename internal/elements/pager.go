package elements

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skylineapps/paywallkit/internal/animation"
)

// PagerInterruption is what a user drag does to a running auto-advance.
type PagerInterruption int

const (
	// InterruptionCancel stops auto-advance permanently.
	InterruptionCancel PagerInterruption = iota
	// InterruptionPause suspends auto-advance and resumes after the
	// configured start delay.
	InterruptionPause
)

// PagerAnimation configures automatic page advancing. The player owns the
// clock; the element only declares the timing.
type PagerAnimation struct {
	// StartDelay before the first automatic transition.
	StartDelay time.Duration
	// PageTransition is the duration of each page slide.
	PageTransition time.Duration
	// Easing shapes the slide.
	Easing animation.Easing
	// RepeatTransition, when positive, slides back to page 0 after the last
	// page using this duration.
	RepeatTransition time.Duration
	// Interruption is the user-drag policy.
	Interruption PagerInterruption
}

// IndicatorLayout positions the page dots relative to the pages.
type IndicatorLayout int

const (
	// IndicatorStacked renders the dots as an extra row below/above pages.
	IndicatorStacked IndicatorLayout = iota
	// IndicatorOverlay paints the dots over the page content.
	IndicatorOverlay
)

// PagerIndicator is the dot-row page position indicator.
type PagerIndicator struct {
	Layout               IndicatorLayout
	VAlign               Alignment
	SelectedColorAssetID string
	ColorAssetID         string
}

// Pager is a horizontally paged carousel. The current page index is owned by
// the player (user drags and the auto-advance clock live there); rendering
// pulls it through the context.
type Pager struct {
	Props     BaseProps
	ID        string
	Pages     []Element
	Animation *PagerAnimation
	Indicator *PagerIndicator
}

func (p *Pager) Base() *BaseProps { return &p.Props }

// PageCount returns the number of pages.
func (p *Pager) PageCount() int { return len(p.Pages) }

func (p *Pager) Render(ctx *Context) Block {
	if len(p.Pages) == 0 {
		return OmittedBlock()
	}

	page := 0
	if ctx.PagerIndex != nil {
		page = ctx.PagerIndex(p.ID)
	}
	if page < 0 || page >= len(p.Pages) {
		page = 0
	}

	current := p.Pages[page].Render(ctx)
	if current.Omitted {
		return current
	}
	content := current.Content

	if p.Indicator != nil && len(p.Pages) > 1 {
		dots := p.renderDots(ctx, page)
		switch p.Indicator.Layout {
		case IndicatorOverlay:
			x := (lipgloss.Width(content) - lipgloss.Width(dots)) / 2
			if x < 0 {
				x = 0
			}
			y := overlayRow(p.Indicator.VAlign, lipgloss.Height(content))
			content = Overlay(content, dots, x, y)
		default:
			dotLine := lipgloss.PlaceHorizontal(lipgloss.Width(content), lipgloss.Center, dots)
			if p.Indicator.VAlign == AlignStart {
				content = lipgloss.JoinVertical(lipgloss.Center, dotLine, content)
			} else {
				content = lipgloss.JoinVertical(lipgloss.Center, content, dotLine)
			}
		}
	}

	return finishBlock(ctx, &p.Props, StyleProps(ctx, &p.Props), content)
}

func (p *Pager) RenderInRow(ctx *Context) Block    { return p.Render(ctx) }
func (p *Pager) RenderInColumn(ctx *Context) Block { return p.Render(ctx) }

func (p *Pager) renderDots(ctx *Context, page int) string {
	selected := lipgloss.NewStyle()
	if color, ok := ResolveColor(ctx, p.Indicator.SelectedColorAssetID); ok {
		selected = selected.Foreground(color)
	}
	normal := lipgloss.NewStyle()
	if color, ok := ResolveColor(ctx, p.Indicator.ColorAssetID); ok {
		normal = normal.Foreground(color)
	}

	var sb strings.Builder
	for i := range p.Pages {
		if i > 0 {
			sb.WriteString(" ")
		}
		if i == page {
			sb.WriteString(selected.Render("●"))
		} else {
			sb.WriteString(normal.Render("○"))
		}
	}
	return sb.String()
}

func overlayRow(align Alignment, height int) int {
	switch align {
	case AlignStart:
		return 0
	case AlignCenter:
		return height / 2
	default:
		return height - 1
	}
}
