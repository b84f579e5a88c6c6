package templates

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skylineapps/paywallkit/internal/elements"
)

// Kind selects the layout strategy of a screen.
type Kind int

const (
	// Basic pins the cover above a scrollable content region and a footer at
	// the bottom edge.
	Basic Kind = iota
	// Flat scrolls the cover together with the content; only the footer is
	// pinned.
	Flat
	// Transparent anchors the content to the bottom of a full-bleed
	// background with no height reconciliation.
	Transparent
)

// String returns a human-readable name for the template kind
func (k Kind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Flat:
		return "flat"
	case Transparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// Screen is one top-level paywall layout.
type Screen struct {
	Kind              Kind
	BackgroundAssetID string
	// Cover is the hero region; CoverHeight fixes its extent in cells.
	Cover       elements.Element
	CoverHeight int
	Content     elements.Element
	Footer      elements.Element
	Overlay     elements.Element

	reconciler reconciler
}

// reconciler tracks the measured content and footer heights so the scroll
// region only changes when a measurement changes, and converges to a stable
// height instead of oscillating.
type reconciler struct {
	content int
	footer  int
	region  int
}

// regionHeight returns the scroll region height for the given measurements.
// The region is shrunk by exactly the amount the footer would overlap
// unscrolled content, so the footer never occludes the last content line.
func (r *reconciler) regionHeight(available, content, footer int) int {
	if content == r.content && footer == r.footer && r.region > 0 {
		return r.region
	}
	r.content = content
	r.footer = footer

	overlap := content + footer - available
	if overlap < 0 {
		overlap = 0
	}
	if overlap > footer {
		overlap = footer
	}
	r.region = available - overlap
	if r.region < 1 {
		r.region = 1
	}
	return r.region
}

// Render lays the screen out into a width x height viewport. scroll is the
// content region's line offset, clamped to what the content allows; the
// second result is the maximum scroll offset so the caller can clamp its own
// cursor.
func (s *Screen) Render(ctx *elements.Context, width, height, scroll int) (string, int) {
	canvas := s.background(ctx, width, height)

	var footerBlock elements.Block
	if s.Footer != nil {
		footerBlock = s.Footer.Render(ctx.WithConstraints(width, height))
	}
	footerHeight := 0
	if !footerBlock.Omitted {
		footerHeight = footerBlock.Height
	}

	var body string
	var maxScroll int
	switch s.Kind {
	case Transparent:
		body, maxScroll = s.renderTransparent(ctx, width, height, footerHeight)
	case Flat:
		body, maxScroll = s.renderScrollable(ctx, width, height, footerHeight, scroll, true)
	default:
		body, maxScroll = s.renderScrollable(ctx, width, height, footerHeight, scroll, false)
	}
	canvas = elements.Overlay(canvas, body, 0, 0)

	if footerHeight > 0 {
		canvas = elements.Overlay(canvas, footerBlock.Content, 0, height-footerHeight)
	}

	if s.Overlay != nil {
		over := s.Overlay.Render(ctx.WithConstraints(width, height))
		if !over.Omitted {
			x := (width - over.Width) / 2
			y := (height - over.Height) / 2
			canvas = elements.Overlay(canvas, over.Content, x, y)
		}
	}
	return canvas, maxScroll
}

// renderScrollable handles the basic and flat strategies. When coverScrolls
// is true the cover is the first lines of the scrollable region instead of a
// pinned band above it.
func (s *Screen) renderScrollable(ctx *elements.Context, width, height, footerHeight, scroll int, coverScrolls bool) (string, int) {
	var pinnedCover string
	pinnedHeight := 0
	var scrolled []string

	if s.Cover != nil {
		cover := s.Cover.Render(ctx.WithConstraints(width, s.CoverHeight))
		if !cover.Omitted {
			band := fitBand(cover.Content, width, s.CoverHeight)
			if coverScrolls {
				scrolled = append(scrolled, splitLines(band)...)
			} else {
				pinnedCover = band
				pinnedHeight = s.CoverHeight
			}
		}
	}

	available := height - pinnedHeight
	if s.Content != nil {
		content := s.Content.Render(ctx.WithConstraints(width, available))
		if !content.Omitted {
			scrolled = append(scrolled, splitLines(content.Content)...)
		}
	}

	region := s.reconciler.regionHeight(available, len(scrolled), footerHeight)

	maxScroll := len(scrolled) - region
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	window := scrolled[scroll:]
	if len(window) > region {
		window = window[:region]
	}

	parts := make([]string, 0, 2)
	if pinnedCover != "" {
		parts = append(parts, pinnedCover)
	}
	if len(window) > 0 {
		parts = append(parts, strings.Join(window, "\n"))
	}
	return strings.Join(parts, "\n"), maxScroll
}

// renderTransparent bottom-anchors the content above the footer band.
func (s *Screen) renderTransparent(ctx *elements.Context, width, height, footerHeight int) (string, int) {
	if s.Content == nil {
		return "", 0
	}
	content := s.Content.Render(ctx.WithConstraints(width, height-footerHeight))
	if content.Omitted {
		return "", 0
	}
	top := height - footerHeight - content.Height
	if top < 0 {
		top = 0
	}
	pad := strings.Repeat("\n", top)
	return pad + content.Content, 0
}

// background paints the viewport-sized backdrop.
func (s *Screen) background(ctx *elements.Context, width, height int) string {
	style := lipgloss.NewStyle().Width(width).Height(height)
	if color, ok := elements.ResolveColor(ctx, s.BackgroundAssetID); ok {
		style = style.Background(color)
	}
	return style.Render("")
}

// fitBand clamps a rendered region to an exact width x height band.
func fitBand(content string, width, height int) string {
	lines := splitLines(content)
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
