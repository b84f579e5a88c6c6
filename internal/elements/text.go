package elements

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/skylineapps/paywallkit/internal/assets"
	"github.com/skylineapps/paywallkit/internal/texts"
)

// Text renders one resolved string id. Timer shares the same primitive; see
// renderTextContent.
type Text struct {
	Props       BaseProps
	StringID    texts.StringID
	FontAssetID string
	HAlign      Alignment
	MaxLines    int
	AutoShrink  bool

	pinnedHeight int
}

func (t *Text) Base() *BaseProps { return &t.Props }

func (t *Text) Render(ctx *Context) Block {
	res := ctx.Resolve(t.StringID)
	content := renderTextContent(ctx, res, t.FontAssetID)
	return finishText(ctx, &t.Props, content, t.HAlign, t.MaxLines, t.AutoShrink, &t.pinnedHeight)
}

func (t *Text) RenderInRow(ctx *Context) Block    { return t.Render(ctx) }
func (t *Text) RenderInColumn(ctx *Context) Block { return t.Render(ctx) }

// renderTextContent flattens a resolution result to a styled inline string.
// Sentinel outcomes render as empty; the caller already branched on them if
// it needed to.
func renderTextContent(ctx *Context, res texts.Result, fontAssetID string) string {
	switch res.Kind {
	case texts.ResultSingle:
		return styleRun(ctx, res.Value, res.Attrs, fontAssetID)
	case texts.ResultComplex:
		var sb strings.Builder
		for _, part := range res.Parts {
			switch part.Kind {
			case texts.PartText:
				sb.WriteString(styleRun(ctx, part.Text, part.Attrs, fontAssetID))
			case texts.PartImage:
				sb.WriteString(inlineImage(ctx, part.ImageID, part.Attrs))
			case texts.PartTimerSegment:
				// Bare timer segments inside a plain text render at zero;
				// live countdown digits belong to the Timer element
				sb.WriteString(part.Segment.Render(0))
			}
		}
		return sb.String()
	default:
		return ""
	}
}

// styleRun applies per-run attributes over the element font: color, glyph
// background fill, strikethrough and underline.
func styleRun(ctx *Context, text string, attrs *texts.Attributes, fontAssetID string) string {
	style := lipgloss.NewStyle()

	fontID := fontAssetID
	if attrs != nil && attrs.FontAssetID != "" {
		fontID = attrs.FontAssetID
	}
	if fontID != "" {
		if asset, ok := ctx.Assets.GetForCurrentTheme(fontID); ok {
			if font, isFont := asset.(assets.Font); isFont {
				if font.Color != "" {
					style = style.Foreground(lipgloss.Color(font.Color))
				}
				if font.Weight >= 600 {
					style = style.Bold(true)
				}
				if font.Italic {
					style = style.Italic(true)
				}
			}
		}
	}

	if attrs != nil {
		if color, ok := ResolveColor(ctx, attrs.ColorAssetID); ok {
			style = style.Foreground(color)
		}
		// Background fill behind the glyphs only, not the whole line
		if color, ok := ResolveColor(ctx, attrs.BackgroundAssetID); ok {
			style = style.Background(color)
		}
		if attrs.Strikethrough {
			style = style.Strikethrough(true)
		}
		if attrs.Underline {
			style = style.Underline(true)
		}
	}
	return style.Render(text)
}

// inlineImage renders an inline image reference as a compact glyph
// placeholder tinted by the run attributes.
func inlineImage(ctx *Context, imageID string, attrs *texts.Attributes) string {
	if _, ok := ctx.Assets.GetForCurrentTheme(imageID); !ok {
		return ""
	}
	style := lipgloss.NewStyle()
	if attrs != nil {
		if color, ok := ResolveColor(ctx, attrs.TintAssetID); ok {
			style = style.Foreground(color)
		}
	}
	return style.Render("◆")
}

// finishText applies wrapping, auto-shrink and height retention, then the
// element's own box styling.
func finishText(ctx *Context, props *BaseProps, content string, align Alignment, maxLines int, autoShrink bool, pinned *int) Block {
	style := StyleProps(ctx, props).Align(hPosition(align))

	wrapWidth := ctx.MaxWidth
	if props.Width.Rule == SizeSpecified && props.Width.Value > 0 {
		wrapWidth = props.Width.Value
	}
	if wrapWidth > 0 && lipgloss.Width(content) > wrapWidth {
		style = style.Width(wrapWidth)
	}

	if autoShrink && maxLines > 0 && wrapWidth > 0 {
		content = shrinkToFit(content, wrapWidth, maxLines)
	}

	// Pin the first measured height so later content changes don't reflow
	// siblings
	if *pinned == 0 {
		probe := style.Render(content)
		*pinned = lipgloss.Height(probe)
	} else {
		style = style.Height(*pinned)
	}

	return finishBlock(ctx, props, style, content)
}

// shrinkToFit is the terminal rendition of iterative font shrinking: each
// pass trims 10% of the overflow until the text fits maxLines or ten passes
// give up, after which the tail is cut with an ellipsis.
func shrinkToFit(content string, width, maxLines int) string {
	for attempt := 0; attempt < 10; attempt++ {
		if wrappedLineCount(content, width) <= maxLines {
			return content
		}
		keep := ansi.StringWidth(content) * 9 / 10
		if keep == 0 {
			break
		}
		content = ansi.Truncate(content, keep, "")
	}
	if budget := width*maxLines - 1; budget > 0 && ansi.StringWidth(content) > budget {
		content = ansi.Truncate(content, budget, "")
	}
	return strings.TrimRight(content, " ") + "…"
}

func wrappedLineCount(content string, width int) int {
	if width <= 0 {
		return lipgloss.Height(content)
	}
	return lipgloss.Height(lipgloss.NewStyle().Width(width).Render(content))
}
