package elements

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skylineapps/paywallkit/internal/assets"
)

// Image renders a bitmap asset reference as a shaded placeholder block of
// the declared size. A remote image without fetched data renders its
// preview; a broken or missing asset omits the element from layout.
type Image struct {
	Props       BaseProps
	AssetID     string
	TintAssetID string
}

func (img *Image) Base() *BaseProps { return &img.Props }

func (img *Image) Render(ctx *Context) Block {
	asset, ok := ctx.Assets.GetForCurrentTheme(img.AssetID)
	if !ok {
		ctx.Logger.Debug("Image asset not found; element omitted")
		return OmittedBlock()
	}

	switch a := asset.(type) {
	case assets.Image:
		return img.renderPlaceholder(ctx)
	case assets.RemoteImage:
		if a.Preview == nil {
			return OmittedBlock()
		}
		return img.renderPlaceholder(ctx)
	case assets.Video:
		if a.Preview == nil {
			return OmittedBlock()
		}
		return img.renderPlaceholder(ctx)
	default:
		return OmittedBlock()
	}
}

func (img *Image) RenderInRow(ctx *Context) Block    { return img.Render(ctx) }
func (img *Image) RenderInColumn(ctx *Context) Block { return img.Render(ctx) }

func (img *Image) renderPlaceholder(ctx *Context) Block {
	w := img.Props.Width.Value
	h := img.Props.Height.Value
	if w < 1 {
		w = 4
	}
	if h < 1 {
		h = 2
	}

	style := lipgloss.NewStyle()
	if color, ok := ResolveColor(ctx, img.TintAssetID); ok {
		style = style.Foreground(color)
	}
	line := strings.Repeat("▒", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = line
	}
	content := style.Render(strings.Join(rows, "\n"))
	return finishBlock(ctx, &img.Props, StyleProps(ctx, &img.Props), content)
}
