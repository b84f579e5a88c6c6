package texts

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/assets"
	"github.com/skylineapps/paywallkit/internal/logging"
	"github.com/skylineapps/paywallkit/internal/products"
	"github.com/skylineapps/paywallkit/internal/state"
)

// Product tag vocabulary.
const (
	tagTitle               = "TITLE"
	tagPrice               = "PRICE"
	tagPricePerDay         = "PRICE_PER_DAY"
	tagPricePerWeek        = "PRICE_PER_WEEK"
	tagPricePerMonth       = "PRICE_PER_MONTH"
	tagPricePerYear        = "PRICE_PER_YEAR"
	tagOfferPrice          = "OFFER_PRICE"
	tagOfferPeriod         = "OFFER_PERIOD"
	tagOfferNumberOfPeriod = "OFFER_NUMBER_OF_PERIOD"
)

// productCascadePrefix prefixes every product text key in the cascade.
const productCascadePrefix = "PRODUCT"

// notSelectedMode is the cascade mode used when a group has no selection.
const notSelectedMode = "not_selected"

// CustomTagResolver supplies host-app values for unknown tags. The second
// result reports whether the host recognizes the tag.
type CustomTagResolver func(tag string) (string, bool)

// Inputs is the snapshot a resolution runs against. The maps are owned by the
// view model; the engine only reads them.
type Inputs struct {
	Texts    map[string]*Item
	Products map[string]*products.Product
	Assets   *assets.Resolver
	State    state.Store
}

// Engine resolves StringIDs. It is stateless apart from configuration and
// safe to call on every render pass.
type Engine struct {
	customTags       CustomTagResolver
	ignoreMissingTag bool
	logger           *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCustomTags installs the host's custom tag resolver.
func WithCustomTags(r CustomTagResolver) Option {
	return func(e *Engine) { e.customTags = r }
}

// WithIgnoreMissingCustomTags keeps unknown custom tags as their literal name
// instead of failing the whole template.
func WithIgnoreMissingCustomTags(ignore bool) Option {
	return func(e *Engine) { e.ignoreMissingTag = ignore }
}

// WithLogger installs the logger the engine reports misses to.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates a text resolution engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve maps a string id to renderable text against the given snapshot.
// Misses resolve to tagged sentinel results; the only error is a malformed
// structured id, which callers hit at decode time, not here.
func (e *Engine) Resolve(id StringID, in Inputs) Result {
	switch ref := id.(type) {
	case StrID:
		item, ok := in.Texts[ref.Key]
		if !ok {
			logging.LogResolutionMiss(e.logger, "text", ref.Key)
			return Empty()
		}
		return e.resolveItem(item, nil, in)
	case ProductID:
		return e.resolveProduct(ref, in)
	default:
		return Empty()
	}
}

// resolveProduct walks the product text key cascade and resolves the first
// existing item with the target product as tag context.
func (e *Engine) resolveProduct(ref ProductID, in Inputs) Result {
	productID := ref.ProductID
	if productID == "" {
		productID, _ = in.State.SelectedProduct(ref.GroupID)
	}

	var product *products.Product
	if productID != "" {
		product = in.Products[productID]
	}

	var keys []string
	if productID == "" {
		keys = []string{cascadeKey(notSelectedMode, ref.Suffix)}
	} else {
		mode := products.ModeDefault.String()
		if product != nil {
			mode = product.PaymentMode().String()
		}
		keys = []string{
			cascadeKey(productID+"_"+mode, ref.Suffix),
			cascadeKey(productID+"_"+products.ModeDefault.String(), ref.Suffix),
			cascadeKey(mode, ref.Suffix),
			cascadeKey(products.ModeDefault.String(), ref.Suffix),
		}
	}

	for _, key := range keys {
		if item, ok := in.Texts[key]; ok {
			return e.resolveItem(item, product, in)
		}
	}
	e.logger.Debug("Product text cascade exhausted",
		zap.String("product_id", productID),
		zap.String("group_id", ref.GroupID),
		zap.String("suffix", ref.Suffix),
	)
	return Empty()
}

// cascadeKey joins cascade segments, omitting an empty suffix.
func cascadeKey(middle, suffix string) string {
	if suffix == "" {
		return productCascadePrefix + "_" + middle
	}
	return productCascadePrefix + "_" + middle + "_" + suffix
}

// resolveItem resolves a text item, retrying with the fallback template when
// the primary fails on a missing custom tag.
func (e *Engine) resolveItem(item *Item, product *products.Product, in Inputs) Result {
	res := e.resolveTemplate(item, product, in)
	if res.Kind == ResultCustomTagMissing && item.Fallback != nil {
		return e.resolveTemplate(item.Fallback, product, in)
	}
	return res
}

func (e *Engine) resolveTemplate(item *Item, product *products.Product, in Inputs) Result {
	if !item.IsRich() {
		return Single(item.Value, item.Attrs)
	}

	parts := make([]Part, 0, len(item.Rich))
	for _, rp := range item.Rich {
		switch rp.Kind {
		case RichLiteral:
			parts = append(parts, Part{Kind: PartText, Text: rp.Value, Attrs: attrsOr(rp.Attrs, item.Attrs)})
		case RichImage:
			parts = append(parts, Part{Kind: PartImage, ImageID: rp.Value, Attrs: attrsOr(rp.Attrs, item.Attrs)})
		case RichTag:
			part, outcome := e.resolveTag(rp, product, in)
			if outcome != ResultComplex {
				// A missing product or custom tag aborts the whole template
				return Result{Kind: outcome}
			}
			parts = append(parts, part)
		}
	}

	if len(parts) == 1 && parts[0].Kind == PartText {
		return Single(parts[0].Text, parts[0].Attrs)
	}
	if len(parts) == 1 && parts[0].Kind == PartTimerSegment {
		return Result{Kind: ResultTimerSegment, Segment: parts[0].Segment, Attrs: parts[0].Attrs}
	}
	return Result{Kind: ResultComplex, Parts: parts, Attrs: item.Attrs}
}

// resolveTag resolves one tag part. The second result is ResultComplex on
// success and the aborting kind otherwise.
func (e *Engine) resolveTag(rp RichPart, product *products.Product, in Inputs) (Part, ResultKind) {
	attrs := rp.Attrs

	if isProductTag(rp.Value) {
		if product == nil {
			logging.LogResolutionMiss(e.logger, "product_tag", rp.Value)
			return Part{}, ResultProductMissing
		}
		return Part{Kind: PartText, Text: productTagValue(rp.Value, product), Attrs: attrs}, ResultComplex
	}

	if seg, ok := ParseTimerTag(rp.Value); ok {
		segCopy := seg
		return Part{Kind: PartTimerSegment, Segment: &segCopy, Attrs: attrs}, ResultComplex
	}

	if e.customTags != nil {
		if value, ok := e.customTags(rp.Value); ok {
			return Part{Kind: PartText, Text: value, Attrs: attrs}, ResultComplex
		}
	}
	if e.ignoreMissingTag {
		return Part{Kind: PartText, Text: rp.Value, Attrs: attrs}, ResultComplex
	}
	logging.LogResolutionMiss(e.logger, "custom_tag", rp.Value)
	return Part{}, ResultCustomTagMissing
}

func isProductTag(tag string) bool {
	switch tag {
	case tagTitle, tagPrice, tagPricePerDay, tagPricePerWeek, tagPricePerMonth,
		tagPricePerYear, tagOfferPrice, tagOfferPeriod, tagOfferNumberOfPeriod:
		return true
	}
	return false
}

func productTagValue(tag string, p *products.Product) string {
	switch tag {
	case tagTitle:
		return p.Title
	case tagPrice:
		return p.Price.Localized
	case tagPricePerDay:
		return products.PricePer(p, products.PeriodDay)
	case tagPricePerWeek:
		return products.PricePer(p, products.PeriodWeek)
	case tagPricePerMonth:
		return products.PricePer(p, products.PeriodMonth)
	case tagPricePerYear:
		return products.PricePer(p, products.PeriodYear)
	case tagOfferPrice:
		if offer := p.FirstOffer(); offer != nil {
			return offer.Price.Localized
		}
		return ""
	case tagOfferPeriod:
		if offer := p.FirstOffer(); offer != nil {
			return formatPeriod(offer.Period)
		}
		return ""
	case tagOfferNumberOfPeriod:
		if offer := p.FirstOffer(); offer != nil {
			return strconv.Itoa(offer.NumberOfPeriods)
		}
		return ""
	}
	return ""
}

// formatPeriod renders a billing period as display text, e.g. "3 months".
func formatPeriod(period products.Period) string {
	unit := period.Unit.String()
	if period.NumberOfUnits == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", period.NumberOfUnits, unit)
}

// attrsOr picks the part's own attributes, else the item's.
func attrsOr(own, item *Attributes) *Attributes {
	if own != nil {
		return own
	}
	return item
}
