package texts

import (
	"errors"
	"testing"

	"github.com/skylineapps/paywallkit/internal/products"
	"github.com/skylineapps/paywallkit/internal/state"
)

// Test fixture: a products map with one monthly subscription
func getSampleProducts() map[string]*products.Product {
	return map[string]*products.Product{
		"p1": {
			ID:      "p1",
			Title:   "Premium",
			GroupID: "main",
			Price:   products.Price{Amount: 9.99, Currency: "USD", Localized: "$9.99"},
			Subscription: &products.Period{
				Unit:          products.PeriodMonth,
				NumberOfUnits: 1,
			},
		},
	}
}

func getSampleInputs() Inputs {
	return Inputs{
		Texts:    map[string]*Item{},
		Products: getSampleProducts(),
		State:    state.Store{},
	}
}

func TestResolve_StrLiteral(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.Texts["hello"] = &Item{Value: "Hello, world"}

	res := e.Resolve(StrID{Key: "hello"}, in)
	if res.Kind != ResultSingle || res.Value != "Hello, world" {
		t.Errorf("Resolve(hello) = %+v, want Single(Hello, world)", res)
	}
}

func TestResolve_StrMissing(t *testing.T) {
	e := NewEngine()
	res := e.Resolve(StrID{Key: "nope"}, getSampleInputs())
	if res.Kind != ResultEmpty {
		t.Errorf("missing key should resolve to Empty, got %v", res.Kind)
	}
}

func TestResolve_ProductCascadeOrder(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{
			"specific mode wins",
			[]string{"PRODUCT_p1_default_title", "PRODUCT_default_title"},
			"PRODUCT_p1_default_title",
		},
		{
			"default catches all",
			[]string{"PRODUCT_default_title"},
			"PRODUCT_default_title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := getSampleInputs()
			for _, key := range tt.keys {
				in.Texts[key] = &Item{Value: key}
			}
			res := e.Resolve(ProductID{ProductID: "p1", GroupID: "main", Suffix: "title"}, in)
			if res.Value != tt.want {
				t.Errorf("cascade picked %q, want %q", res.Value, tt.want)
			}
		})
	}
}

func TestResolve_ProductCascade_PaymentMode(t *testing.T) {
	// A free-trial product: mode-specific keys outrank default keys, and the
	// product-specific key outranks both mode-only keys
	e := NewEngine()
	in := getSampleInputs()
	in.Products["p1"].Offers = []products.Offer{{ID: "trial", Mode: products.ModeFreeTrial}}
	in.Texts["PRODUCT_free_trial_title"] = &Item{Value: "mode"}
	in.Texts["PRODUCT_default_title"] = &Item{Value: "default"}

	res := e.Resolve(ProductID{ProductID: "p1", GroupID: "main", Suffix: "title"}, in)
	if res.Value != "mode" {
		t.Errorf("free_trial mode key should beat default, got %q", res.Value)
	}

	in.Texts["PRODUCT_p1_free_trial_title"] = &Item{Value: "specific"}
	res = e.Resolve(ProductID{ProductID: "p1", GroupID: "main", Suffix: "title"}, in)
	if res.Value != "specific" {
		t.Errorf("product-specific mode key should win the cascade, got %q", res.Value)
	}
}

func TestResolve_ProductCascade_DefaultOnly(t *testing.T) {
	// Only the default key exists, the product is not in the products map
	// and nothing is selected; the cascade must still land somewhere
	e := NewEngine()
	in := getSampleInputs()
	in.Products = map[string]*products.Product{}
	in.Texts["PRODUCT_default_suffix"] = &Item{Value: "A"}

	res := e.Resolve(ProductID{ProductID: "p1", GroupID: "main", Suffix: "suffix"}, in)
	if res.Kind != ResultSingle || res.Value != "A" {
		t.Errorf("cascade should land on PRODUCT_default_suffix, got %+v", res)
	}
}

func TestResolve_ProductNotSelected(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.Texts["PRODUCT_not_selected_title"] = &Item{Value: "Pick a plan"}

	// No explicit product id and no group selection in state
	res := e.Resolve(ProductID{GroupID: "main", Suffix: "title"}, in)
	if res.Value != "Pick a plan" {
		t.Errorf("unselected group should use not_selected key, got %+v", res)
	}
}

func TestResolve_ProductFromGroupSelection(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.State.SelectProduct("main", "p1")
	in.Texts["PRODUCT_default"] = &Item{
		Rich: []RichPart{{Kind: RichTag, Value: "PRICE"}},
	}

	res := e.Resolve(ProductID{GroupID: "main"}, in)
	if res.Kind != ResultSingle || res.Value != "$9.99" {
		t.Errorf("group-selected product should drive tag resolution, got %+v", res)
	}
}

func TestResolve_ProductTags(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		tag  string
		want string
	}{
		{"TITLE", "Premium"},
		{"PRICE", "$9.99"},
		{"PRICE_PER_MONTH", "$9.99"}, // identity case, verbatim
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			in := getSampleInputs()
			in.Texts["PRODUCT_default"] = &Item{
				Rich: []RichPart{{Kind: RichTag, Value: tt.tag}},
			}
			res := e.Resolve(ProductID{ProductID: "p1", GroupID: "main"}, in)
			if res.PlainString() != tt.want {
				t.Errorf("tag %s = %q, want %q", tt.tag, res.PlainString(), tt.want)
			}
		})
	}
}

func TestResolve_OfferTags(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.Products["p1"].Offers = []products.Offer{{
		ID:              "intro",
		Mode:            products.ModePayAsYouGo,
		Price:           products.Price{Amount: 4.99, Localized: "$4.99"},
		Period:          products.Period{Unit: products.PeriodMonth, NumberOfUnits: 3},
		NumberOfPeriods: 2,
	}}
	in.Texts["PRODUCT_p1_pay_as_you_go"] = &Item{
		Rich: []RichPart{
			{Kind: RichTag, Value: "OFFER_PRICE"},
			{Kind: RichLiteral, Value: " for "},
			{Kind: RichTag, Value: "OFFER_NUMBER_OF_PERIOD"},
			{Kind: RichLiteral, Value: " x "},
			{Kind: RichTag, Value: "OFFER_PERIOD"},
		},
	}

	res := e.Resolve(ProductID{ProductID: "p1", GroupID: "main"}, in)
	want := "$4.99 for 2 x 3 months"
	if res.PlainString() != want {
		t.Errorf("offer tags = %q, want %q", res.PlainString(), want)
	}
}

func TestResolve_ProductTag_MissingProduct(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.Products = map[string]*products.Product{}
	in.Texts["PRODUCT_default"] = &Item{
		Rich: []RichPart{
			{Kind: RichLiteral, Value: "Only "},
			{Kind: RichTag, Value: "PRICE"},
		},
	}

	res := e.Resolve(ProductID{ProductID: "ghost", GroupID: "main"}, in)
	if res.Kind != ResultProductMissing {
		t.Errorf("missing product must abort the whole rich text, got %v", res.Kind)
	}
	if res.PlainString() != "" {
		t.Error("a product-missing result must flatten to empty, not partial text")
	}
}

func TestResolve_CustomTag(t *testing.T) {
	e := NewEngine(WithCustomTags(func(tag string) (string, bool) {
		if tag == "USERNAME" {
			return "Ada", true
		}
		return "", false
	}))
	in := getSampleInputs()
	in.Texts["greeting"] = &Item{
		Rich: []RichPart{
			{Kind: RichLiteral, Value: "Hi "},
			{Kind: RichTag, Value: "USERNAME"},
		},
	}

	res := e.Resolve(StrID{Key: "greeting"}, in)
	if res.PlainString() != "Hi Ada" {
		t.Errorf("custom tag result = %q, want %q", res.PlainString(), "Hi Ada")
	}
}

func TestResolve_CustomTagMissing_ShortCircuits(t *testing.T) {
	e := NewEngine() // no resolver, ignoreMissing off
	in := getSampleInputs()
	in.Texts["greeting"] = &Item{
		Rich: []RichPart{
			{Kind: RichLiteral, Value: "Hi "},
			{Kind: RichTag, Value: "USERNAME"},
		},
	}

	res := e.Resolve(StrID{Key: "greeting"}, in)
	if res.Kind != ResultCustomTagMissing {
		t.Errorf("missing custom tag must short-circuit, got %v", res.Kind)
	}
	if res.PlainString() != "" {
		t.Error("short-circuited template must not leak partial text")
	}
}

func TestResolve_CustomTagMissing_FallbackRetry(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.Texts["greeting"] = &Item{
		Rich: []RichPart{
			{Kind: RichLiteral, Value: "Hi "},
			{Kind: RichTag, Value: "USERNAME"},
		},
		Fallback: &Item{Value: "Hi there"},
	}

	res := e.Resolve(StrID{Key: "greeting"}, in)
	if res.Kind != ResultSingle || res.Value != "Hi there" {
		t.Errorf("fallback template should be retried, got %+v", res)
	}
}

func TestResolve_CustomTagMissing_Ignored(t *testing.T) {
	e := NewEngine(WithIgnoreMissingCustomTags(true))
	in := getSampleInputs()
	in.Texts["greeting"] = &Item{
		Rich: []RichPart{
			{Kind: RichLiteral, Value: "Hi "},
			{Kind: RichTag, Value: "USERNAME"},
		},
	}

	res := e.Resolve(StrID{Key: "greeting"}, in)
	if res.PlainString() != "Hi USERNAME" {
		t.Errorf("ignore-missing should keep the literal tag name, got %q", res.PlainString())
	}
}

func TestResolve_TimerSegmentTemplate(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.Texts["countdown"] = &Item{
		Rich: []RichPart{
			{Kind: RichTag, Value: "TIMER_mm"},
			{Kind: RichLiteral, Value: ":"},
			{Kind: RichTag, Value: "TIMER_ss"},
		},
	}

	res := e.Resolve(StrID{Key: "countdown"}, in)
	if res.Kind != ResultComplex || len(res.Parts) != 3 {
		t.Fatalf("timer template should stay complex, got %+v", res)
	}
	if res.Parts[0].Kind != PartTimerSegment || res.Parts[0].Segment.Unit != UnitMinutes {
		t.Error("first part should be a minutes segment")
	}
	if res.Parts[2].Segment.Format != "%02d" {
		t.Errorf("ss segment format = %q, want %%02d", res.Parts[2].Segment.Format)
	}
}

func TestResolve_InlineImage(t *testing.T) {
	e := NewEngine()
	in := getSampleInputs()
	in.Texts["banner"] = &Item{
		Rich: []RichPart{
			{Kind: RichImage, Value: "star"},
			{Kind: RichLiteral, Value: " 4.8"},
		},
	}

	res := e.Resolve(StrID{Key: "banner"}, in)
	if res.Kind != ResultComplex || res.Parts[0].Kind != PartImage || res.Parts[0].ImageID != "star" {
		t.Errorf("inline image should survive assembly, got %+v", res)
	}
}

func TestDecodeStringID(t *testing.T) {
	id, err := DecodeStringID("plain_key")
	if err != nil {
		t.Fatalf("bare string should decode: %v", err)
	}
	if s, ok := id.(StrID); !ok || s.Key != "plain_key" {
		t.Errorf("DecodeStringID(plain_key) = %+v", id)
	}

	id, err = DecodeStringID(map[string]any{
		"type": "product", "id": "p1", "group_id": "main", "suffix": "title",
	})
	if err != nil {
		t.Fatalf("product map should decode: %v", err)
	}
	p, ok := id.(ProductID)
	if !ok || p.ProductID != "p1" || p.GroupID != "main" || p.Suffix != "title" {
		t.Errorf("DecodeStringID(product) = %+v", id)
	}
}

func TestDecodeStringID_BadType(t *testing.T) {
	_, err := DecodeStringID(map[string]any{"type": "mystery"})
	if err == nil {
		t.Fatal("unknown type discriminator must be a decode error")
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("decode errors must wrap ErrDecode, got %v", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Type != "mystery" {
		t.Errorf("decode error should carry the offending type, got %v", err)
	}
}
