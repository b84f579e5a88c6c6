package configfile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skylineapps/paywallkit/internal/animation"
	"github.com/skylineapps/paywallkit/internal/assets"
	"github.com/skylineapps/paywallkit/internal/elements"
	"github.com/skylineapps/paywallkit/internal/templates"
)

const fixture = `
version: 1
placement_id: onboarding
screen:
  template: basic
  background: bg
  cover_height: 4
  cover:
    type: image
    asset: hero
  content:
    type: vstack
    spacing: 1
    children:
      - type: text
        text: title
        align: center
        max_lines: 2
        auto_shrink: true
      - type: button
        id: buy_month
        normal:
          type: text
          text: { type: product, id: prod_month, suffix: title }
        condition: { group: group1, product: prod_month }
        actions:
          - { type: purchase_product, product: prod_month }
      - type: timer
        id: promo
        launch: { kind: duration, seconds: 3600, start: once_persisted }
        formats:
          - { from_seconds: 60, text: fmt_m }
          - { from_seconds: 0, text: fmt_s }
        actions:
          - { type: close_screen }
      - type: hologram
  footer:
    type: text
    text: terms
screens:
  offer_sheet:
    template: transparent
    content:
      type: text
      text: offer
elements:
  shared_badge:
    type: text
    text: badge
texts:
  title: "Go Premium"
  terms: "Terms apply"
  offer: "One time offer"
  badge: "POPULAR"
  fmt_m: "minutes remain"
  fmt_s: "seconds remain"
assets:
  bg: { type: color, value: "#101010" }
  hero: { type: image, source: hero.png }
  accent:
    type: gradient
    geometry: linear
    stops:
      - { color: "#ff0000", position: 0 }
      - { color: "#0000ff", position: 1 }
products:
  - { id: prod_month, vendor_id: com.app.sub, base_plan_id: monthly, group: group1 }
initial_state:
  section_plans: 0
`

func TestParse_FullFixture(t *testing.T) {
	doc, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.PlacementID != "onboarding" {
		t.Errorf("placement = %q", doc.PlacementID)
	}
	if doc.Texts["title"].Value != "Go Premium" {
		t.Errorf("shorthand text = %+v", doc.Texts["title"])
	}
	if len(doc.Products) != 1 || doc.Products[0].BasePlanID != "monthly" {
		t.Errorf("products = %+v", doc.Products)
	}
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"missing placement",
			"screen: {template: basic, content: {type: text, text: a}}",
			"placement_id",
		},
		{
			"missing template",
			"placement_id: p\nscreen: {content: {type: text, text: a}}",
			"template",
		},
		{
			"unknown template",
			"placement_id: p\nscreen: {template: fancy, content: {type: text, text: a}}",
			"fancy",
		},
		{
			"product without vendor",
			"placement_id: p\nscreen: {template: basic, content: {type: text, text: a}}\nproducts: [{id: x}]",
			"vendor_id",
		},
		{
			"gradient with one stop",
			"placement_id: p\nscreen: {template: basic, content: {type: text, text: a}}\nassets: {g: {type: gradient, stops: [{color: \"#fff\", position: 0}]}}",
			"two stops",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %q, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestBuild_FullFixture(t *testing.T) {
	doc, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg, err := Build(doc, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if cfg.Screen == nil || cfg.Screen.Kind != templates.Basic {
		t.Fatalf("screen = %+v", cfg.Screen)
	}
	if cfg.Screen.CoverHeight != 4 || cfg.Screen.Cover == nil {
		t.Errorf("cover not built: %+v", cfg.Screen)
	}
	if cfg.Screens["offer_sheet"] == nil || cfg.Screens["offer_sheet"].Kind != templates.Transparent {
		t.Errorf("additional screen not built")
	}
	if _, ok := cfg.Elements["shared_badge"]; !ok {
		t.Error("shared element definitions not built")
	}

	stack, ok := cfg.Screen.Content.(*elements.VStack)
	if !ok {
		t.Fatalf("content = %T, want *VStack", cfg.Screen.Content)
	}
	if len(stack.Children) != 4 {
		t.Fatalf("children = %d, want 4", len(stack.Children))
	}

	button, ok := stack.Children[1].(*elements.Button)
	if !ok {
		t.Fatalf("child[1] = %T, want *Button", stack.Children[1])
	}
	if button.SelectedCondition == nil || button.SelectedCondition.Kind != elements.CondSelectedProduct {
		t.Errorf("button condition = %+v", button.SelectedCondition)
	}
	if len(button.Actions) != 1 || button.Actions[0].Type != elements.ActionPurchaseProduct {
		t.Errorf("button actions = %+v", button.Actions)
	}

	timer, ok := stack.Children[2].(*elements.Timer)
	if !ok {
		t.Fatalf("child[2] = %T, want *Timer", stack.Children[2])
	}
	if timer.Launch.Kind != elements.LaunchDuration || timer.Launch.Start != elements.StartOncePersisted {
		t.Errorf("timer launch = %+v", timer.Launch)
	}
	if len(timer.Formats) != 2 || timer.Formats[0].FromSeconds != 60 {
		t.Errorf("timer formats = %+v", timer.Formats)
	}

	// Unknown element types degrade to skipped elements, not errors
	if _, ok := stack.Children[3].(*elements.Unknown); !ok {
		t.Errorf("child[3] = %T, want *Unknown", stack.Children[3])
	}

	if _, ok := cfg.Assets["accent"].(assets.Gradient); !ok {
		t.Errorf("gradient asset = %T", cfg.Assets["accent"])
	}
	if cfg.PlacementID != "onboarding" {
		t.Errorf("placement = %q", cfg.PlacementID)
	}
}

const animatedFixture = `
version: 1
placement_id: motion
screen:
  template: basic
  content:
    type: vstack
    children:
      - type: text
        text: title
        animation:
          opacity:
            - { from: [0], to: [1], duration_ms: 500, easing: ease_out }
          rotation:
            - { from: [0], to: [360], duration_ms: 2000, repeat: normal }
      - type: image
        asset: hero
        animation:
          box_size:
            - { from: [10, 4], to: [20, 8], duration_ms: 800, repeat: ping_pong, count: 3 }
          background:
            - { from: "#101010", to: accent_solid, duration_ms: 400 }
          gradient:
            - { from: glow_a, to: glow_b, duration_ms: 1200 }
          border:
            - { from_color: "#ffffff", to_color: "#ff00ff", from_thickness: 1, to_thickness: 2, duration_ms: 600 }
          shadow:
            - from: { color: "#000000", blur: 0 }
              to: { color: "#202020", blur: 2, offset: [1, 1] }
              duration_ms: 900
texts:
  title: "Animated"
assets:
  hero: { type: image, source: hero.png }
  accent_solid: { type: color, value: "#ff8800" }
  glow_a:
    type: gradient
    geometry: linear
    stops:
      - { color: "#ff0000", position: 0 }
      - { color: "#0000ff", position: 1 }
  glow_b:
    type: gradient
    geometry: linear
    stops:
      - { color: "#00ff00", position: 0 }
      - { color: "#ffff00", position: 1 }
`

func TestBuild_AnimationRoles(t *testing.T) {
	doc, err := Parse([]byte(animatedFixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg, err := Build(doc, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	stack := cfg.Screen.Content.(*elements.VStack)
	text := stack.Children[0].(*elements.Text)
	set := text.Props.Animations
	if set == nil || len(set.Opacity) != 1 || len(set.Rotation) != 1 {
		t.Fatalf("text animations = %+v", set)
	}
	if set.Opacity[0].Duration != 500*time.Millisecond || set.Opacity[0].Easing != animation.EaseOut {
		t.Errorf("opacity timing = %+v", set.Opacity[0])
	}
	rot := set.Rotation[0]
	if rot.Role != animation.RoleRotation || rot.End != 360 {
		t.Errorf("rotation = %+v", rot)
	}
	if rot.Repeat != animation.RepeatNormal || rot.RepeatMaxCount != animation.Unlimited {
		t.Errorf("rotation repeat = %+v", rot)
	}

	img := stack.Children[1].(*elements.Image)
	set = img.Props.Animations
	if set == nil {
		t.Fatal("image animations missing")
	}
	box := set.BoxSize[0]
	if box.Start != (animation.Dims{Width: 10, Height: 4}) || box.End != (animation.Dims{Width: 20, Height: 8}) {
		t.Errorf("box_size = %+v", box)
	}
	if box.Repeat != animation.RepeatPingPong || box.RepeatMaxCount != 3 {
		t.Errorf("box_size repeat = %+v", box)
	}
	bg := set.BackgroundColor[0]
	if bg.Start != "#101010" || bg.End != "accent_solid" {
		t.Errorf("background = %+v", bg)
	}
	grad := set.BackgroundGradient[0]
	if len(grad.Start.Stops) != 2 || len(grad.End.Stops) != 2 {
		t.Fatalf("gradient endpoints = %+v", grad)
	}
	if grad.Start.Stops[0].Color != "#ff0000" || grad.End.Stops[1].Color != "#ffff00" {
		t.Errorf("gradient stops = %+v / %+v", grad.Start.Stops, grad.End.Stops)
	}
	border := set.Border[0]
	if border.Start != (animation.Border{Color: "#ffffff", Thickness: 1}) ||
		border.End != (animation.Border{Color: "#ff00ff", Thickness: 2}) {
		t.Errorf("border = %+v", border)
	}
	shadow := set.Shadow[0]
	if shadow.Start.Color != "#000000" || shadow.End.Blur != 2 {
		t.Errorf("shadow = %+v", shadow)
	}
	if shadow.End.Offset != (animation.Offset{X: 1, Y: 1}) {
		t.Errorf("shadow offset = %+v", shadow.End.Offset)
	}
}

func TestBuild_GradientAnimationNeedsAsset(t *testing.T) {
	doc := &Document{
		PlacementID: "p",
		Screen: &ScreenNode{
			Template: "basic",
			Content: &Node{
				Type: "text", Text: "a",
				Anim: &AnimationNode{
					Gradient: []GradientAnimNode{{From: "missing", To: "also_missing", TimingNode: TimingNode{DurationMs: 100}}},
				},
			},
		},
		Texts: map[string]*TextNode{"a": {Value: "a"}},
	}
	_, err := Build(doc, nil)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("err = %v, want missing gradient asset", err)
	}
}

func TestBuild_TimerRequiresLaunchAndFormats(t *testing.T) {
	doc := &Document{
		PlacementID: "p",
		Screen: &ScreenNode{
			Template: "basic",
			Content:  &Node{Type: "timer", ID: "t"},
		},
	}
	if _, err := Build(doc, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}
