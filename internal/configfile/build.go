package configfile

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/animation"
	"github.com/skylineapps/paywallkit/internal/assets"
	"github.com/skylineapps/paywallkit/internal/elements"
	"github.com/skylineapps/paywallkit/internal/templates"
	"github.com/skylineapps/paywallkit/internal/texts"
	"github.com/skylineapps/paywallkit/internal/viewmodel"
)

// Build turns a validated document into the runtime configuration the view
// model mounts. Unknown element types become skipped elements with a warning
// so an old renderer can show a newer fixture.
func Build(doc *Document, logger *zap.Logger) (*viewmodel.Configuration, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &builder{logger: logger}

	cfg := &viewmodel.Configuration{
		PlacementID:  doc.PlacementID,
		Texts:        make(map[string]*texts.Item, len(doc.Texts)),
		Assets:       make(map[string]assets.Asset, len(doc.Assets)),
		Elements:     make(map[string]elements.Element, len(doc.Elements)),
		Screens:      make(map[string]*templates.Screen, len(doc.Screens)),
		InitialState: doc.State,
	}

	for key, node := range doc.Texts {
		cfg.Texts[key] = buildText(node)
	}
	for id, node := range doc.Assets {
		asset, err := buildAsset(id, node)
		if err != nil {
			return nil, err
		}
		cfg.Assets[id] = asset
	}
	b.assets = cfg.Assets
	for _, p := range doc.Products {
		cfg.Products = append(cfg.Products, viewmodel.ExpectedProduct{
			ID:         p.ID,
			VendorID:   p.VendorID,
			BasePlanID: p.BasePlanID,
			GroupID:    p.Group,
		})
	}
	for id, node := range doc.Elements {
		el, err := b.element(node, "elements."+id)
		if err != nil {
			return nil, err
		}
		cfg.Elements[id] = el
	}

	screen, err := b.screen(doc.Screen, "screen")
	if err != nil {
		return nil, err
	}
	cfg.Screen = screen
	for id, node := range doc.Screens {
		s, err := b.screen(node, "screens."+id)
		if err != nil {
			return nil, err
		}
		cfg.Screens[id] = s
	}
	return cfg, nil
}

type builder struct {
	logger *zap.Logger
	assets map[string]assets.Asset
}

func (b *builder) screen(node *ScreenNode, path string) (*templates.Screen, error) {
	screen := &templates.Screen{
		BackgroundAssetID: node.Background,
		CoverHeight:       node.CoverHeight,
	}
	switch node.Template {
	case "flat":
		screen.Kind = templates.Flat
	case "transparent":
		screen.Kind = templates.Transparent
	default:
		screen.Kind = templates.Basic
	}

	var err error
	if node.Cover != nil {
		if screen.Cover, err = b.element(node.Cover, path+".cover"); err != nil {
			return nil, err
		}
	}
	if screen.Content, err = b.element(node.Content, path+".content"); err != nil {
		return nil, err
	}
	if node.Footer != nil {
		if screen.Footer, err = b.element(node.Footer, path+".footer"); err != nil {
			return nil, err
		}
	}
	if node.Overlay != nil {
		if screen.Overlay, err = b.element(node.Overlay, path+".overlay"); err != nil {
			return nil, err
		}
	}
	return screen, nil
}

func (b *builder) element(node *Node, path string) (elements.Element, error) {
	if node == nil {
		return nil, validationError("%s is empty", path)
	}
	props, err := b.buildProps(node)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch node.Type {
	case "hstack":
		children, err := b.children(node.Children, path)
		if err != nil {
			return nil, err
		}
		return &elements.HStack{Props: props, Spacing: node.Spacing, Alignment: alignment(node.Align), Children: children}, nil
	case "vstack":
		children, err := b.children(node.Children, path)
		if err != nil {
			return nil, err
		}
		return &elements.VStack{Props: props, Spacing: node.Spacing, Alignment: alignment(node.Align), Children: children}, nil
	case "zstack":
		children, err := b.children(node.Children, path)
		if err != nil {
			return nil, err
		}
		return &elements.ZStack{Props: props, Alignment: alignment(node.Align), Children: children}, nil
	case "row":
		children, err := b.children(node.Children, path)
		if err != nil {
			return nil, err
		}
		return &elements.Row{Props: props, Spacing: node.Spacing, Children: children}, nil
	case "column":
		children, err := b.children(node.Children, path)
		if err != nil {
			return nil, err
		}
		return &elements.Column{Props: props, Spacing: node.Spacing, Children: children}, nil
	case "grid_item":
		child, err := b.optionalChild(node.Child, path)
		if err != nil {
			return nil, err
		}
		return &elements.GridItem{Props: props, Span: node.Span, HAlign: alignment(node.Align), Child: child}, nil
	case "box":
		child, err := b.optionalChild(node.Child, path)
		if err != nil {
			return nil, err
		}
		return &elements.Box{Props: props, HAlign: alignment(node.Align), VAlign: alignment(node.Align), Child: child}, nil
	case "empty_box":
		return &elements.BoxWithoutContent{Props: props}, nil
	case "space":
		return &elements.Space{Props: props}, nil
	case "text":
		id, err := stringID(node.Text, path)
		if err != nil {
			return nil, err
		}
		return &elements.Text{
			Props: props, StringID: id, FontAssetID: node.Font,
			HAlign: alignment(node.Align), MaxLines: node.MaxLines, AutoShrink: node.AutoShrink,
		}, nil
	case "image":
		return &elements.Image{Props: props, AssetID: node.Asset, TintAssetID: node.Tint}, nil
	case "button":
		return b.button(node, props, path)
	case "toggle":
		cond, err := condition(node.Condition, path)
		if err != nil {
			return nil, err
		}
		return &elements.Toggle{
			Props: props, ID: node.ID, Condition: cond,
			OnActions:         buildActions(node.On),
			OffActions:        buildActions(node.Off),
			ThumbColorAssetID: node.Tint,
		}, nil
	case "section":
		children, err := b.children(node.Children, path)
		if err != nil {
			return nil, err
		}
		return &elements.Section{Props: props, ID: node.ID, DefaultIndex: node.DefaultIndex, Children: children}, nil
	case "reference":
		return &elements.Reference{Props: props, To: node.Ref}, nil
	case "pager":
		return b.pager(node, props, path)
	case "timer":
		return b.timer(node, props, path)
	default:
		b.logger.Warn("Unknown element type skipped",
			zap.String("type", node.Type),
			zap.String("path", path),
		)
		return &elements.Unknown{Props: props}, nil
	}
}

func (b *builder) children(nodes []*Node, path string) ([]elements.Element, error) {
	out := make([]elements.Element, 0, len(nodes))
	for i, n := range nodes {
		el, err := b.element(n, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func (b *builder) optionalChild(node *Node, path string) (elements.Element, error) {
	if node == nil {
		return nil, nil
	}
	return b.element(node, path+".child")
}

func (b *builder) button(node *Node, props elements.BaseProps, path string) (elements.Element, error) {
	button := &elements.Button{Props: props, ID: node.ID, Actions: buildActions(node.Actions)}
	var err error
	if node.Normal != nil {
		if button.Normal, err = b.element(node.Normal, path+".normal"); err != nil {
			return nil, err
		}
	}
	if node.Selected != nil {
		if button.Selected, err = b.element(node.Selected, path+".selected"); err != nil {
			return nil, err
		}
	}
	if node.Condition != nil {
		cond, err := condition(node.Condition, path)
		if err != nil {
			return nil, err
		}
		button.SelectedCondition = &cond
	}
	return button, nil
}

func (b *builder) pager(node *Node, props elements.BaseProps, path string) (elements.Element, error) {
	pages, err := b.children(node.Pages, path)
	if err != nil {
		return nil, err
	}
	pager := &elements.Pager{Props: props, ID: node.ID, Pages: pages}

	if a := node.PagerAnim; a != nil {
		anim := &elements.PagerAnimation{
			StartDelay:       time.Duration(a.StartDelay) * time.Millisecond,
			PageTransition:   time.Duration(a.Transition) * time.Millisecond,
			Easing:           easing(a.Easing),
			RepeatTransition: time.Duration(a.RepeatMs) * time.Millisecond,
		}
		if a.Interruption == "pause" {
			anim.Interruption = elements.InterruptionPause
		}
		pager.Animation = anim
	}
	if ind := node.Indicator; ind != nil {
		indicator := &elements.PagerIndicator{
			VAlign:               alignment(ind.VAlign),
			ColorAssetID:         ind.Color,
			SelectedColorAssetID: ind.Selected,
		}
		if ind.Layout == "overlay" {
			indicator.Layout = elements.IndicatorOverlay
		}
		pager.Indicator = indicator
	}
	return pager, nil
}

func (b *builder) timer(node *Node, props elements.BaseProps, path string) (elements.Element, error) {
	if node.Launch == nil {
		return nil, validationError("%s: timer needs a launch", path)
	}
	launch := elements.TimerLaunch{}
	switch node.Launch.Kind {
	case "end_at":
		launch.Kind = elements.LaunchEndAtTime
		endAt, err := time.Parse(time.RFC3339, node.Launch.EndAt)
		if err != nil {
			return nil, validationError("%s: bad end_at: %v", path, err)
		}
		launch.EndAt = endAt
	case "duration":
		launch.Kind = elements.LaunchDuration
		if node.Launch.Seconds <= 0 {
			return nil, validationError("%s: duration timer needs positive seconds", path)
		}
		launch.Duration = time.Duration(node.Launch.Seconds) * time.Second
		switch node.Launch.Start {
		case "", "every_appearance":
			launch.Start = elements.StartEveryAppearance
		case "once":
			launch.Start = elements.StartOnceVolatile
		case "once_persisted":
			launch.Start = elements.StartOncePersisted
		default:
			return nil, validationError("%s: unknown start behavior %q", path, node.Launch.Start)
		}
	case "custom":
		launch.Kind = elements.LaunchCustom
	default:
		return nil, validationError("%s: unknown launch kind %q", path, node.Launch.Kind)
	}

	if len(node.Formats) == 0 {
		return nil, validationError("%s: timer needs at least one format", path)
	}
	formats := make([]elements.TimerFormat, 0, len(node.Formats))
	for i, f := range node.Formats {
		id, err := stringID(f.Text, fmt.Sprintf("%s.formats[%d]", path, i))
		if err != nil {
			return nil, err
		}
		formats = append(formats, elements.TimerFormat{FromSeconds: f.FromSeconds, StringID: id})
	}

	return &elements.Timer{
		Props:       props,
		ID:          node.ID,
		Launch:      launch,
		Formats:     formats,
		Actions:     buildActions(node.Actions),
		FontAssetID: node.Font,
		HAlign:      alignment(node.Align),
		Jitter:      true,
	}, nil
}

func (b *builder) buildProps(node *Node) (elements.BaseProps, error) {
	props := elements.NewBaseProps()
	props.Width = sizeSpec(node.Width)
	props.Height = sizeSpec(node.Height)
	props.Weight = node.Weight
	if node.Padding != nil {
		props.Padding = elements.EdgeInsets{
			Top: node.Padding.Top, Bottom: node.Padding.Bottom,
			Left: node.Padding.Left, Right: node.Padding.Right,
		}
	}
	if node.Opacity != nil {
		props.Opacity = *node.Opacity
	}
	if node.Fill != nil {
		props.Shape.Fill = elements.Fill{ColorAssetID: node.Fill.Color, GradientAssetID: node.Fill.Gradient}
	}
	if node.Border != nil {
		props.Shape.BorderAssetID = node.Border.Color
		props.Shape.BorderThickness = node.Border.Thickness
	}
	if node.Anim != nil {
		set, err := b.buildAnimations(node.Anim)
		if err != nil {
			return props, err
		}
		props.Animations = set
	}
	return props, nil
}

func (b *builder) buildAnimations(node *AnimationNode) (*elements.AnimationSet, error) {
	set := &elements.AnimationSet{}
	for i, a := range node.Opacity {
		anim, err := scalarAnim(a, animation.RoleOpacity)
		if err != nil {
			return nil, fmt.Errorf("opacity[%d]: %w", i, err)
		}
		set.Opacity = append(set.Opacity, anim)
	}
	for i, a := range node.Scale {
		anim, err := scalarAnim(a, animation.RoleScale)
		if err != nil {
			return nil, fmt.Errorf("scale[%d]: %w", i, err)
		}
		set.Scale = append(set.Scale, anim)
	}
	for i, a := range node.Rotation {
		anim, err := scalarAnim(a, animation.RoleRotation)
		if err != nil {
			return nil, fmt.Errorf("rotation[%d]: %w", i, err)
		}
		set.Rotation = append(set.Rotation, anim)
	}
	for i, a := range node.Offset {
		from, to, err := pairAnim(a)
		if err != nil {
			return nil, fmt.Errorf("offset[%d]: %w", i, err)
		}
		anim := animation.Animation[animation.Offset]{
			Start: animation.Offset{X: from[0], Y: from[1]},
			End:   animation.Offset{X: to[0], Y: to[1]},
			Role:  animation.RoleOffset,
		}
		applyTiming(&anim.Duration, &anim.StartDelay, &anim.Easing, &anim.Repeat, &anim.RepeatMaxCount, a.TimingNode)
		set.Offset = append(set.Offset, anim)
	}
	for i, a := range node.BoxSize {
		from, to, err := pairAnim(a)
		if err != nil {
			return nil, fmt.Errorf("box_size[%d]: %w", i, err)
		}
		anim := animation.Animation[animation.Dims]{
			Start: animation.Dims{Width: from[0], Height: from[1]},
			End:   animation.Dims{Width: to[0], Height: to[1]},
			Role:  animation.RoleBoxSize,
		}
		applyTiming(&anim.Duration, &anim.StartDelay, &anim.Easing, &anim.Repeat, &anim.RepeatMaxCount, a.TimingNode)
		set.BoxSize = append(set.BoxSize, anim)
	}
	for i, a := range node.Background {
		if a.From == "" || a.To == "" {
			return nil, fmt.Errorf("background[%d]: from and to need a color reference", i)
		}
		anim := animation.Animation[string]{Start: a.From, End: a.To, Role: animation.RoleBackground}
		applyTiming(&anim.Duration, &anim.StartDelay, &anim.Easing, &anim.Repeat, &anim.RepeatMaxCount, a.TimingNode)
		set.BackgroundColor = append(set.BackgroundColor, anim)
	}
	for i, a := range node.Gradient {
		from, err := b.gradientAsset(a.From)
		if err != nil {
			return nil, fmt.Errorf("gradient[%d].from: %w", i, err)
		}
		to, err := b.gradientAsset(a.To)
		if err != nil {
			return nil, fmt.Errorf("gradient[%d].to: %w", i, err)
		}
		anim := animation.Animation[assets.Gradient]{Start: from, End: to, Role: animation.RoleBackground}
		applyTiming(&anim.Duration, &anim.StartDelay, &anim.Easing, &anim.Repeat, &anim.RepeatMaxCount, a.TimingNode)
		set.BackgroundGradient = append(set.BackgroundGradient, anim)
	}
	for i, a := range node.Border {
		if a.FromColor == "" || a.ToColor == "" {
			return nil, fmt.Errorf("border[%d]: from_color and to_color are required", i)
		}
		anim := animation.Animation[animation.Border]{
			Start: animation.Border{Color: a.FromColor, Thickness: a.FromThickness},
			End:   animation.Border{Color: a.ToColor, Thickness: a.ToThickness},
			Role:  animation.RoleBorder,
		}
		applyTiming(&anim.Duration, &anim.StartDelay, &anim.Easing, &anim.Repeat, &anim.RepeatMaxCount, a.TimingNode)
		set.Border = append(set.Border, anim)
	}
	for i, a := range node.Shadow {
		from, err := shadowValue(a.From)
		if err != nil {
			return nil, fmt.Errorf("shadow[%d].from: %w", i, err)
		}
		to, err := shadowValue(a.To)
		if err != nil {
			return nil, fmt.Errorf("shadow[%d].to: %w", i, err)
		}
		anim := animation.Animation[animation.Shadow]{Start: from, End: to, Role: animation.RoleShadow}
		applyTiming(&anim.Duration, &anim.StartDelay, &anim.Easing, &anim.Repeat, &anim.RepeatMaxCount, a.TimingNode)
		set.Shadow = append(set.Shadow, anim)
	}
	return set, nil
}

// gradientAsset resolves a gradient animation endpoint against the built
// asset map; gradient morphs need concrete stops, not an id.
func (b *builder) gradientAsset(id string) (assets.Gradient, error) {
	asset, ok := b.assets[id]
	if !ok {
		return assets.Gradient{}, fmt.Errorf("gradient asset %q not found", id)
	}
	grad, ok := asset.(assets.Gradient)
	if !ok {
		return assets.Gradient{}, fmt.Errorf("asset %q is not a gradient", id)
	}
	return grad, nil
}

func shadowValue(n ShadowNode) (animation.Shadow, error) {
	if n.Color == "" {
		return animation.Shadow{}, fmt.Errorf("color is required")
	}
	s := animation.Shadow{Color: n.Color, Blur: n.Blur}
	switch len(n.Offset) {
	case 0:
	case 2:
		s.Offset = animation.Offset{X: n.Offset[0], Y: n.Offset[1]}
	default:
		return animation.Shadow{}, fmt.Errorf("offset needs [x y]")
	}
	return s, nil
}

func scalarAnim(a AnimNode, role animation.Role) (animation.Animation[float64], error) {
	if len(a.From) != 1 || len(a.To) != 1 {
		return animation.Animation[float64]{}, fmt.Errorf("from and to need a single value")
	}
	anim := animation.Animation[float64]{Start: a.From[0], End: a.To[0], Role: role}
	applyTiming(&anim.Duration, &anim.StartDelay, &anim.Easing, &anim.Repeat, &anim.RepeatMaxCount, a.TimingNode)
	return anim, nil
}

func pairAnim(a AnimNode) ([]float64, []float64, error) {
	if len(a.From) != 2 || len(a.To) != 2 {
		return nil, nil, fmt.Errorf("from and to need a pair of values")
	}
	return a.From, a.To, nil
}

func applyTiming(duration, delay *time.Duration, ease *animation.Easing, repeat *animation.RepeatMode, maxCount *int, t TimingNode) {
	*duration = time.Duration(t.DurationMs) * time.Millisecond
	*delay = time.Duration(t.StartDelayMs) * time.Millisecond
	*ease = easing(t.Easing)
	switch t.Repeat {
	case "normal":
		*repeat = animation.RepeatNormal
	case "ping_pong":
		*repeat = animation.RepeatPingPong
	}
	if *repeat != animation.RepeatNone {
		if t.Count > 0 {
			*maxCount = t.Count
		} else {
			*maxCount = animation.Unlimited
		}
	}
}

func sizeSpec(node *SizeNode) elements.SizeSpec {
	if node == nil {
		return elements.SizeSpec{}
	}
	switch {
	case node.Rule == "fill":
		return elements.SizeSpec{Rule: elements.SizeFill}
	case node.Min > 0:
		return elements.SizeSpec{Rule: elements.SizeMin, Value: node.Min}
	case node.Cells > 0:
		return elements.SizeSpec{Rule: elements.SizeSpecified, Value: node.Cells}
	default:
		return elements.SizeSpec{Rule: elements.SizeShrink}
	}
}

func alignment(s string) elements.Alignment {
	switch s {
	case "center":
		return elements.AlignCenter
	case "end":
		return elements.AlignEnd
	default:
		return elements.AlignStart
	}
}

func easing(s string) animation.Easing {
	switch s {
	case "ease_in":
		return animation.EaseIn
	case "ease_out":
		return animation.EaseOut
	case "ease_in_out":
		return animation.EaseInOut
	default:
		return animation.EaseLinear
	}
}

func condition(node *ConditionNode, path string) (elements.Condition, error) {
	if node == nil {
		return elements.Condition{}, validationError("%s: condition is required", path)
	}
	if node.Product != "" || node.Group != "" {
		return elements.Condition{
			Kind:      elements.CondSelectedProduct,
			ProductID: node.Product,
			GroupID:   node.Group,
		}, nil
	}
	if node.Section != "" {
		return elements.Condition{
			Kind:      elements.CondSelectedSection,
			SectionID: node.Section,
			Index:     node.Index,
		}, nil
	}
	return elements.Condition{}, validationError("%s: condition needs product/group or section", path)
}

func stringID(v any, path string) (texts.StringID, error) {
	id, err := texts.DecodeStringID(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return id, nil
}

func buildActions(nodes []ActionNode) []elements.Action {
	out := make([]elements.Action, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, elements.Action{
			Type:         actionType(n.Type),
			URL:          n.URL,
			CustomID:     n.CustomID,
			ProductID:    n.Product,
			GroupID:      n.Group,
			ScreenID:     n.Screen,
			SectionID:    n.Section,
			SectionIndex: n.Index,
		})
	}
	return out
}

func actionType(s string) elements.ActionType {
	switch s {
	case "open_url":
		return elements.ActionOpenURL
	case "select_product":
		return elements.ActionSelectProduct
	case "unselect_product":
		return elements.ActionUnselectProduct
	case "purchase_product":
		return elements.ActionPurchaseProduct
	case "purchase_selected":
		return elements.ActionPurchaseSelected
	case "restore":
		return elements.ActionRestore
	case "open_screen":
		return elements.ActionOpenScreen
	case "close_screen":
		return elements.ActionCloseScreen
	case "switch_section":
		return elements.ActionSwitchSection
	case "close":
		return elements.ActionClose
	default:
		return elements.ActionCustom
	}
}

func buildText(node *TextNode) *texts.Item {
	item := &texts.Item{Value: node.Value, Attrs: buildAttrs(node.Attrs)}
	for _, part := range node.Rich {
		rp := texts.RichPart{Attrs: buildAttrs(part.Attrs)}
		switch {
		case part.Tag != "":
			rp.Kind = texts.RichTag
			rp.Value = part.Tag
		case part.Image != "":
			rp.Kind = texts.RichImage
			rp.Value = part.Image
		default:
			rp.Kind = texts.RichLiteral
			rp.Value = part.Text
		}
		item.Rich = append(item.Rich, rp)
	}
	if node.Fallback != nil {
		item.Fallback = buildText(node.Fallback)
	}
	return item
}

func buildAttrs(node *AttrsNode) *texts.Attributes {
	if node == nil {
		return nil
	}
	return &texts.Attributes{
		FontAssetID:       node.Font,
		ColorAssetID:      node.Color,
		BackgroundAssetID: node.Background,
		TintAssetID:       node.Tint,
		Strikethrough:     node.Strikethrough,
		Underline:         node.Underline,
	}
}

func buildAsset(id string, node *AssetNode) (assets.Asset, error) {
	switch node.Type {
	case "color":
		return assets.Color{ID: id, Value: node.Value}, nil
	case "gradient":
		stops := make([]assets.GradientStop, 0, len(node.Stops))
		for _, s := range node.Stops {
			stops = append(stops, assets.GradientStop{Color: s.Color, Position: s.Position})
		}
		return assets.Gradient{ID: id, Geometry: gradientGeometry(node.Geometry), Stops: stops}, nil
	case "image":
		return assets.Image{ID: id, Path: node.Source}, nil
	case "remote_image":
		return assets.RemoteImage{ID: id, URL: node.URL, Preview: previewImage(id, node.Preview)}, nil
	case "video":
		return assets.Video{ID: id, URL: node.URL, Preview: previewImage(id, node.Preview)}, nil
	case "font":
		return assets.Font{ID: id, Color: node.ColorRef, Weight: node.Weight, Italic: node.Italic, Size: node.Size}, nil
	default:
		return nil, validationError("assets.%s: unknown type %q", id, node.Type)
	}
}

func previewImage(id, source string) *assets.Image {
	if source == "" {
		return nil
	}
	return &assets.Image{ID: id + "_preview", Path: source}
}

func gradientGeometry(s string) assets.GradientGeometry {
	switch s {
	case "radial":
		return assets.GradientRadial
	case "conic":
		return assets.GradientConic
	default:
		return assets.GradientLinear
	}
}
