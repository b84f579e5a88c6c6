package configfile

// Document is the root of a paywall fixture file.
type Document struct {
	Version     int                    `yaml:"version"`
	PlacementID string                 `yaml:"placement_id"`
	Screen      *ScreenNode            `yaml:"screen"`
	Screens     map[string]*ScreenNode `yaml:"screens,omitempty"` // additional screens by id
	Elements    map[string]*Node       `yaml:"elements,omitempty"`
	Texts       map[string]*TextNode   `yaml:"texts,omitempty"`
	Assets      map[string]*AssetNode  `yaml:"assets,omitempty"`
	Products    []ProductNode          `yaml:"products,omitempty"`
	State       map[string]any         `yaml:"initial_state,omitempty"`
}

// ScreenNode declares one top-level screen.
type ScreenNode struct {
	Template    string `yaml:"template"` // basic | flat | transparent
	Background  string `yaml:"background,omitempty"`
	Cover       *Node  `yaml:"cover,omitempty"`
	CoverHeight int    `yaml:"cover_height,omitempty"`
	Content     *Node  `yaml:"content"`
	Footer      *Node  `yaml:"footer,omitempty"`
	Overlay     *Node  `yaml:"overlay,omitempty"`
}

// Node is one element of the view tree. Type selects the variant; the other
// fields apply where the variant uses them. Unknown types build as skipped
// elements rather than failing the document.
type Node struct {
	Type string `yaml:"type"`

	// Shared styling.
	Width   *SizeNode      `yaml:"width,omitempty"`
	Height  *SizeNode      `yaml:"height,omitempty"`
	Weight  int            `yaml:"weight,omitempty"`
	Padding *PaddingNode   `yaml:"padding,omitempty"`
	Opacity *float64       `yaml:"opacity,omitempty"`
	Fill    *FillNode      `yaml:"fill,omitempty"`
	Border  *BorderNode    `yaml:"border,omitempty"`
	Anim    *AnimationNode `yaml:"animation,omitempty"`

	// Containers.
	Spacing  int     `yaml:"spacing,omitempty"`
	Align    string  `yaml:"align,omitempty"` // start | center | end
	Children []*Node `yaml:"children,omitempty"`
	Child    *Node   `yaml:"child,omitempty"`
	Span     int     `yaml:"span,omitempty"` // grid item main-axis extent

	// Text and timer.
	Text       any          `yaml:"text,omitempty"` // string id: plain key or product reference
	Font       string       `yaml:"font,omitempty"`
	MaxLines   int          `yaml:"max_lines,omitempty"`
	AutoShrink bool         `yaml:"auto_shrink,omitempty"`
	TimerID    string       `yaml:"timer_id,omitempty"`
	Launch     *LaunchNode  `yaml:"launch,omitempty"`
	Formats    []FormatNode `yaml:"formats,omitempty"`

	// Interaction.
	ID        string         `yaml:"id,omitempty"`
	Normal    *Node          `yaml:"normal,omitempty"`
	Selected  *Node          `yaml:"selected,omitempty"`
	Condition *ConditionNode `yaml:"condition,omitempty"`
	Actions   []ActionNode   `yaml:"actions,omitempty"`
	On        []ActionNode   `yaml:"on_actions,omitempty"`
	Off       []ActionNode   `yaml:"off_actions,omitempty"`

	// Assets.
	Asset string `yaml:"asset,omitempty"`
	Tint  string `yaml:"tint,omitempty"`

	// Section and reference.
	DefaultIndex int    `yaml:"default_index,omitempty"`
	Ref          string `yaml:"ref,omitempty"`

	// Pager.
	Pages     []*Node        `yaml:"pages,omitempty"`
	PagerAnim *PagerAnimNode `yaml:"auto_advance,omitempty"`
	Indicator *IndicatorNode `yaml:"indicator,omitempty"`
}

// SizeNode is one axis of an element's size. Exactly one field applies:
// rule "fill"/"shrink", a fixed cell count, or a minimum.
type SizeNode struct {
	Rule  string `yaml:"rule,omitempty"`
	Cells int    `yaml:"cells,omitempty"`
	Min   int    `yaml:"min,omitempty"`
}

// PaddingNode is edge insets in cells.
type PaddingNode struct {
	Top    int `yaml:"top,omitempty"`
	Bottom int `yaml:"bottom,omitempty"`
	Left   int `yaml:"left,omitempty"`
	Right  int `yaml:"right,omitempty"`
}

// FillNode paints the element background by asset id.
type FillNode struct {
	Color    string `yaml:"color,omitempty"`
	Gradient string `yaml:"gradient,omitempty"`
}

// BorderNode decorates the element edge.
type BorderNode struct {
	Color     string `yaml:"color,omitempty"`
	Thickness int    `yaml:"thickness,omitempty"`
}

// AnimationNode declares property animations on an element.
type AnimationNode struct {
	Opacity    []AnimNode         `yaml:"opacity,omitempty"`
	Offset     []AnimNode         `yaml:"offset,omitempty"`
	Scale      []AnimNode         `yaml:"scale,omitempty"`
	Rotation   []AnimNode         `yaml:"rotation,omitempty"`
	BoxSize    []AnimNode         `yaml:"box_size,omitempty"`
	Background []ColorAnimNode    `yaml:"background,omitempty"`
	Gradient   []GradientAnimNode `yaml:"gradient,omitempty"`
	Border     []BorderAnimNode   `yaml:"border,omitempty"`
	Shadow     []ShadowAnimNode   `yaml:"shadow,omitempty"`
}

// TimingNode is the timing envelope shared by every animation descriptor.
type TimingNode struct {
	DurationMs   int    `yaml:"duration_ms"`
	StartDelayMs int    `yaml:"start_delay_ms,omitempty"`
	Easing       string `yaml:"easing,omitempty"` // linear | ease_in | ease_out | ease_in_out
	Repeat       string `yaml:"repeat,omitempty"` // normal | ping_pong
	Count        int    `yaml:"count,omitempty"`  // 0 = unlimited when repeat set
}

// AnimNode is one numeric animation descriptor: From to To over Duration.
// Values are a scalar [v] for opacity/scale/rotation or a pair for offset
// ([x y]) and box_size ([w h]).
type AnimNode struct {
	From       []float64 `yaml:"from"`
	To         []float64 `yaml:"to"`
	TimingNode `yaml:",inline"`
}

// ColorAnimNode animates a color between two references; each side is a
// color asset id or a "#rrggbb" literal.
type ColorAnimNode struct {
	From       string `yaml:"from"`
	To         string `yaml:"to"`
	TimingNode `yaml:",inline"`
}

// GradientAnimNode morphs the background between two gradient asset ids.
type GradientAnimNode struct {
	From       string `yaml:"from"`
	To         string `yaml:"to"`
	TimingNode `yaml:",inline"`
}

// BorderAnimNode animates the border stroke.
type BorderAnimNode struct {
	FromColor     string  `yaml:"from_color"`
	ToColor       string  `yaml:"to_color"`
	FromThickness float64 `yaml:"from_thickness,omitempty"`
	ToThickness   float64 `yaml:"to_thickness,omitempty"`
	TimingNode    `yaml:",inline"`
}

// ShadowAnimNode animates the drop shadow.
type ShadowAnimNode struct {
	From       ShadowNode `yaml:"from"`
	To         ShadowNode `yaml:"to"`
	TimingNode `yaml:",inline"`
}

// ShadowNode is one shadow keypoint: color reference, blur radius and offset
// pair [x y].
type ShadowNode struct {
	Color  string    `yaml:"color"`
	Blur   float64   `yaml:"blur,omitempty"`
	Offset []float64 `yaml:"offset,omitempty"`
}

// LaunchNode declares how a timer counts down.
type LaunchNode struct {
	Kind    string `yaml:"kind"`             // end_at | duration | custom
	EndAt   string `yaml:"end_at,omitempty"` // RFC 3339
	Seconds int    `yaml:"seconds,omitempty"`
	Start   string `yaml:"start,omitempty"` // every_appearance | once | once_persisted
}

// FormatNode is one timer display template, active above its threshold.
type FormatNode struct {
	FromSeconds int64 `yaml:"from_seconds"`
	Text        any   `yaml:"text"`
}

// ConditionNode selects an element's visual state.
type ConditionNode struct {
	Section string `yaml:"section,omitempty"`
	Index   int    `yaml:"index,omitempty"`
	Product string `yaml:"product,omitempty"`
	Group   string `yaml:"group,omitempty"`
}

// ActionNode is one declared action.
type ActionNode struct {
	Type     string `yaml:"type"`
	URL      string `yaml:"url,omitempty"`
	CustomID string `yaml:"custom_id,omitempty"`
	Product  string `yaml:"product,omitempty"`
	Group    string `yaml:"group,omitempty"`
	Screen   string `yaml:"screen,omitempty"`
	Section  string `yaml:"section,omitempty"`
	Index    int    `yaml:"index,omitempty"`
}

// PagerAnimNode configures pager auto-advance.
type PagerAnimNode struct {
	StartDelay   int    `yaml:"start_delay_ms,omitempty"`
	Transition   int    `yaml:"transition_ms,omitempty"`
	Easing       string `yaml:"easing,omitempty"`
	RepeatMs     int    `yaml:"repeat_transition_ms,omitempty"`
	Interruption string `yaml:"interruption,omitempty"` // cancel | pause
}

// IndicatorNode configures the pager dot row.
type IndicatorNode struct {
	Layout   string `yaml:"layout,omitempty"` // stacked | overlay
	VAlign   string `yaml:"valign,omitempty"` // start | center | end
	Color    string `yaml:"color,omitempty"`
	Selected string `yaml:"selected,omitempty"`
}

// TextNode is one entry of the texts map. A bare string in the fixture is
// shorthand for Value.
type TextNode struct {
	Value    string         `yaml:"value,omitempty"`
	Rich     []RichPartNode `yaml:"rich,omitempty"`
	Attrs    *AttrsNode     `yaml:"attrs,omitempty"`
	Fallback *TextNode      `yaml:"fallback,omitempty"`
}

// RichPartNode is one run of a rich template: exactly one of the three
// fields is set.
type RichPartNode struct {
	Text  string     `yaml:"text,omitempty"`
	Tag   string     `yaml:"tag,omitempty"`
	Image string     `yaml:"image,omitempty"`
	Attrs *AttrsNode `yaml:"attrs,omitempty"`
}

// AttrsNode is per-run styling.
type AttrsNode struct {
	Font          string `yaml:"font,omitempty"`
	Color         string `yaml:"color,omitempty"`
	Background    string `yaml:"background,omitempty"`
	Tint          string `yaml:"tint,omitempty"`
	Strikethrough bool   `yaml:"strikethrough,omitempty"`
	Underline     bool   `yaml:"underline,omitempty"`
}

// AssetNode declares one asset. Type selects the variant.
type AssetNode struct {
	Type string `yaml:"type"` // color | gradient | image | remote_image | video | font

	Value    string     `yaml:"value,omitempty"` // color hex
	Stops    []StopNode `yaml:"stops,omitempty"`
	Geometry string     `yaml:"geometry,omitempty"` // linear | radial | conic

	Source  string `yaml:"source,omitempty"`  // image glyph source / local path
	URL     string `yaml:"url,omitempty"`     // remote image / video
	Preview string `yaml:"preview,omitempty"` // local preview for remote assets

	ColorRef string  `yaml:"color_ref,omitempty"` // font color
	Weight   int     `yaml:"weight,omitempty"`
	Italic   bool    `yaml:"italic,omitempty"`
	Size     float64 `yaml:"size,omitempty"`
}

// StopNode is one gradient stop.
type StopNode struct {
	Color    string  `yaml:"color"`
	Position float64 `yaml:"position"`
}

// ProductNode declares one expected product slot.
type ProductNode struct {
	ID         string `yaml:"id"`
	VendorID   string `yaml:"vendor_id"`
	BasePlanID string `yaml:"base_plan_id,omitempty"`
	Group      string `yaml:"group,omitempty"`
}
