package texts

// Attributes carries per-run style overrides resolved against the asset map
// at paint time. Zero values mean "inherit from the element".
type Attributes struct {
	FontAssetID       string
	Size              float64
	Strikethrough     bool
	Underline         bool
	ColorAssetID      string
	BackgroundAssetID string
	TintAssetID       string
}

// RichPartKind discriminates the parts of a rich text template.
type RichPartKind int

const (
	RichLiteral RichPartKind = iota
	RichTag
	RichImage
)

// RichPart is one run of a rich text template: a literal string, a tag to be
// resolved (product, timer or custom), or an inline image asset reference.
type RichPart struct {
	Kind  RichPartKind
	Value string
	Attrs *Attributes
}

// Item is one entry of the texts map. Either Value holds a plain string, or
// Rich holds a parsed template. Fallback, when present, is retried if the
// primary template fails on a missing custom tag.
type Item struct {
	Value    string
	Rich     []RichPart
	Attrs    *Attributes
	Fallback *Item
}

// IsRich reports whether the item is a template rather than a plain string.
func (it *Item) IsRich() bool {
	return len(it.Rich) > 0
}
