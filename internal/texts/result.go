package texts

// ResultKind tags a resolution outcome. Outcome tags replace the identity-
// compared sentinel wrappers of older SDK generations: composition logic
// branches on the kind, never on pointer equality.
type ResultKind int

const (
	// ResultEmpty means the id resolved to nothing renderable.
	ResultEmpty ResultKind = iota
	// ResultSingle is one run of plain text.
	ResultSingle
	// ResultTimerSegment is a digit format plus the time unit it displays.
	ResultTimerSegment
	// ResultComplex is an ordered list of resolved parts.
	ResultComplex
	// ResultProductMissing aborts rich-text assembly: a product tag
	// referenced a product that is not loaded.
	ResultProductMissing
	// ResultCustomTagMissing signals a custom tag the host could not supply;
	// the caller retries with the item's fallback template if one exists.
	ResultCustomTagMissing
)

// String returns a human-readable name for the result kind
func (k ResultKind) String() string {
	switch k {
	case ResultEmpty:
		return "empty"
	case ResultSingle:
		return "single"
	case ResultTimerSegment:
		return "timer_segment"
	case ResultComplex:
		return "complex"
	case ResultProductMissing:
		return "product_not_found"
	case ResultCustomTagMissing:
		return "custom_tag_not_found"
	default:
		return "unknown"
	}
}

// PartKind discriminates resolved rich-text parts.
type PartKind int

const (
	PartText PartKind = iota
	PartImage
	PartTimerSegment
)

// Part is one resolved run of a complex result.
type Part struct {
	Kind    PartKind
	Text    string
	Attrs   *Attributes
	ImageID string
	Segment *TimerSegment
}

// Result is the outcome of resolving a StringID.
type Result struct {
	Kind    ResultKind
	Value   string
	Attrs   *Attributes
	Segment *TimerSegment
	Parts   []Part
}

// Empty is the canonical nothing-to-render result.
func Empty() Result {
	return Result{Kind: ResultEmpty}
}

// Single wraps one plain run of text.
func Single(value string, attrs *Attributes) Result {
	return Result{Kind: ResultSingle, Value: value, Attrs: attrs}
}

// PlainString flattens a result to its display text, ignoring images and
// timer segments. Sentinel outcomes flatten to "".
func (r Result) PlainString() string {
	switch r.Kind {
	case ResultSingle:
		return r.Value
	case ResultComplex:
		var out string
		for _, p := range r.Parts {
			if p.Kind == PartText {
				out += p.Text
			}
		}
		return out
	default:
		return ""
	}
}
