package texts

import (
	"errors"
	"fmt"
)

// ErrDecode is the sentinel wrapped by all string-id decode failures.
var ErrDecode = errors.New("string id decode failure")

// DecodeError reports a structured string-id payload whose type discriminator
// is not part of the schema. This is the engine's only throwing failure mode;
// every other miss degrades to sentinel content.
type DecodeError struct {
	Type string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("string id decode failure: unexpected type %q", e.Type)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

// StringID identifies a piece of paywall copy. The closed set of variants is
// StrID (literal text key) and ProductID (product text reference).
type StringID interface {
	isStringID()
}

// StrID references a text item directly by key.
type StrID struct {
	Key string
}

func (StrID) isStringID() {}

// ProductID references the text for a product. An empty ProductID defaults to
// the group's currently selected product at resolution time. Suffix narrows
// the key cascade, e.g. "title" or "badge".
type ProductID struct {
	ProductID string
	GroupID   string
	Suffix    string
}

func (ProductID) isStringID() {}

// DecodeStringID builds a StringID from an already-parsed config value: a
// bare string is a literal key, a map is a structured reference with a "type"
// discriminator of "str" or "product".
func DecodeStringID(v any) (StringID, error) {
	switch raw := v.(type) {
	case string:
		return StrID{Key: raw}, nil
	case map[string]any:
		typ, _ := raw["type"].(string)
		switch typ {
		case "str":
			key, _ := raw["id"].(string)
			return StrID{Key: key}, nil
		case "product":
			id, _ := raw["id"].(string)
			group, _ := raw["group_id"].(string)
			suffix, _ := raw["suffix"].(string)
			return ProductID{ProductID: id, GroupID: group, Suffix: suffix}, nil
		default:
			return nil, &DecodeError{Type: typ}
		}
	default:
		return nil, &DecodeError{Type: fmt.Sprintf("%T", v)}
	}
}
