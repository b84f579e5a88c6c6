package configfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrValidation wraps every document validation failure.
var ErrValidation = errors.New("invalid paywall configuration")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// UnmarshalYAML accepts the bare-string shorthand for plain text items.
func (t *TextNode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&t.Value)
	}
	type raw TextNode
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*t = TextNode(r)
	return nil
}

// Load reads and parses a fixture file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a fixture document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration YAML: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document for structural problems a build would turn
// into silent misbehavior. Unknown element types are allowed; they build as
// skipped elements.
func (d *Document) Validate() error {
	if d.PlacementID == "" {
		return validationError("placement_id is required")
	}
	if d.Screen == nil {
		return validationError("screen is required")
	}
	if err := d.Screen.validate("screen"); err != nil {
		return err
	}
	for id, screen := range d.Screens {
		if screen == nil {
			return validationError("screens.%s is empty", id)
		}
		if err := screen.validate("screens." + id); err != nil {
			return err
		}
	}

	for i, p := range d.Products {
		if p.ID == "" {
			return validationError("products[%d]: id is required", i)
		}
		if p.VendorID == "" {
			return validationError("products[%d] (%s): vendor_id is required", i, p.ID)
		}
	}

	for id, a := range d.Assets {
		if a == nil || a.Type == "" {
			return validationError("assets.%s: type is required", id)
		}
		switch a.Type {
		case "color":
			if a.Value == "" {
				return validationError("assets.%s: color needs a value", id)
			}
		case "gradient":
			if len(a.Stops) < 2 {
				return validationError("assets.%s: gradient needs at least two stops", id)
			}
		case "image", "remote_image", "video", "font":
		default:
			return validationError("assets.%s: unknown type %q", id, a.Type)
		}
	}

	for key, item := range d.Texts {
		if err := item.validate("texts." + key); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScreenNode) validate(path string) error {
	switch s.Template {
	case "basic", "flat", "transparent":
	case "":
		return validationError("%s: template is required", path)
	default:
		return validationError("%s: unknown template %q", path, s.Template)
	}
	if s.Content == nil {
		return validationError("%s: content is required", path)
	}
	if s.Cover != nil && s.CoverHeight <= 0 {
		return validationError("%s: cover needs a positive cover_height", path)
	}
	return nil
}

func (t *TextNode) validate(path string) error {
	if t == nil {
		return validationError("%s is empty", path)
	}
	for i, part := range t.Rich {
		set := 0
		if part.Text != "" {
			set++
		}
		if part.Tag != "" {
			set++
		}
		if part.Image != "" {
			set++
		}
		if set != 1 {
			return validationError("%s.rich[%d]: exactly one of text, tag, image", path, i)
		}
	}
	if t.Fallback != nil {
		return t.Fallback.validate(path + ".fallback")
	}
	return nil
}
