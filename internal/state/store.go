package state

// OpenedScreenKey holds the id of the currently open bottom-sheet sub-screen.
const OpenedScreenKey = "OPENED_ADDITIONAL_SCREEN"

// SectionKey synthesizes the state key tracking a section's active index.
func SectionKey(sectionID string) string {
	return "section_" + sectionID
}

// GroupKey synthesizes the state key tracking a product group's selection.
func GroupKey(groupID string) string {
	return "group_" + groupID
}

// Store is the flat runtime state of one paywall. All mutation happens on the
// main execution context through the view model; readers receive the map via
// a resolver function and must not write to it.
type Store map[string]any

// Clone returns a shallow copy. Values are conventionally immutable scalars
// (ints, strings, bools), so a shallow copy is a safe snapshot.
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SectionIndex reads a section's active index. The second result is false
// when no index has been stored for the section.
func (s Store) SectionIndex(sectionID string) (int, bool) {
	v, ok := s[SectionKey(sectionID)]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// SetSectionIndex stores a section's active index.
func (s Store) SetSectionIndex(sectionID string, index int) {
	s[SectionKey(sectionID)] = index
}

// SelectedProduct reads the product id selected within a group, if any.
func (s Store) SelectedProduct(groupID string) (string, bool) {
	v, ok := s[GroupKey(groupID)]
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// SelectProduct records a group's selected product id.
func (s Store) SelectProduct(groupID, productID string) {
	s[GroupKey(groupID)] = productID
}

// UnselectProduct clears a group's selection.
func (s Store) UnselectProduct(groupID string) {
	delete(s, GroupKey(groupID))
}

// OpenedScreen returns the id of the open sub-screen, or "" when none is open.
func (s Store) OpenedScreen() string {
	if v, ok := s[OpenedScreenKey].(string); ok {
		return v
	}
	return ""
}

// OpenScreen records the open sub-screen id.
func (s Store) OpenScreen(screenID string) {
	s[OpenedScreenKey] = screenID
}

// CloseScreen clears the open sub-screen.
func (s Store) CloseScreen() {
	delete(s, OpenedScreenKey)
}
