package elements

import (
	"fmt"

	"github.com/skylineapps/paywallkit/internal/state"
)

// ActionType enumerates the closed set of paywall actions.
type ActionType int

const (
	ActionOpenURL ActionType = iota
	ActionCustom
	ActionSelectProduct
	ActionUnselectProduct
	ActionPurchaseProduct
	ActionPurchaseSelected
	ActionRestore
	ActionOpenScreen
	ActionCloseScreen
	ActionSwitchSection
	ActionClose
)

// String returns a human-readable name for the action type
func (t ActionType) String() string {
	switch t {
	case ActionOpenURL:
		return "open_url"
	case ActionCustom:
		return "custom"
	case ActionSelectProduct:
		return "select_product"
	case ActionUnselectProduct:
		return "unselect_product"
	case ActionPurchaseProduct:
		return "purchase_product"
	case ActionPurchaseSelected:
		return "purchase_selected"
	case ActionRestore:
		return "restore"
	case ActionOpenScreen:
		return "open_screen"
	case ActionCloseScreen:
		return "close_screen"
	case ActionSwitchSection:
		return "switch_section"
	case ActionClose:
		return "close"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Action is one dispatched paywall action. Actions carry ids only; the view
// model resolves them against live product and state maps at dispatch time.
type Action struct {
	Type ActionType

	// URL for open_url; already resolved from its string id at tap time.
	URL string
	// CustomID names the host-defined action for custom.
	CustomID string
	// ProductID targets select/unselect/purchase product actions.
	ProductID string
	// GroupID scopes product selection and purchase-selected.
	GroupID string
	// ScreenID targets open_screen.
	ScreenID string
	// SectionID and SectionIndex target switch_section.
	SectionID    string
	SectionIndex int
}

// ConditionKind discriminates selection conditions.
type ConditionKind int

const (
	// CondSelectedSection matches when a section's active index equals Index.
	CondSelectedSection ConditionKind = iota
	// CondSelectedProduct matches when a group's selected product equals
	// ProductID.
	CondSelectedProduct
)

// Condition selects between an element's normal and selected visual states.
type Condition struct {
	Kind      ConditionKind
	SectionID string
	Index     int
	ProductID string
	GroupID   string
}

// Holds reports whether the condition currently matches the runtime state.
func (c Condition) Holds(st state.Store) bool {
	switch c.Kind {
	case CondSelectedSection:
		idx, ok := st.SectionIndex(c.SectionID)
		return ok && idx == c.Index
	case CondSelectedProduct:
		id, ok := st.SelectedProduct(c.GroupID)
		return ok && id == c.ProductID
	default:
		return false
	}
}
