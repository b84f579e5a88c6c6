package viewmodel

import "fmt"

// EventKind enumerates paywall lifecycle events.
type EventKind int

const (
	// EventShown fires when the paywall is presented.
	EventShown EventKind = iota
	// EventProductSelected fires on explicit and initial product selection.
	EventProductSelected
	// EventPurchaseStarted fires before the store or delegate is invoked.
	EventPurchaseStarted
	// EventPurchaseCompleted fires on a successful purchase.
	EventPurchaseCompleted
	// EventPurchaseFailed fires on a failed or canceled purchase.
	EventPurchaseFailed
	// EventRestoreCompleted fires on a successful restore.
	EventRestoreCompleted
	// EventRestoreFailed fires on a failed restore.
	EventRestoreFailed
	// EventTimerExpired fires when a countdown reaches zero.
	EventTimerExpired
	// EventOpenURL asks the host to open an external URL.
	EventOpenURL
	// EventCustomAction forwards a host-defined action id.
	EventCustomAction
	// EventCloseRequested asks the host to dismiss the paywall.
	EventCloseRequested
	// EventProductsLoaded fires when an asynchronous product load resolved
	// all remaining slots it could.
	EventProductsLoaded
	// EventProductsLoadFailed fires when the retry policy gave up on a
	// product load.
	EventProductsLoadFailed
)

// String returns a human-readable name for the event kind
func (k EventKind) String() string {
	switch k {
	case EventShown:
		return "shown"
	case EventProductSelected:
		return "product_selected"
	case EventPurchaseStarted:
		return "purchase_started"
	case EventPurchaseCompleted:
		return "purchase_completed"
	case EventPurchaseFailed:
		return "purchase_failed"
	case EventRestoreCompleted:
		return "restore_completed"
	case EventRestoreFailed:
		return "restore_failed"
	case EventTimerExpired:
		return "timer_expired"
	case EventOpenURL:
		return "open_url"
	case EventCustomAction:
		return "custom_action"
	case EventCloseRequested:
		return "close_requested"
	case EventProductsLoaded:
		return "products_loaded"
	case EventProductsLoadFailed:
		return "products_load_failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is one lifecycle notification. SessionID ties every event of a
// single paywall presentation together.
type Event struct {
	Kind        EventKind
	SessionID   string
	PlacementID string
	ProductID   string
	GroupID     string
	TimerID     string
	CustomID    string
	URL         string
	Err         error
}

// Listener receives lifecycle events. Calls arrive on whatever goroutine
// completed the underlying work; hosts marshal to their UI context.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }
