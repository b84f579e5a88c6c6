package viewmodel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/elements"
	"github.com/skylineapps/paywallkit/internal/logging"
	"github.com/skylineapps/paywallkit/internal/products"
)

// OnActions implements elements.EventCallback. Actions mutate runtime state
// directly or surface to the host as lifecycle events. An open_url action
// whose URL reference did not resolve is logged and dropped, never handed
// to the host.
func (v *ViewModel) OnActions(actions []elements.Action) {
	kept := make([]elements.Action, 0, len(actions))
	types := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.Type == elements.ActionOpenURL && a.URL == "" {
			v.logger.Warn("Dropping open_url action with unresolved URL")
			continue
		}
		kept = append(kept, a)
		types = append(types, a.Type.String())
	}
	if len(kept) == 0 {
		return
	}
	logging.LogActionDispatch(v.logger, types)

	for _, a := range kept {
		switch a.Type {
		case elements.ActionSelectProduct:
			v.selectProduct(a.GroupID, a.ProductID)
		case elements.ActionUnselectProduct:
			v.withState(func() { v.state.UnselectProduct(a.GroupID) })
		case elements.ActionPurchaseProduct:
			v.Purchase(a.ProductID)
		case elements.ActionPurchaseSelected:
			v.PurchaseSelected(a.GroupID)
		case elements.ActionRestore:
			v.Restore()
		case elements.ActionOpenScreen:
			v.withState(func() { v.state.OpenScreen(a.ScreenID) })
		case elements.ActionCloseScreen:
			v.withState(func() { v.state.CloseScreen() })
		case elements.ActionSwitchSection:
			v.withState(func() { v.state.SetSectionIndex(a.SectionID, a.SectionIndex) })
		case elements.ActionOpenURL:
			v.emit(Event{Kind: EventOpenURL, URL: a.URL})
		case elements.ActionCustom:
			v.emit(Event{Kind: EventCustomAction, CustomID: a.CustomID})
		case elements.ActionClose:
			v.emit(Event{Kind: EventCloseRequested})
		}
	}
}

// OnInitialProductSelected implements elements.EventCallback: a button whose
// product condition held on first render reports the default selection.
func (v *ViewModel) OnInitialProductSelected(groupID, productID string) {
	v.emit(Event{Kind: EventProductSelected, GroupID: groupID, ProductID: productID})
}

// OnTimerExpired implements elements.EventCallback.
func (v *ViewModel) OnTimerExpired(timerID string, actions []elements.Action) {
	v.emit(Event{Kind: EventTimerExpired, TimerID: timerID})
	v.OnActions(actions)
}

func (v *ViewModel) selectProduct(groupID, productID string) {
	v.withState(func() { v.state.SelectProduct(groupID, productID) })
	v.emit(Event{Kind: EventProductSelected, GroupID: groupID, ProductID: productID})
}

func (v *ViewModel) withState(mutate func()) {
	v.mu.Lock()
	mutate()
	v.mu.Unlock()
}

// Purchase starts a purchase for a configuration product id. In observer
// mode the delegate handles the flow when installed; otherwise the store is
// called directly.
func (v *ViewModel) Purchase(productID string) {
	v.mu.Lock()
	configured := v.cfg != nil
	p, ok := v.products[productID]
	v.mu.Unlock()
	if !configured {
		v.logger.Warn("Purchase before a configuration is mounted", zap.String("product_id", productID))
		v.emit(Event{Kind: EventPurchaseFailed, ProductID: productID, Err: ErrNoConfiguration})
		return
	}
	if !ok {
		v.logger.Warn("Purchase for unresolved product", zap.String("product_id", productID))
		v.emit(Event{Kind: EventPurchaseFailed, ProductID: productID, Err: ErrProductNotFound})
		return
	}
	v.purchase(p)
}

// PurchaseSelected purchases the group's currently selected product. With no
// selection the action is dropped with a warning.
func (v *ViewModel) PurchaseSelected(groupID string) {
	v.mu.Lock()
	id, ok := v.state.SelectedProduct(groupID)
	v.mu.Unlock()
	if !ok {
		v.logger.Warn("Purchase-selected with no selection", zap.String("group_id", groupID))
		return
	}
	v.Purchase(id)
}

func (v *ViewModel) purchase(p *products.Product) {
	v.emit(Event{Kind: EventPurchaseStarted, ProductID: p.ID, GroupID: p.GroupID})

	// The store may deliver multiple update notifications for one
	// transaction; only the first terminal callback counts.
	done := onceCompletion(func(err error) {
		if err != nil {
			v.emit(Event{Kind: EventPurchaseFailed, ProductID: p.ID, GroupID: p.GroupID, Err: err})
			return
		}
		v.emit(Event{Kind: EventPurchaseCompleted, ProductID: p.ID, GroupID: p.GroupID})
	})

	if v.observer {
		if v.delegate != nil {
			v.delegate.OnPurchase(p, done)
			return
		}
		v.logger.Warn("Observer mode without purchase delegate; purchasing directly")
	}
	if v.store == nil {
		done(ErrNoStoreHandler)
		return
	}
	v.store.Purchase(context.Background(), p, done)
}

// Restore starts a restore flow with the same observer-mode dual path as
// Purchase.
func (v *ViewModel) Restore() {
	v.mu.Lock()
	configured := v.cfg != nil
	v.mu.Unlock()
	if !configured {
		v.logger.Warn("Restore before a configuration is mounted")
		v.emit(Event{Kind: EventRestoreFailed, Err: ErrNoConfiguration})
		return
	}

	done := onceCompletion(func(err error) {
		if err != nil {
			v.emit(Event{Kind: EventRestoreFailed, Err: err})
			return
		}
		v.emit(Event{Kind: EventRestoreCompleted})
	})

	if v.observer {
		if v.delegate != nil {
			v.delegate.OnRestore(done)
			return
		}
		v.logger.Warn("Observer mode without purchase delegate; restoring directly")
	}
	if v.store == nil {
		done(ErrNoStoreHandler)
		return
	}
	v.store.Restore(context.Background(), done)
}

// onceCompletion wraps a terminal callback so only the first invocation runs.
func onceCompletion(f func(error)) func(error) {
	var once sync.Once
	return func(err error) {
		once.Do(func() { f(err) })
	}
}
