package viewmodel

import (
	"context"

	"github.com/skylineapps/paywallkit/internal/products"
)

// StoreHandler is the billing collaborator. The view model never retries
// purchases itself; retry policy belongs behind this interface.
type StoreHandler interface {
	// LoadProducts fetches pricing for the expected products that were not
	// supplied up front.
	LoadProducts(ctx context.Context, expected []ExpectedProduct) ([]*products.Product, error)
	// Purchase starts a purchase. completion must be called with the terminal
	// outcome; the view model guards against duplicate invocations.
	Purchase(ctx context.Context, product *products.Product, completion func(error))
	// Restore starts a restore flow with the same completion contract.
	Restore(ctx context.Context, completion func(error))
}

// PurchaseDelegate handles purchase and restore bookkeeping in observer mode.
// When the host runs its own billing flow, the view model hands the request
// over instead of calling the store directly.
type PurchaseDelegate interface {
	OnPurchase(product *products.Product, completion func(error))
	OnRestore(completion func(error))
}

// CacheRepository persists small values for the view model, keyed by string.
// persisted selects durable storage; volatile values only have to survive
// re-renders within a process.
type CacheRepository interface {
	GetLong(key string, persisted bool) (int64, bool)
	SetLong(key string, value int64, persisted bool)
}

// RetryDecision is consulted after each failed product load. Returning false
// stops the load; the delay between attempts is fixed.
type RetryDecision func(err error, attempt int) bool
