package viewmodel

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

// loadMissing fetches the expected products that had no store match, with a
// fixed delay between attempts. The retry decision callback is consulted
// after every failure; without one a single attempt is made.
func (v *ViewModel) loadMissing(ctx context.Context, expected []ExpectedProduct) {
	wait := backoff.NewConstantBackOff(v.retryDelay)

	attempt := 0
	for {
		loaded, err := v.store.LoadProducts(ctx, expected)
		attempt++
		if err == nil {
			v.mu.Lock()
			still := v.associate(expected, loaded)
			v.loading = false
			v.mu.Unlock()
			if len(still) > 0 {
				v.logger.Warn("Store returned no match for some expected products",
					zap.Int("unresolved", len(still)))
			}
			v.emit(Event{Kind: EventProductsLoaded})
			return
		}

		v.logger.Warn("Product load attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if v.shouldRetry == nil || !v.shouldRetry(err, attempt-1) {
			v.finishLoadFailed(&LoadError{Attempts: attempt, Err: err})
			return
		}
		select {
		case <-time.After(wait.NextBackOff()):
		case <-ctx.Done():
			v.finishLoadFailed(&LoadError{Attempts: attempt, Err: ctx.Err()})
			return
		}
	}
}

func (v *ViewModel) finishLoadFailed(err *LoadError) {
	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
	v.emit(Event{Kind: EventProductsLoadFailed, Err: err})
}
