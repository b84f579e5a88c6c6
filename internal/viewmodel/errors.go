package viewmodel

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStoreHandler means a purchase, restore or product load was
	// requested without a billing collaborator installed.
	ErrNoStoreHandler = errors.New("no store handler configured")
	// ErrProductNotFound means an action referenced a product id that is not
	// in the resolved product map.
	ErrProductNotFound = errors.New("product not found")
	// ErrNoConfiguration means an operation ran before SetConfiguration.
	ErrNoConfiguration = errors.New("no configuration set")
)

// LoadError wraps a product load failure with the attempt count at which the
// retry policy gave up.
type LoadError struct {
	Attempts int
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("product load failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
