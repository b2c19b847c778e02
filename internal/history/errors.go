package history

import (
	"errors"
	"fmt"
)

// CapacityError reports an append rejected because the per-element record
// cap was reached. The store state is unchanged; the caller may prompt the
// user or delete older records and retry. That policy belongs to the
// caller, not the store.
type CapacityError struct {
	// Key is the composite key the append targeted.
	Key string
	// Element is the element identifier at capacity.
	Element string
	// Limit is the configured per-element cap.
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("maximum history length (%d) reached for element %q (key=%s)", e.Limit, e.Element, e.Key)
}

// IsCapacityError reports whether err is (or wraps) a CapacityError.
func IsCapacityError(err error) bool {
	var ce *CapacityError
	return errors.As(err, &ce)
}
