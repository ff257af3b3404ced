package symbolic

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrResourceExhausted is matched by every *ResourceError.
	ErrResourceExhausted = errors.New("symbolic: resource budget exhausted")
	// ErrUnbound is returned when evaluation meets a symbol with no value.
	ErrUnbound = errors.New("symbolic: unbound symbol")
)

// ResourceError reports a simplification or expansion that ran past its
// node-count or time budget. It is not a correctness failure: the input was
// valid but too expensive under the configured limits.
type ResourceError struct {
	Resource string // "nodes" or "time"
	Limit    int64
	Observed int64
}

func (e *ResourceError) Error() string {
	if e.Resource == "time" {
		return fmt.Sprintf("symbolic: time budget %v exceeded after %v",
			time.Duration(e.Limit), time.Duration(e.Observed))
	}
	return fmt.Sprintf("symbolic: %s budget %d exceeded (%d)", e.Resource, e.Limit, e.Observed)
}

func (e *ResourceError) Unwrap() error { return ErrResourceExhausted }
