package errors

import "fmt"

// ErrValidation signals malformed input, rejected before any mutation.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrNotFound signals a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ErrConflict signals a uniqueness or state conflict (duplicate SKU, phone,
// order number).
type ErrConflict struct {
	Resource string
	Reason   string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}

// ErrUnavailable signals a product that exists but cannot be ordered.
type ErrUnavailable struct {
	Resource string
	Name     string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s %q is not available", e.Resource, e.Name)
}

// ErrInsufficientStock signals an order item requesting more units than are in stock.
type ErrInsufficientStock struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// ErrStale signals an optimistic-concurrency failure: the aggregate changed
// between read and write. Callers re-read and retry.
type ErrStale struct {
	Resource string
	ID       string
}

func (e *ErrStale) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently", e.Resource, e.ID)
}

// ErrOrderNumberExhausted signals that order number generation kept colliding.
type ErrOrderNumberExhausted struct {
	Attempts int
}

func (e *ErrOrderNumberExhausted) Error() string {
	return fmt.Sprintf("failed to generate a unique order number after %d attempts", e.Attempts)
}

// ErrUnauthorized signals a failed authentication attempt
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrNotification signals a gateway failure. Non-fatal: logged, never rolls
// back the order it belongs to.
type ErrNotification struct {
	Recipient string
	Err       error
}

func (e *ErrNotification) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Recipient, e.Err)
}

func (e *ErrNotification) Unwrap() error {
	return e.Err
}
