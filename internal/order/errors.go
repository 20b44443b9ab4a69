package order

import "errors"

var (
	// ErrAllocationFailed means the order number transaction could not
	// complete. No order may be created without a number.
	ErrAllocationFailed = errors.New("could not allocate order number")

	// ErrCapacityExceeded means the per-company sequence outgrew its
	// fixed 4-digit format. Surfaced explicitly rather than truncating.
	ErrCapacityExceeded = errors.New("order number capacity exceeded")

	ErrOrderNotFound = errors.New("order not found")
)
