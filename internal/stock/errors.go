package stock

import "errors"

var (
	// ErrCapacityExceeded means a scope ran out of 3-digit code ordinals.
	ErrCapacityExceeded = errors.New("unit code capacity exceeded")

	ErrUnitNotFound = errors.New("stock unit not found")
)
