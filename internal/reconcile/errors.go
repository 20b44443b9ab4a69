package reconcile

import "errors"

var (
	// ErrCodeNotFound: no unit with this code in the scanning company.
	// A code belonging to another tenant is indistinguishable from an
	// unknown one.
	ErrCodeNotFound = errors.New("scanned code not recognized")

	// ErrNotOnOrder: the unit exists but no order line matches its
	// product name and size. Nothing is mutated.
	ErrNotOnOrder = errors.New("unit is not part of this order")

	// ErrAlreadySatisfied: the matching line's quantity is already fully
	// scanned. Nothing is mutated.
	ErrAlreadySatisfied = errors.New("line item already fully scanned")
)
