package model

// UnitStatus is the handling stage of one physical stock unit. Units move
// strictly forward through the chain; each stage is an audit point, so there
// is no skipping and no going back through Advance.
type UnitStatus int

const (
	UnitStatusPending    UnitStatus = 0
	UnitStatusOnTheWay   UnitStatus = 1
	UnitStatusInProgress UnitStatus = 2
	UnitStatusChecked    UnitStatus = 3
	UnitStatusInstalled  UnitStatus = 4
	UnitStatusFree       UnitStatus = 5
	UnitStatusEmpty      UnitStatus = 6
	UnitStatusCanceled   UnitStatus = 7
)

var unitStatusLabels = map[UnitStatus]string{
	UnitStatusPending:    "Pending",
	UnitStatusOnTheWay:   "On the way",
	UnitStatusInProgress: "In progress",
	UnitStatusChecked:    "Checked",
	UnitStatusInstalled:  "Installed",
	UnitStatusFree:       "Free",
	UnitStatusEmpty:      "Empty",
	UnitStatusCanceled:   "Canceled",
}

// Advance returns the next stage. At Empty (the last regular stage) and at
// Canceled it returns the receiver unchanged, so repeated calls are safe.
func (s UnitStatus) Advance() UnitStatus {
	if s == UnitStatusCanceled || s >= UnitStatusEmpty {
		return s
	}
	return s + 1
}

// Cancel is unconditional; a canceled unit never advances again.
func (s UnitStatus) Cancel() UnitStatus {
	return UnitStatusCanceled
}

// Label returns the display string for a status. Unrecognized values map to
// the Free label so a corrupt status code renders as an available unit
// instead of breaking the list view. Use ParseUnitStatus when the caller
// needs to know the value was out of range.
func (s UnitStatus) Label() string {
	if label, ok := unitStatusLabels[s]; ok {
		return label
	}
	return unitStatusLabels[UnitStatusFree]
}

// ParseUnitStatus reports whether code is a known status. It exists so
// diagnostics can tell a genuinely Free unit apart from an unknown code that
// Label aliases to Free.
func ParseUnitStatus(code int) (UnitStatus, bool) {
	s := UnitStatus(code)
	_, ok := unitStatusLabels[s]
	return s, ok
}

// OrderStatus is the delivery progress of a customer order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusEnRoute    OrderStatus = "en_route"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusEnRoute,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
