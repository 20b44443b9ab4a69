package dto

import "time"

type CreateOrderInput struct {
	CompanyID     string
	UserID        string
	CustomerName  string
	Address       string
	ScheduledAt   time.Time
	PaymentMethod string
	Items         []OrderItemInput
}

type OrderItemInput struct {
	ProductID string
	Name      string
	Size      string
	Quantity  int
}

type OrderFilters struct {
	CompanyID string
	Status    string
	Page      int
	PageSize  int
}
