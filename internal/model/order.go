package model

import "time"

type Order struct {
	BaseModel
	CompanyID     string      `db:"company_id" json:"company_id"`
	Number        string      `db:"number" json:"number"` // zero-padded, per-company sequence
	CustomerName  string      `db:"customer_name" json:"customer_name"`
	Address       string      `db:"address" json:"address"`
	ScheduledAt   time.Time   `db:"scheduled_at" json:"scheduled_at"`
	PaymentMethod string      `db:"payment_method" json:"payment_method"`
	Status        OrderStatus `db:"status" json:"status"`
	Items         []OrderItem `db:"-" json:"items"`
}

// OrderItem carries the product's display name and size as entered at order
// time. Reconciliation matches scanned units against these strings, not
// against product ids, so historical orders survive product re-keying.
type OrderItem struct {
	ID        string `db:"id" json:"id"`
	OrderID   string `db:"order_id" json:"order_id"`
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Size      string `db:"size" json:"size"`
	Quantity  int    `db:"quantity" json:"quantity"`
}
