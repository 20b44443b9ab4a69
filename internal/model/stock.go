package model

import "time"

// StockUnit is one physical keg/cylinder/accessory instance. Codes and batch
// ids are unique within a company only, never globally.
type StockUnit struct {
	ID           string     `db:"id" json:"id"`
	CompanyID    string     `db:"company_id" json:"company_id"`
	ProductID    string     `db:"product_id" json:"product_id"`
	BatchID      int        `db:"batch_id" json:"batch_id"`
	UnitPrice    float64    `db:"unit_price" json:"unit_price"`
	VolumeLiters int        `db:"volume_liters" json:"volume_liters"`
	IntakeDate   string     `db:"intake_date" json:"intake_date"` // YYYY-MM-DD
	Code         string     `db:"code" json:"code"`               // empty until issued
	Status       UnitStatus `db:"status" json:"status"`
	Returnable   bool       `db:"returnable" json:"returnable"`
	CreatedBy    *string    `db:"created_by" json:"created_by"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// OrderCounter holds the last issued order number for one company. Created
// lazily on the first order, never deleted.
type OrderCounter struct {
	CompanyID       string `db:"company_id"`
	LastOrderNumber int    `db:"last_order_number"`
}

// CodeCounter backs the transactional code allocation strategy. ScopeKey is
// either the whole company or one operator within it.
type CodeCounter struct {
	CompanyID       string `db:"company_id"`
	ScopeKey        string `db:"scope_key"`
	LastCodeOrdinal int    `db:"last_code_ordinal"`
}
