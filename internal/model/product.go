package model

type Product struct {
	BaseModel
	CompanyID  string  `db:"company_id" json:"company_id"`
	Name       string  `db:"name" json:"name"`
	Brand      *string `db:"brand" json:"brand"`
	Category   *string `db:"category" json:"category"` // keg, cylinder, accessory
	Size       *string `db:"size" json:"size"`
	Unit       *string `db:"unit" json:"unit"` // liters, pieces
	BasePrice  float64 `db:"base_price" json:"base_price"`
	Returnable bool    `db:"returnable" json:"returnable"`
	IsActive   bool    `db:"is_active" json:"is_active"`
}
