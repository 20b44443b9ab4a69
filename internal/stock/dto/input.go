package dto

type IntakeInput struct {
	CompanyID    string
	UserID       string
	ProductID    string
	UnitPrice    float64
	VolumeLiters int
	IntakeDate   string // YYYY-MM-DD
	Quantity     int
	Returnable   bool
}

// BatchKey is the fuzzy-match key for batch assignment: units with equal
// product, price and volume on one intake date share a batch.
type BatchKey struct {
	ProductID    string
	UnitPrice    float64
	VolumeLiters int
	IntakeDate   string
}

type IssueCodeInput struct {
	CompanyID string
	UserID    string
	UnitID    string
	// PerOperator scopes code uniqueness to the issuing operator instead
	// of the whole company.
	PerOperator bool
}

type StockFilters struct {
	CompanyID  string
	ProductID  string
	IntakeDate string
	Status     *int
	Page       int
	PageSize   int
}
