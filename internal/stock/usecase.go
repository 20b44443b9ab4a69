package stock

import (
	"context"

	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/stock/dto"
)

type UseCase interface {
	// Intake records quantity N as N physical units sharing one batch id.
	Intake(ctx context.Context, input *dto.IntakeInput) ([]model.StockUnit, error)

	// ResolveBatch answers which batch id an intake with these attributes
	// would join, without writing anything. Idempotent.
	ResolveBatch(ctx context.Context, companyID string, key dto.BatchKey) (int, error)

	// IssueCode mints the next scannable code in scope and assigns it to
	// the unit.
	IssueCode(ctx context.Context, input *dto.IssueCodeInput) (*model.StockUnit, error)

	ListUnits(ctx context.Context, filters *dto.StockFilters) ([]model.StockUnit, int, error)
	DeleteUnit(ctx context.Context, companyID, id string) error

	// Summary folds the company's units into per-(product, intake date)
	// groups for list and report views.
	Summary(ctx context.Context, companyID string) ([]GroupedProduct, error)
}
