package stock

import (
	"context"

	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/stock/dto"
)

// Allocation strategies for batch ids and unit codes. Best-effort keeps the
// legacy read-then-decide behavior; transactional serializes allocation
// through the store.
const (
	StrategyBestEffort    = "best-effort"
	StrategyTransactional = "transactional"
)

type Repository interface {
	// FindByIntakeDate returns every unit a company received on one day,
	// the working set for batch resolution.
	FindByIntakeDate(ctx context.Context, companyID, intakeDate string) ([]model.StockUnit, error)

	// CreateUnits inserts pre-built units as-is.
	CreateUnits(ctx context.Context, units []model.StockUnit) error

	// CreateUnitsResolvingBatch assigns the batch id inside a transaction
	// that holds the (company, date) intake lock, then inserts. All units
	// must share company, product, price, volume and intake date.
	CreateUnitsResolvingBatch(ctx context.Context, units []model.StockUnit) ([]model.StockUnit, error)

	FindByID(ctx context.Context, companyID, id string) (*model.StockUnit, error)
	FindByCode(ctx context.Context, companyID, code string) (*model.StockUnit, error)
	FindAll(ctx context.Context, filters *dto.StockFilters) ([]model.StockUnit, int, error)

	// ListCodes returns the already-issued codes in scope: the whole
	// company, or one operator's units when issuedBy is set.
	ListCodes(ctx context.Context, companyID string, issuedBy *string) ([]string, error)

	// NextCodeOrdinal bumps the per-scope code counter atomically.
	NextCodeOrdinal(ctx context.Context, companyID, scopeKey string) (int, error)

	AssignCode(ctx context.Context, companyID, unitID, code string) error
	UpdateStatus(ctx context.Context, companyID, unitID string, status model.UnitStatus) error
	Delete(ctx context.Context, companyID, unitID string) error
}
