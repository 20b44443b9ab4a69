package usecase

import (
	"context"
	"strconv"

	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/product"
	"github.com/kegflow/kegflow-stock-service/internal/reconcile"
	"github.com/kegflow/kegflow-stock-service/internal/stock"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

type reconcileUseCase struct {
	units    stock.Repository
	products product.Repository
	logger   logger.ZapLogger
}

func NewReconcileUseCase(units stock.Repository, products product.Repository, log logger.ZapLogger) reconcile.UseCase {
	return &reconcileUseCase{
		units:    units,
		products: products,
		logger:   log,
	}
}

// Match links a physical unit to an order line by exact (name, size) string
// equality, not by product id. Orders keep the display strings entered at
// order time, so the link survives products being re-keyed or renamed in the
// catalog; the price is a possible mismatch if two products share a name and
// size.
func (uc *reconcileUseCase) Match(
	ctx context.Context,
	companyID, scannedCode string,
	items []model.OrderItem,
	session *reconcile.Session,
) (*reconcile.MatchResult, error) {
	unit, err := uc.units.FindByCode(ctx, companyID, scannedCode)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, reconcile.ErrCodeNotFound
	}

	productName := ""
	if p, err := uc.products.FindByID(ctx, companyID, unit.ProductID); err != nil {
		return nil, err
	} else if p != nil {
		productName = p.Name
	}

	// Lines with identical name and size share one progress counter; their
	// quantities add up.
	size := strconv.Itoa(unit.VolumeLiters)
	requested := 0
	for _, item := range items {
		if item.Name == productName && item.Size == size {
			requested += item.Quantity
		}
	}
	if requested == 0 {
		return nil, reconcile.ErrNotOnOrder
	}

	key := reconcile.LineKey{Name: productName, Size: size}
	count, ok := session.TryIncrement(key, requested)
	if !ok {
		return nil, reconcile.ErrAlreadySatisfied
	}

	newStatus := unit.Status.Advance()
	if err := uc.units.UpdateStatus(ctx, companyID, unit.ID, newStatus); err != nil {
		session.Decrement(key)
		uc.logger.Error("failed to advance unit after scan",
			zap.String("unit_id", unit.ID),
			zap.String("code", scannedCode),
			zap.Error(err),
		)
		return nil, err
	}
	session.MarkScanned(unit.ID)

	return &reconcile.MatchResult{
		Line:      key,
		Count:     count,
		Requested: requested,
		UnitID:    unit.ID,
		NewStatus: newStatus,
	}, nil
}
