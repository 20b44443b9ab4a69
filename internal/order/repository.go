package order

import (
	"context"

	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/order/dto"
)

type Repository interface {
	// NextOrderNumber bumps the company's counter atomically and returns
	// the new value. Two concurrent callers never see the same number.
	NextOrderNumber(ctx context.Context, companyID string) (int, error)

	// Create persists the order and its line items in one transaction.
	Create(ctx context.Context, order *model.Order) error

	FindByID(ctx context.Context, companyID, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	UpdateStatus(ctx context.Context, companyID, id string, status model.OrderStatus) error
}
