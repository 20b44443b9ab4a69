package order

import (
	"context"

	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/order/dto"
)

type UseCase interface {
	// NextOrderNumber allocates the next zero-padded order number for the
	// company. The number is consumed whether or not an order is created
	// with it; an abandoned allocation leaves a gap, never a duplicate.
	NextOrderNumber(ctx context.Context, companyID string) (string, error)

	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, companyID, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	UpdateOrderStatus(ctx context.Context, companyID, id string, status model.OrderStatus) error
	CancelOrder(ctx context.Context, companyID, id string) error
}
