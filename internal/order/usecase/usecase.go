package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/order"
	"github.com/kegflow/kegflow-stock-service/internal/order/dto"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

// Order numbers are fixed-width; the sequence is capped rather than widened
// so printed and stored numbers always sort lexically.
const (
	orderNumberWidth = 4
	maxOrderNumber   = 9999
)

type orderUseCase struct {
	repo   order.Repository
	logger logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *orderUseCase) NextOrderNumber(ctx context.Context, companyID string) (string, error) {
	next, err := uc.repo.NextOrderNumber(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", order.ErrAllocationFailed, err)
	}
	if next > maxOrderNumber {
		return "", fmt.Errorf("%w: sequence reached %d", order.ErrCapacityExceeded, next)
	}
	return fmt.Sprintf("%0*d", orderNumberWidth, next), nil
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	// The number comes first; if allocation fails no order is written.
	number, err := uc.NextOrderNumber(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	o := &model.Order{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CompanyID:     input.CompanyID,
		Number:        number,
		CustomerName:  input.CustomerName,
		Address:       input.Address,
		ScheduledAt:   input.ScheduledAt,
		PaymentMethod: input.PaymentMethod,
		Status:        model.OrderStatusPending,
	}
	for _, item := range input.Items {
		o.Items = append(o.Items, model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		// The allocated number stays consumed; the sequence may gap but
		// never repeats.
		uc.logger.Error("failed to persist order",
			zap.String("company_id", input.CompanyID),
			zap.String("number", number),
			zap.Error(err),
		)
		return nil, err
	}

	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, companyID, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, companyID, id string, status model.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid order status %q", status)
	}
	if err := uc.repo.UpdateStatus(ctx, companyID, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return order.ErrOrderNotFound
		}
		return err
	}
	return nil
}

func (uc *orderUseCase) CancelOrder(ctx context.Context, companyID, id string) error {
	return uc.UpdateOrderStatus(ctx, companyID, id, model.OrderStatusCancelled)
}
