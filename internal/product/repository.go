package product

import (
	"context"

	"github.com/kegflow/kegflow-stock-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, companyID, id string) (*model.Product, error)
	FindAll(ctx context.Context, companyID string) ([]model.Product, error)
}
