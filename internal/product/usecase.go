package product

import (
	"context"
	"errors"

	"github.com/kegflow/kegflow-stock-service/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

type UseCase interface {
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, companyID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, companyID string) ([]model.Product, error)
}
