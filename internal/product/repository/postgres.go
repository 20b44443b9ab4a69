package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/kegflow/kegflow-stock-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, company_id, name, brand, category, size, unit,
            base_price, returnable, is_active, created_at, updated_at
        )
        VALUES (
            :id, :company_id, :name, :brand, :category, :size, :unit,
            :base_price, :returnable, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, companyID, id string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE company_id = $1 AND id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, companyID string) ([]model.Product, error) {
	var products []model.Product
	query := `SELECT * FROM products WHERE company_id = $1 AND is_active = true ORDER BY name`
	err := r.DB.SelectContext(ctx, &products, query, companyID)
	return products, err
}
