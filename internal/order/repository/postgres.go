package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// NextOrderNumber is a single-statement read-modify-write: the upsert takes
// a row lock on the company's counter, so concurrent callers serialize and
// each RETURNING value is distinct. A missing counter row starts at 1.
func (r *PGRepository) NextOrderNumber(ctx context.Context, companyID string) (int, error) {
	var next int
	query := `
        INSERT INTO order_counters (company_id, last_order_number)
        VALUES ($1, 1)
        ON CONFLICT (company_id)
        DO UPDATE SET last_order_number = order_counters.last_order_number + 1
        RETURNING last_order_number
    `
	if err := r.DB.GetContext(ctx, &next, query, companyID); err != nil {
		return 0, fmt.Errorf("bump order counter: %w", err)
	}
	return next, nil
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orderQuery := `
        INSERT INTO orders (
            id, company_id, number, customer_name, address,
            scheduled_at, payment_method, status, created_at, updated_at
        )
        VALUES (
            :id, :company_id, :number, :customer_name, :address,
            :scheduled_at, :payment_method, :status, :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, orderQuery, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (id, order_id, product_id, name, size, quantity)
        VALUES (:id, :order_id, :product_id, :name, :size, :quantity)
    `
	for i := range o.Items {
		if _, err := tx.NamedExecContext(ctx, itemQuery, &o.Items[i]); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, companyID, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT * FROM orders WHERE company_id = $1 AND id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &o, query, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	itemQuery := `SELECT * FROM order_items WHERE order_id = $1 ORDER BY name, size`
	if err := r.DB.SelectContext(ctx, &o.Items, itemQuery, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var items []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CompanyID != "" {
		conditions = append(conditions, "company_id = :company_id")
		args["company_id"] = f.CompanyID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY scheduled_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, companyID, id string, status model.OrderStatus) error {
	result, err := r.DB.ExecContext(ctx, `
        UPDATE orders SET status = $1, updated_at = now()
        WHERE company_id = $2 AND id = $3`,
		status, companyID, id,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
