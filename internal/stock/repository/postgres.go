package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/stock"
	"github.com/kegflow/kegflow-stock-service/internal/stock/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertUnitQuery = `
    INSERT INTO stock_units (
        id, company_id, product_id, batch_id, unit_price, volume_liters,
        intake_date, code, status, returnable, created_by, created_at, updated_at
    )
    VALUES (
        :id, :company_id, :product_id, :batch_id, :unit_price, :volume_liters,
        :intake_date, :code, :status, :returnable, :created_by, :created_at, :updated_at
    )
`

func (r *PGRepository) FindByIntakeDate(ctx context.Context, companyID, intakeDate string) ([]model.StockUnit, error) {
	var units []model.StockUnit
	query := `
        SELECT * FROM stock_units
        WHERE company_id = $1 AND intake_date = $2
        ORDER BY created_at
    `
	err := r.DB.SelectContext(ctx, &units, query, companyID, intakeDate)
	return units, err
}

func (r *PGRepository) CreateUnits(ctx context.Context, units []model.StockUnit) error {
	if len(units) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range units {
		if _, err := tx.NamedExecContext(ctx, insertUnitQuery, &units[i]); err != nil {
			return fmt.Errorf("insert stock unit: %w", err)
		}
	}
	return tx.Commit()
}

// CreateUnitsResolvingBatch serializes intakes for one (company, date)
// through an advisory transaction lock, so concurrent intakes cannot both
// open the same "new" batch id. The lock covers the empty-day case, which a
// plain FOR UPDATE on existing rows would not.
func (r *PGRepository) CreateUnitsResolvingBatch(ctx context.Context, units []model.StockUnit) ([]model.StockUnit, error) {
	if len(units) == 0 {
		return units, nil
	}
	first := units[0]

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockKey := first.CompanyID + ":" + first.IntakeDate
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return nil, fmt.Errorf("acquire intake lock: %w", err)
	}

	var existing []model.StockUnit
	query := `
        SELECT * FROM stock_units
        WHERE company_id = $1 AND intake_date = $2
        ORDER BY created_at
    `
	if err := tx.SelectContext(ctx, &existing, query, first.CompanyID, first.IntakeDate); err != nil {
		return nil, err
	}

	batchID := stock.ResolveBatchID(existing, first.ProductID, first.UnitPrice, first.VolumeLiters)
	for i := range units {
		units[i].BatchID = batchID
		if _, err := tx.NamedExecContext(ctx, insertUnitQuery, &units[i]); err != nil {
			return nil, fmt.Errorf("insert stock unit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *PGRepository) FindByID(ctx context.Context, companyID, id string) (*model.StockUnit, error) {
	var u model.StockUnit
	query := `SELECT * FROM stock_units WHERE company_id = $1 AND id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &u, query, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByCode scopes the lookup to the company; codes repeat across tenants,
// so a code from another company must come back as not found.
func (r *PGRepository) FindByCode(ctx context.Context, companyID, code string) (*model.StockUnit, error) {
	var u model.StockUnit
	query := `SELECT * FROM stock_units WHERE company_id = $1 AND code = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &u, query, companyID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockUnit, int, error) {
	var items []model.StockUnit
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CompanyID != "" {
		conditions = append(conditions, "company_id = :company_id")
		args["company_id"] = f.CompanyID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.IntakeDate != "" {
		conditions = append(conditions, "intake_date = :intake_date")
		args["intake_date"] = f.IntakeDate
	}
	if f.Status != nil {
		conditions = append(conditions, "status = :status")
		args["status"] = *f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_units" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_units" + whereClause + " ORDER BY intake_date DESC, batch_id, created_at"
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

func (r *PGRepository) ListCodes(ctx context.Context, companyID string, issuedBy *string) ([]string, error) {
	var codes []string
	query := `SELECT code FROM stock_units WHERE company_id = $1 AND code <> ''`
	args := []interface{}{companyID}

	if issuedBy != nil && *issuedBy != "" {
		query += ` AND created_by = $2`
		args = append(args, *issuedBy)
	}

	err := r.DB.SelectContext(ctx, &codes, query, args...)
	return codes, err
}

// NextCodeOrdinal uses the same single-statement counter bump as order
// numbers, one row per (company, scope).
func (r *PGRepository) NextCodeOrdinal(ctx context.Context, companyID, scopeKey string) (int, error) {
	var next int
	query := `
        INSERT INTO code_counters (company_id, scope_key, last_code_ordinal)
        VALUES ($1, $2, 1)
        ON CONFLICT (company_id, scope_key)
        DO UPDATE SET last_code_ordinal = code_counters.last_code_ordinal + 1
        RETURNING last_code_ordinal
    `
	if err := r.DB.GetContext(ctx, &next, query, companyID, scopeKey); err != nil {
		return 0, fmt.Errorf("bump code counter: %w", err)
	}
	return next, nil
}

func (r *PGRepository) AssignCode(ctx context.Context, companyID, unitID, code string) error {
	result, err := r.DB.ExecContext(ctx, `
        UPDATE stock_units SET code = $1, updated_at = now()
        WHERE company_id = $2 AND id = $3`,
		code, companyID, unitID,
	)
	if err != nil {
		return fmt.Errorf("assign code: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, companyID, unitID string, status model.UnitStatus) error {
	result, err := r.DB.ExecContext(ctx, `
        UPDATE stock_units SET status = $1, updated_at = now()
        WHERE company_id = $2 AND id = $3`,
		status, companyID, unitID,
	)
	if err != nil {
		return fmt.Errorf("update unit status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, companyID, unitID string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM stock_units WHERE company_id = $1 AND id = $2`,
		companyID, unitID,
	)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
