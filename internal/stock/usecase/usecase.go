package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kegflow/kegflow-stock-service/config"
	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/product"
	"github.com/kegflow/kegflow-stock-service/internal/stock"
	"github.com/kegflow/kegflow-stock-service/internal/stock/dto"
	"github.com/kegflow/kegflow-stock-service/pkg/cache"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

var ErrCodeAlreadyIssued = errors.New("unit already has a code")

const companyScopeKey = "company"

type stockUseCase struct {
	repo     stock.Repository
	products product.Repository
	cache    *cache.RedisClient
	cfg      config.StockConfig
	logger   logger.ZapLogger
}

func NewStockUseCase(
	repo stock.Repository,
	products product.Repository,
	cache *cache.RedisClient,
	cfg config.StockConfig,
	log logger.ZapLogger,
) stock.UseCase {
	return &stockUseCase{
		repo:     repo,
		products: products,
		cache:    cache,
		cfg:      cfg,
		logger:   log,
	}
}

func (uc *stockUseCase) Intake(ctx context.Context, input *dto.IntakeInput) ([]model.StockUnit, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("intake quantity must be positive, got %d", input.Quantity)
	}

	now := time.Now()
	var createdBy *string
	if input.UserID != "" {
		createdBy = &input.UserID
	}

	units := make([]model.StockUnit, 0, input.Quantity)
	for i := 0; i < input.Quantity; i++ {
		units = append(units, model.StockUnit{
			ID:           uuid.New().String(),
			CompanyID:    input.CompanyID,
			ProductID:    input.ProductID,
			UnitPrice:    input.UnitPrice,
			VolumeLiters: input.VolumeLiters,
			IntakeDate:   input.IntakeDate,
			Status:       model.UnitStatusPending,
			Returnable:   input.Returnable,
			CreatedBy:    createdBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if uc.cfg.BatchStrategy == stock.StrategyTransactional {
		return uc.repo.CreateUnitsResolvingBatch(ctx, units)
	}

	// Best-effort: read-then-decide with no lock. Two concurrent intakes
	// for the same day may both pick the same fresh id and simply share
	// the batch.
	batchID, err := uc.ResolveBatch(ctx, input.CompanyID, dto.BatchKey{
		ProductID:    input.ProductID,
		UnitPrice:    input.UnitPrice,
		VolumeLiters: input.VolumeLiters,
		IntakeDate:   input.IntakeDate,
	})
	if err != nil {
		return nil, err
	}
	for i := range units {
		units[i].BatchID = batchID
	}
	if err := uc.repo.CreateUnits(ctx, units); err != nil {
		return nil, err
	}
	return units, nil
}

func (uc *stockUseCase) ResolveBatch(ctx context.Context, companyID string, key dto.BatchKey) (int, error) {
	existing, err := uc.repo.FindByIntakeDate(ctx, companyID, key.IntakeDate)
	if err != nil {
		return 0, err
	}
	return stock.ResolveBatchID(existing, key.ProductID, key.UnitPrice, key.VolumeLiters), nil
}

func (uc *stockUseCase) IssueCode(ctx context.Context, input *dto.IssueCodeInput) (*model.StockUnit, error) {
	unit, err := uc.repo.FindByID(ctx, input.CompanyID, input.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, stock.ErrUnitNotFound
	}
	if unit.Code != "" {
		return nil, fmt.Errorf("%w: %s", ErrCodeAlreadyIssued, unit.Code)
	}

	var code string
	if uc.cfg.CodeStrategy == stock.StrategyTransactional {
		code, err = uc.issueTransactional(ctx, input)
	} else {
		code, err = uc.issueBestEffort(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AssignCode(ctx, input.CompanyID, input.UnitID, code); err != nil {
		return nil, err
	}
	unit.Code = code
	return unit, nil
}

func (uc *stockUseCase) issueTransactional(ctx context.Context, input *dto.IssueCodeInput) (string, error) {
	scopeKey := companyScopeKey
	if input.PerOperator {
		scopeKey = "user:" + input.UserID
	}
	ordinal, err := uc.repo.NextCodeOrdinal(ctx, input.CompanyID, scopeKey)
	if err != nil {
		return "", err
	}
	return stock.FormatCode(ordinal)
}

// issueBestEffort reproduces the legacy scan-and-increment behavior. A redis
// lock narrows the window in which two operators could read the same maximum,
// but the operation is not transactional; issuance is a low-frequency,
// operator-driven action.
func (uc *stockUseCase) issueBestEffort(ctx context.Context, input *dto.IssueCodeInput) (string, error) {
	var issuedBy *string
	lockKey := fmt.Sprintf("lock:codes:%s:%s", input.CompanyID, companyScopeKey)
	if input.PerOperator {
		issuedBy = &input.UserID
		lockKey = fmt.Sprintf("lock:codes:%s:user:%s", input.CompanyID, input.UserID)
	}

	if uc.cache != nil {
		lockValue := uuid.New().String()
		acquired := false
		for i := 0; i < 3; i++ {
			ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
			if err != nil {
				uc.logger.Error("failed to acquire code lock", zap.Error(err))
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if !acquired {
			return "", errors.New("code issuance busy, please try again")
		}
		defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)
	}

	codes, err := uc.repo.ListCodes(ctx, input.CompanyID, issuedBy)
	if err != nil {
		return "", err
	}
	return stock.NextCode(codes)
}

func (uc *stockUseCase) ListUnits(ctx context.Context, filters *dto.StockFilters) ([]model.StockUnit, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *stockUseCase) DeleteUnit(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stock.ErrUnitNotFound
		}
		return err
	}
	return nil
}

func (uc *stockUseCase) Summary(ctx context.Context, companyID string) ([]stock.GroupedProduct, error) {
	units, _, err := uc.repo.FindAll(ctx, &dto.StockFilters{CompanyID: companyID})
	if err != nil {
		return nil, err
	}
	products, err := uc.products.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return stock.GroupByProductAndBatch(units, products), nil
}
