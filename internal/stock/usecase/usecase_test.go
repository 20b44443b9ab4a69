package usecase

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/kegflow/kegflow-stock-service/config"
	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/stock"
	"github.com/kegflow/kegflow-stock-service/internal/stock/dto"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
)

type mockStockRepo struct {
	mu           sync.Mutex
	units        map[string]*model.StockUnit
	codeCounters map[string]int

	lockedCreateCalls int
}

func newMockStockRepo() *mockStockRepo {
	return &mockStockRepo{
		units:        make(map[string]*model.StockUnit),
		codeCounters: make(map[string]int),
	}
}

func (m *mockStockRepo) add(u model.StockUnit) {
	m.units[u.ID] = &u
}

func (m *mockStockRepo) FindByIntakeDate(ctx context.Context, companyID, intakeDate string) ([]model.StockUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.StockUnit
	for _, u := range m.units {
		if u.CompanyID == companyID && u.IntakeDate == intakeDate {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockStockRepo) CreateUnits(ctx context.Context, units []model.StockUnit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range units {
		m.add(u)
	}
	return nil
}

func (m *mockStockRepo) CreateUnitsResolvingBatch(ctx context.Context, units []model.StockUnit) ([]model.StockUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockedCreateCalls++

	first := units[0]
	var existing []model.StockUnit
	for _, u := range m.units {
		if u.CompanyID == first.CompanyID && u.IntakeDate == first.IntakeDate {
			existing = append(existing, *u)
		}
	}
	batchID := stock.ResolveBatchID(existing, first.ProductID, first.UnitPrice, first.VolumeLiters)
	for i := range units {
		units[i].BatchID = batchID
		m.add(units[i])
	}
	return units, nil
}

func (m *mockStockRepo) FindByID(ctx context.Context, companyID, id string) (*model.StockUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockStockRepo) FindByCode(ctx context.Context, companyID, code string) (*model.StockUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.units {
		if u.CompanyID == companyID && u.Code == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStockRepo) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockUnit, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.StockUnit
	for _, u := range m.units {
		if u.CompanyID == f.CompanyID {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (m *mockStockRepo) ListCodes(ctx context.Context, companyID string, issuedBy *string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var codes []string
	for _, u := range m.units {
		if u.CompanyID != companyID || u.Code == "" {
			continue
		}
		if issuedBy != nil && (u.CreatedBy == nil || *u.CreatedBy != *issuedBy) {
			continue
		}
		codes = append(codes, u.Code)
	}
	return codes, nil
}

func (m *mockStockRepo) NextCodeOrdinal(ctx context.Context, companyID, scopeKey string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := companyID + ":" + scopeKey
	m.codeCounters[key]++
	return m.codeCounters[key], nil
}

func (m *mockStockRepo) AssignCode(ctx context.Context, companyID, unitID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[unitID]
	if !ok || u.CompanyID != companyID {
		return sql.ErrNoRows
	}
	u.Code = code
	return nil
}

func (m *mockStockRepo) UpdateStatus(ctx context.Context, companyID, unitID string, status model.UnitStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[unitID]
	if !ok || u.CompanyID != companyID {
		return sql.ErrNoRows
	}
	u.Status = status
	return nil
}

func (m *mockStockRepo) Delete(ctx context.Context, companyID, unitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[unitID]
	if !ok || u.CompanyID != companyID {
		return sql.ErrNoRows
	}
	delete(m.units, unitID)
	return nil
}

type mockProductRepo struct {
	products map[string]*model.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*model.Product)}
}

func (m *mockProductRepo) Create(ctx context.Context, p *model.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) FindByID(ctx context.Context, companyID, id string) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}

func (m *mockProductRepo) FindAll(ctx context.Context, companyID string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range m.products {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func newUC(repo *mockStockRepo, cfg config.StockConfig) stock.UseCase {
	return NewStockUseCase(repo, newMockProductRepo(), nil, cfg, logger.NewNop())
}

func bestEffort() config.StockConfig {
	return config.StockConfig{BatchStrategy: stock.StrategyBestEffort, CodeStrategy: stock.StrategyBestEffort}
}

func transactional() config.StockConfig {
	return config.StockConfig{BatchStrategy: stock.StrategyTransactional, CodeStrategy: stock.StrategyTransactional}
}

func TestIntake_QuantityFansOut(t *testing.T) {
	repo := newMockStockRepo()
	uc := newUC(repo, bestEffort())

	units, err := uc.Intake(context.Background(), &dto.IntakeInput{
		CompanyID:    "T1",
		UserID:       "u1",
		ProductID:    "keg-a",
		UnitPrice:    10.0,
		VolumeLiters: 50,
		IntakeDate:   "2024-01-01",
		Quantity:     3,
	})
	if err != nil {
		t.Fatalf("intake failed: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	for _, u := range units {
		if u.BatchID != 1 {
			t.Errorf("expected batch 1, got %d", u.BatchID)
		}
		if u.Status != model.UnitStatusPending {
			t.Errorf("expected Pending, got %d", u.Status)
		}
		if u.Code != "" {
			t.Errorf("expected empty code at intake, got %q", u.Code)
		}
	}
	if len(repo.units) != 3 {
		t.Errorf("expected 3 persisted units, got %d", len(repo.units))
	}
}

func TestIntake_JoinsMatchingBatch(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{
		ID: "existing", CompanyID: "T1", ProductID: "keg-a",
		UnitPrice: 10.0, VolumeLiters: 50, IntakeDate: "2024-01-01", BatchID: 1,
	})
	uc := newUC(repo, bestEffort())

	units, err := uc.Intake(context.Background(), &dto.IntakeInput{
		CompanyID: "T1", ProductID: "keg-a", UnitPrice: 10.0,
		VolumeLiters: 50, IntakeDate: "2024-01-01", Quantity: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if units[0].BatchID != 1 {
		t.Errorf("expected to join batch 1, got %d", units[0].BatchID)
	}

	// A different product on the same day opens batch 2.
	units, err = uc.Intake(context.Background(), &dto.IntakeInput{
		CompanyID: "T1", ProductID: "keg-b", UnitPrice: 10.0,
		VolumeLiters: 50, IntakeDate: "2024-01-01", Quantity: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if units[0].BatchID != 2 {
		t.Errorf("expected new batch 2, got %d", units[0].BatchID)
	}
}

func TestIntake_TransactionalUsesLockedPath(t *testing.T) {
	repo := newMockStockRepo()
	uc := newUC(repo, transactional())

	units, err := uc.Intake(context.Background(), &dto.IntakeInput{
		CompanyID: "T1", ProductID: "keg-a", UnitPrice: 10.0,
		VolumeLiters: 50, IntakeDate: "2024-01-01", Quantity: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if repo.lockedCreateCalls != 1 {
		t.Errorf("expected locked create path, got %d calls", repo.lockedCreateCalls)
	}
	if units[0].BatchID != 1 || units[1].BatchID != 1 {
		t.Errorf("expected both units in batch 1, got %d and %d", units[0].BatchID, units[1].BatchID)
	}
}

func TestIntake_RejectsNonPositiveQuantity(t *testing.T) {
	uc := newUC(newMockStockRepo(), bestEffort())
	if _, err := uc.Intake(context.Background(), &dto.IntakeInput{
		CompanyID: "T1", ProductID: "keg-a", IntakeDate: "2024-01-01", Quantity: 0,
	}); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestResolveBatch_ReadOnly(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{
		ID: "u1", CompanyID: "T1", ProductID: "keg-a",
		UnitPrice: 10.0, VolumeLiters: 50, IntakeDate: "2024-01-01", BatchID: 3,
	})
	uc := newUC(repo, bestEffort())

	key := dto.BatchKey{ProductID: "keg-a", UnitPrice: 10.0, VolumeLiters: 50, IntakeDate: "2024-01-01"}
	got, err := uc.ResolveBatch(context.Background(), "T1", key)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	// Nothing written.
	if len(repo.units) != 1 {
		t.Errorf("resolve must not create units, have %d", len(repo.units))
	}
}

func TestIssueCode_Transactional(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T1"})
	repo.add(model.StockUnit{ID: "u2", CompanyID: "T1"})
	uc := newUC(repo, transactional())

	unit, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UserID: "admin", UnitID: "u1",
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if unit.Code != "I001" {
		t.Errorf("expected I001, got %s", unit.Code)
	}

	unit, err = uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UserID: "admin", UnitID: "u2",
	})
	if err != nil {
		t.Fatal(err)
	}
	if unit.Code != "I002" {
		t.Errorf("expected I002, got %s", unit.Code)
	}
	if repo.units["u2"].Code != "I002" {
		t.Errorf("expected code persisted, got %q", repo.units["u2"].Code)
	}
}

func TestIssueCode_PerOperatorScope(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T1"})
	repo.add(model.StockUnit{ID: "u2", CompanyID: "T1"})
	uc := newUC(repo, transactional())

	first, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UserID: "alice", UnitID: "u1", PerOperator: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UserID: "bob", UnitID: "u2", PerOperator: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Separate operators run separate sequences.
	if first.Code != "I001" || second.Code != "I001" {
		t.Errorf("expected I001 for both operators, got %s and %s", first.Code, second.Code)
	}
}

func TestIssueCode_BestEffortScansExisting(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T1", Code: "I004"})
	repo.add(model.StockUnit{ID: "u2", CompanyID: "T1", Code: "LEGACY-1"})
	repo.add(model.StockUnit{ID: "u3", CompanyID: "T1"})
	uc := newUC(repo, bestEffort())

	unit, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UserID: "admin", UnitID: "u3",
	})
	if err != nil {
		t.Fatal(err)
	}
	if unit.Code != "I005" {
		t.Errorf("expected I005, got %s", unit.Code)
	}
}

func TestIssueCode_UnitNotFound(t *testing.T) {
	uc := newUC(newMockStockRepo(), transactional())
	_, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UnitID: "missing",
	})
	if !errors.Is(err, stock.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestIssueCode_WrongTenantIsNotFound(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T2"})
	uc := newUC(repo, transactional())

	_, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UnitID: "u1",
	})
	if !errors.Is(err, stock.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound across tenants, got %v", err)
	}
}

func TestIssueCode_AlreadyIssued(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T1", Code: "I001"})
	uc := newUC(repo, transactional())

	_, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UnitID: "u1",
	})
	if !errors.Is(err, ErrCodeAlreadyIssued) {
		t.Errorf("expected ErrCodeAlreadyIssued, got %v", err)
	}
}

func TestIssueCode_CapacityExceeded(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T1"})
	repo.codeCounters["T1:company"] = 999
	uc := newUC(repo, transactional())

	_, err := uc.IssueCode(context.Background(), &dto.IssueCodeInput{
		CompanyID: "T1", UnitID: "u1",
	})
	if !errors.Is(err, stock.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestDeleteUnit(t *testing.T) {
	repo := newMockStockRepo()
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T1"})
	uc := newUC(repo, bestEffort())

	if err := uc.DeleteUnit(context.Background(), "T1", "u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := uc.DeleteUnit(context.Background(), "T1", "u1"); !errors.Is(err, stock.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound on second delete, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	repo := newMockStockRepo()
	products := newMockProductRepo()
	products.products["keg-a"] = &model.Product{
		BaseModel: model.BaseModel{ID: "keg-a"},
		CompanyID: "T1",
		Name:      "Pilsner Keg",
	}
	repo.add(model.StockUnit{ID: "u1", CompanyID: "T1", ProductID: "keg-a", IntakeDate: "2024-01-01", UnitPrice: 10.0})
	repo.add(model.StockUnit{ID: "u2", CompanyID: "T1", ProductID: "keg-a", IntakeDate: "2024-01-01", UnitPrice: 14.0})

	uc := NewStockUseCase(repo, products, nil, bestEffort(), logger.NewNop())

	groups, err := uc.Summary(context.Background(), "T1")
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].TotalQuantity != 2 || groups[0].AveragePrice != 12.0 {
		t.Errorf("unexpected rollup: %+v", groups[0])
	}
	if groups[0].Name != "Pilsner Keg" {
		t.Errorf("expected product name carried through, got %q", groups[0].Name)
	}
}
