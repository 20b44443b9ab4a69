package reconcile

import (
	"context"

	"github.com/kegflow/kegflow-stock-service/internal/model"
)

// MatchResult reports a successful scan: which line it counted toward, the
// new session count, and the unit's lifecycle stage after the advance.
type MatchResult struct {
	Line      LineKey          `json:"line"`
	Count     int              `json:"count"`
	Requested int              `json:"requested"`
	UnitID    string           `json:"unit_id"`
	NewStatus model.UnitStatus `json:"new_status"`
}

type UseCase interface {
	// Match resolves a scanned code against the order's line items. Each
	// call is a real increment; debouncing duplicate reads of the same
	// physical scan is the caller's responsibility.
	Match(ctx context.Context, companyID, scannedCode string, items []model.OrderItem, session *Session) (*MatchResult, error)
}
