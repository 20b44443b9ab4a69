package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/kegflow/kegflow-stock-service/internal/auth"
	"github.com/kegflow/kegflow-stock-service/internal/order"
	"github.com/kegflow/kegflow-stock-service/internal/reconcile"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

// ReconcileHandler drives one scanning workflow per order. Sessions are
// process-local: each server instance (like each operator device in the
// field) tracks its own progress.
type ReconcileHandler struct {
	uc     reconcile.UseCase
	orders order.UseCase
	logger logger.ZapLogger

	mu       sync.Mutex
	sessions map[string]*reconcile.Session // companyID + ":" + orderID
}

func NewReconcileHandler(uc reconcile.UseCase, orders order.UseCase, log logger.ZapLogger) *ReconcileHandler {
	return &ReconcileHandler{
		uc:       uc,
		orders:   orders,
		logger:   log,
		sessions: make(map[string]*reconcile.Session),
	}
}

func (h *ReconcileHandler) session(companyID, orderID string) *reconcile.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := companyID + ":" + orderID
	s, ok := h.sessions[key]
	if !ok {
		s = reconcile.NewSession()
		h.sessions[key] = s
	}
	return s
}

type scanRequest struct {
	Code string `json:"code"`
}

func (h *ReconcileHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "scanned code is required")
		return
	}

	companyID := auth.GetCompanyID(r.Context())
	orderID := r.PathValue("id")

	o, err := h.orders.GetOrder(r.Context(), companyID, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("load order for scan failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result, err := h.uc.Match(r.Context(), companyID, req.Code, o.Items, h.session(companyID, orderID))
	if err != nil {
		switch {
		case errors.Is(err, reconcile.ErrCodeNotFound):
			writeError(w, http.StatusNotFound, "invalid code")
		case errors.Is(err, reconcile.ErrNotOnOrder):
			writeError(w, http.StatusUnprocessableEntity, "not part of this order")
		case errors.Is(err, reconcile.ErrAlreadySatisfied):
			writeError(w, http.StatusConflict, "already checked")
		default:
			h.logger.Error("scan match failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ReconcileHandler) Progress(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	progress := h.session(companyID, r.PathValue("id")).Progress()

	type lineProgress struct {
		Name  string `json:"name"`
		Size  string `json:"size"`
		Count int    `json:"count"`
	}
	lines := make([]lineProgress, 0, len(progress))
	for k, v := range progress {
		lines = append(lines, lineProgress{Name: k.Name, Size: k.Size, Count: v})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lines": lines})
}

// Reset discards the scan session, e.g. when an operator restarts
// reconciliation from scratch. Lifecycle advances already persisted stay.
func (h *ReconcileHandler) Reset(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	key := companyID + ":" + r.PathValue("id")

	h.mu.Lock()
	delete(h.sessions, key)
	h.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
