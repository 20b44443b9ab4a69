package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kegflow/kegflow-stock-service/internal/auth"
	"github.com/kegflow/kegflow-stock-service/internal/stock"
	"github.com/kegflow/kegflow-stock-service/internal/stock/dto"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

type StockHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewStockHandler(uc stock.UseCase, log logger.ZapLogger) *StockHandler {
	return &StockHandler{uc: uc, logger: log}
}

type intakeRequest struct {
	ProductID    string  `json:"product_id"`
	UnitPrice    float64 `json:"unit_price"`
	VolumeLiters int     `json:"volume_liters"`
	IntakeDate   string  `json:"intake_date"`
	Quantity     int     `json:"quantity"`
	Returnable   bool    `json:"returnable"`
}

func (h *StockHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" || req.IntakeDate == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "product, intake date and positive quantity are required")
		return
	}

	units, err := h.uc.Intake(r.Context(), &dto.IntakeInput{
		CompanyID:    auth.GetCompanyID(r.Context()),
		UserID:       auth.GetUserID(r.Context()),
		ProductID:    req.ProductID,
		UnitPrice:    req.UnitPrice,
		VolumeLiters: req.VolumeLiters,
		IntakeDate:   req.IntakeDate,
		Quantity:     req.Quantity,
		Returnable:   req.Returnable,
	})
	if err != nil {
		h.logger.Error("stock intake failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"batch_id": units[0].BatchID,
		"units":    units,
	})
}

func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.StockFilters{
		CompanyID:  auth.GetCompanyID(r.Context()),
		ProductID:  r.URL.Query().Get("product_id"),
		IntakeDate: r.URL.Query().Get("intake_date"),
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "page_size", 50),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filters.Status = &n
		}
	}

	units, count, err := h.uc.ListUnits(r.Context(), filters)
	if err != nil {
		h.logger.Error("list stock units failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"units": units,
		"total": count,
	})
}

type issueCodeRequest struct {
	PerOperator bool `json:"per_operator"`
}

func (h *StockHandler) IssueCode(w http.ResponseWriter, r *http.Request) {
	var req issueCodeRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	unit, err := h.uc.IssueCode(r.Context(), &dto.IssueCodeInput{
		CompanyID:   auth.GetCompanyID(r.Context()),
		UserID:      auth.GetUserID(r.Context()),
		UnitID:      r.PathValue("id"),
		PerOperator: req.PerOperator,
	})
	if err != nil {
		switch {
		case errors.Is(err, stock.ErrUnitNotFound):
			writeError(w, http.StatusNotFound, "stock unit not found")
		case errors.Is(err, stock.ErrCapacityExceeded):
			writeError(w, http.StatusConflict, "code capacity exceeded for this scope")
		default:
			h.logger.Error("issue code failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, unit)
}

func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.uc.DeleteUnit(r.Context(), auth.GetCompanyID(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, stock.ErrUnitNotFound) {
			writeError(w, http.StatusNotFound, "stock unit not found")
			return
		}
		h.logger.Error("delete unit failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StockHandler) Summary(w http.ResponseWriter, r *http.Request) {
	groups, err := h.uc.Summary(r.Context(), auth.GetCompanyID(r.Context()))
	if err != nil {
		h.logger.Error("stock summary failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
