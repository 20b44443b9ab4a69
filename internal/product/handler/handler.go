package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kegflow/kegflow-stock-service/internal/auth"
	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/product"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

type createProductRequest struct {
	Name       string  `json:"name"`
	Brand      *string `json:"brand"`
	Category   *string `json:"category"`
	Size       *string `json:"size"`
	Unit       *string `json:"unit"`
	BasePrice  float64 `json:"base_price"`
	Returnable bool    `json:"returnable"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "product name is required")
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &model.Product{
		CompanyID:  auth.GetCompanyID(r.Context()),
		Name:       req.Name,
		Brand:      req.Brand,
		Category:   req.Category,
		Size:       req.Size,
		Unit:       req.Unit,
		BasePrice:  req.BasePrice,
		Returnable: req.Returnable,
	})
	if err != nil {
		h.logger.Error("create product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), auth.GetCompanyID(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("get product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.ListProducts(r.Context(), auth.GetCompanyID(r.Context()))
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
