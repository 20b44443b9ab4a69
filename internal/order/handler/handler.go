package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kegflow/kegflow-stock-service/internal/auth"
	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/order"
	"github.com/kegflow/kegflow-stock-service/internal/order/dto"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

type createOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	Address       string             `json:"address"`
	ScheduledAt   time.Time          `json:"scheduled_at"`
	PaymentMethod string             `json:"payment_method"`
	Items         []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerName == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "customer name and items are required")
		return
	}

	input := &dto.CreateOrderInput{
		CompanyID:     auth.GetCompanyID(r.Context()),
		UserID:        auth.GetUserID(r.Context()),
		CustomerName:  req.CustomerName,
		Address:       req.Address,
		ScheduledAt:   req.ScheduledAt,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "item quantity must be positive")
			return
		}
		input.Items = append(input.Items, dto.OrderItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	o, err := h.uc.CreateOrder(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrCapacityExceeded):
			writeError(w, http.StatusConflict, "order number capacity exceeded")
		case errors.Is(err, order.ErrAllocationFailed):
			h.logger.Error("order number allocation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not allocate order number")
		default:
			h.logger.Error("order creation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.GetOrder(r.Context(), auth.GetCompanyID(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("get order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.OrderFilters{
		CompanyID: auth.GetCompanyID(r.Context()),
		Status:    r.URL.Query().Get("status"),
		Page:      queryInt(r, "page", 1),
		PageSize:  queryInt(r, "page_size", 50),
	}
	orders, count, err := h.uc.ListOrders(r.Context(), filters)
	if err != nil {
		h.logger.Error("list orders failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  count,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := model.OrderStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	err := h.uc.UpdateOrderStatus(r.Context(), auth.GetCompanyID(r.Context()), r.PathValue("id"), status)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("update order status failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	err := h.uc.CancelOrder(r.Context(), auth.GetCompanyID(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("cancel order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(model.OrderStatusCancelled)})
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
