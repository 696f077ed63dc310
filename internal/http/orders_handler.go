package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sejalm1919/E-Commerce/internal/service"
)

type OrdersHandler struct {
	svc     service.CheckoutService
	timeout time.Duration
}

func NewOrdersHandler(svc service.CheckoutService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		svc:     svc,
		timeout: timeout,
	}
}

// GET /api/v1/orders?limit=N
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	orders, err := h.svc.ListOrders(ctx, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, convertOrder(o))
	}

	respondJSON(w, r, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	raw := chi.URLParam(r, "order_id")
	if raw == "" {
		respondError(w, r, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orderID < 1 {
		respondError(w, r, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	order, err := h.svc.GetOrder(ctx, orderID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, convertOrder(order))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
