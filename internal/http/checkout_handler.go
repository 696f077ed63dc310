package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sejalm1919/E-Commerce/internal/service"
)

type CheckoutHandler struct {
	svc         service.CheckoutService
	timeout     time.Duration
	maxBodySize int64
}

func NewCheckoutHandler(svc service.CheckoutService, timeout time.Duration, maxBodySize int64) *CheckoutHandler {
	return &CheckoutHandler{
		svc:         svc,
		timeout:     timeout,
		maxBodySize: maxBodySize,
	}
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.svc.PlaceOrder(ctx, req.toDomain())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/orders/"+itoa(order.ID))
	respondJSON(w, r, http.StatusCreated, convertOrder(order))
}
