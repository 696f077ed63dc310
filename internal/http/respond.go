package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sejalm1919/E-Commerce/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// respondJSON logs encode failures through the request scoped logger set up
// by RequestLogger.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func respondErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message, details string) {
	respondJSON(w, r, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// handleServiceError maps service sentinels to HTTP statuses. Client errors
// carry the underlying message; server errors do not leak internals.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		respondError(w, r, http.StatusBadRequest, "invalid_request", "checkout request is required")
	case errors.Is(err, service.ErrInvalidLineQuantity):
		respondErrorDetails(w, r, http.StatusBadRequest, "invalid_quantity", "every line needs a quantity of at least 1", err.Error())
	case errors.Is(err, service.ErrInvalidPaymentInput):
		respondErrorDetails(w, r, http.StatusBadRequest, "invalid_payment", "payment details are invalid", err.Error())
	case errors.Is(err, service.ErrProductNotFound):
		respondErrorDetails(w, r, http.StatusUnprocessableEntity, "product_not_found", "a requested product does not exist", err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(w, r, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, service.ErrProductLookupFailed):
		respondError(w, r, http.StatusBadGateway, "catalog_unavailable", "product catalog is unavailable")
	case service.IsRetryable(err):
		w.Header().Set("Retry-After", "1")
		respondError(w, r, http.StatusServiceUnavailable, "persistence_timeout", "order could not be stored in time, retry the request")
	case errors.Is(err, service.ErrPersistenceFailure):
		respondError(w, r, http.StatusInternalServerError, "persistence_failure", "order could not be stored")
	default:
		respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
