package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing left to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName, "error", err)
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors.
// These messages are derived from domain errors and intentionally do not
// expose internal details.
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Wager messages
	ErrMsgWagerTooSmallError  = "Wager is below the table minimum"
	ErrMsgWagerTooLargeError  = "Wager is above the table maximum"
	ErrMsgNotEnoughMoneyError = "Not enough money"

	// Round messages
	ErrMsgTooManyBallsError  = "Too many balls in flight. Wait for one to land."
	ErrMsgRoundNotFoundError = "Round not found"

	// Lifecycle messages
	ErrMsgShuttingDownError = "Server is shutting down. No new drops accepted."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Wager rejections are client mistakes (400), an unaffordable
// wager is a payment problem (402), and the in-flight cap is a rate
// limit (429).
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrWagerBelowMinimum):
		return http.StatusBadRequest, ErrMsgWagerTooSmallError
	case errors.Is(err, domain.ErrWagerAboveMaximum):
		return http.StatusBadRequest, ErrMsgWagerTooLargeError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrTooManyBallsInFlight):
		return http.StatusTooManyRequests, ErrMsgTooManyBallsError
	case errors.Is(err, domain.ErrRoundNotFound), errors.Is(err, domain.ErrUnknownBall):
		return http.StatusNotFound, ErrMsgRoundNotFoundError
	case errors.Is(err, domain.ErrShuttingDown):
		return http.StatusServiceUnavailable, ErrMsgShuttingDownError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
