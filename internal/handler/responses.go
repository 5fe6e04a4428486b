package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// headers are already sent, so failures can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
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

// respondServiceError logs a service failure and maps it to a client response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPunishmentNotFoundError = "Punishment not found"
	ErrMsgTypeNotFoundError       = "Punishment type not found"
	ErrMsgAlreadyPardonedError    = "Punishment is already pardoned"
	ErrMsgAlreadyStartedError     = "Punishment has already started"
	ErrMsgCatalogUnavailableError = "Punishment types are not loaded yet. Please try again later."
	ErrMsgReservedOrdinalError    = "Ordinals 0-5 are reserved for built-in types"
)

// clientErrors are rejected as bad requests; the wrapped detail is safe to show
var clientErrors = []error{
	domain.ErrInvalidModification,
	domain.ErrCapabilityNotAllowed,
	domain.ErrInvalidPunishmentType,
	domain.ErrInvalidThresholds,
	domain.ErrInvalidSeverity,
	domain.ErrInvalidInput,
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// that staff can act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPunishmentNotFound):
		return http.StatusNotFound, ErrMsgPunishmentNotFoundError
	case errors.Is(err, domain.ErrPunishmentTypeNotFound):
		return http.StatusNotFound, ErrMsgTypeNotFoundError
	case errors.Is(err, domain.ErrAlreadyPardoned):
		return http.StatusConflict, ErrMsgAlreadyPardonedError
	case errors.Is(err, domain.ErrAlreadyStarted):
		return http.StatusConflict, ErrMsgAlreadyStartedError
	case errors.Is(err, domain.ErrReservedOrdinal):
		return http.StatusBadRequest, ErrMsgReservedOrdinalError
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, ErrMsgCatalogUnavailableError
	case errors.Is(err, domain.ErrDatabaseError), errors.Is(err, domain.ErrConnectionTimeout):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, clientMessage(err)
		}
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// clientMessage trims service context so only the domain error and its detail remain
func clientMessage(err error) string {
	msg := err.Error()
	for _, target := range clientErrors {
		if idx := strings.Index(msg, target.Error()); idx >= 0 {
			return msg[idx:]
		}
	}
	return msg
}

