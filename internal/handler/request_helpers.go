package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/modstanding/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req ApplyPunishmentRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpApplyPunishment); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetPathParam retrieves a required chi URL parameter.
// If ok is false, the HTTP response has already been written.
func GetPathParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if value == "" {
		logger.FromContext(r.Context()).Warn("Missing path parameter", "param", name)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, name))
		return "", false
	}
	return value, true
}

// GetOrdinalParam parses the punishment type ordinal from the URL
func GetOrdinalParam(r *http.Request, w http.ResponseWriter) (int, bool) {
	raw, ok := GetPathParam(r, w, ParamOrdinal)
	if !ok {
		return 0, false
	}
	ordinal, err := strconv.Atoi(raw)
	if err != nil || ordinal < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidOrdinal)
		return 0, false
	}
	return ordinal, true
}

// GetOptionalQueryParam retrieves an optional query parameter, falling back to defaultValue
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// handleAction decodes and validates a request body, runs action and responds with
// status and the factory's payload. Service errors are mapped by respondServiceError.
func handleAction[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	status int,
	action func(context.Context, REQ) (RES, error),
	responseFactory func(RES) interface{},
) {
	var req REQ
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	res, err := action(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	respondJSON(w, status, responseFactory(res))
}
