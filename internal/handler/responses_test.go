package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/modstanding/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil error", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"punishment not found", fmt.Errorf("get punishment p1: %w", domain.ErrPunishmentNotFound), http.StatusNotFound, ErrMsgPunishmentNotFoundError},
		{"type not found", domain.ErrPunishmentTypeNotFound, http.StatusNotFound, ErrMsgTypeNotFoundError},
		{"already pardoned", fmt.Errorf("%w: p1", domain.ErrAlreadyPardoned), http.StatusConflict, ErrMsgAlreadyPardonedError},
		{"already started", fmt.Errorf("%w: p1", domain.ErrAlreadyStarted), http.StatusConflict, ErrMsgAlreadyStartedError},
		{"reserved ordinal", domain.ErrReservedOrdinal, http.StatusBadRequest, ErrMsgReservedOrdinalError},
		{"catalog unavailable", fmt.Errorf("load catalog: %w", domain.ErrCatalogUnavailable), http.StatusServiceUnavailable, ErrMsgCatalogUnavailableError},
		{"database error", domain.ErrDatabaseError, http.StatusInternalServerError, ErrMsgGenericServerError},
		{
			"invalid input keeps detail",
			fmt.Errorf("apply punishment p1: %w", fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)),
			http.StatusBadRequest, "invalid input: reason is required",
		},
		{
			"capability keeps detail",
			fmt.Errorf("%w: ALT_BLOCK_ON", domain.ErrCapabilityNotAllowed),
			http.StatusBadRequest, domain.ErrMsgCapabilityNotAllowed + ": ALT_BLOCK_ON",
		},
		{"invalid thresholds", domain.ErrInvalidThresholds, http.StatusBadRequest, domain.ErrMsgInvalidThresholds},
		{"unknown error hidden", errors.New("pq: relation does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
