package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/modstanding/internal/domain"
)

func TestHandleGetStanding(t *testing.T) {
	t.Run("Computed", func(t *testing.T) {
		svc := &MockStandingService{}
		svc.On("GetStanding", mock.Anything, "player-1").Return(domain.StatusAggregate{
			SocialStatus:   domain.StatusMedium,
			GameplayStatus: domain.StatusLow,
			SocialPoints:   5,
		}, nil)

		w := httptest.NewRecorder()
		NewStandingHandler(svc).HandleGetStanding(w,
			newRequest(http.MethodGet, "/", "", map[string]string{ParamPlayerID: "player-1"}))

		require.Equal(t, http.StatusOK, w.Code)
		var resp StandingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.StatusMedium, resp.Standing.SocialStatus)
		assert.Equal(t, 5, resp.Standing.SocialPoints)
	})

	t.Run("Pending Is Still OK", func(t *testing.T) {
		svc := &MockStandingService{}
		svc.On("GetStanding", mock.Anything, "player-1").Return(domain.StatusAggregate{
			SocialStatus:   domain.StatusLow,
			GameplayStatus: domain.StatusLow,
			Pending:        true,
		}, nil)

		w := httptest.NewRecorder()
		NewStandingHandler(svc).HandleGetStanding(w,
			newRequest(http.MethodGet, "/", "", map[string]string{ParamPlayerID: "player-1"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"pending":true`)
	})

	t.Run("Repository Failure", func(t *testing.T) {
		svc := &MockStandingService{}
		svc.On("GetStanding", mock.Anything, "player-1").
			Return(domain.StatusAggregate{}, fmt.Errorf("list punishments: %w", domain.ErrDatabaseError))

		w := httptest.NewRecorder()
		NewStandingHandler(svc).HandleGetStanding(w,
			newRequest(http.MethodGet, "/", "", map[string]string{ParamPlayerID: "player-1"}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleGetOffenseTier(t *testing.T) {
	tests := []struct {
		name           string
		category       string
		setupMock      func(*MockStandingService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "Habitual Gameplay",
			category: "gameplay",
			setupMock: func(m *MockStandingService) {
				m.On("OffenseTierFor", mock.Anything, "player-1", domain.CategoryGameplay).
					Return(domain.OffenseHabitual, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"offense_tier":"habitual"`,
		},
		{
			name:           "Administrative Rejected",
			category:       "administrative",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidCategory,
		},
		{
			name:           "Missing Category",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "Catalog Pending",
			category: "social",
			setupMock: func(m *MockStandingService) {
				m.On("OffenseTierFor", mock.Anything, "player-1", domain.CategorySocial).
					Return(domain.OffenseTier(""), domain.ErrCatalogUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockStandingService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			target := "/api/v1/players/player-1/offense-tier"
			if tt.category != "" {
				target += "?category=" + tt.category
			}

			w := httptest.NewRecorder()
			NewStandingHandler(svc).HandleGetOffenseTier(w,
				newRequest(http.MethodGet, target, "", map[string]string{ParamPlayerID: "player-1"}))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestCatalogHandlers(t *testing.T) {
	chatAbuse := domain.PunishmentType{
		Ordinal:  6,
		Name:     "Chat Abuse",
		Category: domain.CategorySocial,
		Points:   map[domain.Severity]int{domain.SeverityLow: 1, domain.SeverityRegular: 2, domain.SeveritySevere: 4},
	}

	t.Run("List", func(t *testing.T) {
		svc := &MockCatalogService{}
		svc.On("List", mock.Anything).Return([]domain.PunishmentType{chatAbuse}, nil)

		w := httptest.NewRecorder()
		NewCatalogHandler(svc).HandleListTypes(w, newRequest(http.MethodGet, "/", "", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp PunishmentTypeListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Types, 1)
		assert.Equal(t, "Chat Abuse", resp.Types[0].Name)
	})

	t.Run("Get Unknown", func(t *testing.T) {
		svc := &MockCatalogService{}
		svc.On("Get", mock.Anything, 42).Return(nil, domain.ErrPunishmentTypeNotFound)

		w := httptest.NewRecorder()
		NewCatalogHandler(svc).HandleGetType(w,
			newRequest(http.MethodGet, "/", "", map[string]string{ParamOrdinal: "42"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Get Bad Ordinal", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewCatalogHandler(&MockCatalogService{}).HandleGetType(w,
			newRequest(http.MethodGet, "/", "", map[string]string{ParamOrdinal: "six"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidOrdinal)
	})

	t.Run("Upsert Inherits Path Ordinal", func(t *testing.T) {
		svc := &MockCatalogService{}
		svc.On("Upsert", mock.Anything, mock.MatchedBy(func(pt domain.PunishmentType) bool {
			return pt.Ordinal == 6 && pt.Name == "Chat Abuse"
		})).Return(&chatAbuse, nil)

		w := httptest.NewRecorder()
		NewCatalogHandler(svc).HandleUpsertType(w, newRequest(http.MethodPut, "/",
			`{"name":"Chat Abuse","category":"social","points":{"low":1,"regular":2,"severe":4}}`,
			map[string]string{ParamOrdinal: "6"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgTypeSaved)
		svc.AssertExpectations(t)
	})

	t.Run("Upsert Ordinal Mismatch", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewCatalogHandler(&MockCatalogService{}).HandleUpsertType(w, newRequest(http.MethodPut, "/",
			`{"ordinal":7,"name":"Griefing","category":"gameplay"}`, map[string]string{ParamOrdinal: "6"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgOrdinalMismatch)
	})

	t.Run("Upsert Reserved", func(t *testing.T) {
		svc := &MockCatalogService{}
		svc.On("Upsert", mock.Anything, mock.Anything).Return(nil, domain.ErrReservedOrdinal)

		w := httptest.NewRecorder()
		NewCatalogHandler(svc).HandleUpsertType(w, newRequest(http.MethodPut, "/",
			`{"ordinal":3,"name":"Ban","category":"administrative"}`, map[string]string{ParamOrdinal: "3"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgReservedOrdinalError)
	})
}

func TestSettingsHandlers(t *testing.T) {
	stored := domain.StatusThresholds{
		Social:   domain.TierThresholds{Medium: 5, Habitual: 10},
		Gameplay: domain.TierThresholds{Medium: 3, Habitual: 8},
	}

	t.Run("Get", func(t *testing.T) {
		svc := &MockSettingsService{}
		svc.On("GetThresholds", mock.Anything).Return(stored, nil)

		w := httptest.NewRecorder()
		NewSettingsHandler(svc).HandleGetThresholds(w, newRequest(http.MethodGet, "/", "", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.StatusThresholds
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, stored, got)
	})

	t.Run("Update", func(t *testing.T) {
		svc := &MockSettingsService{}
		svc.On("UpdateThresholds", mock.Anything, stored, "admin").Return(stored, nil)

		w := httptest.NewRecorder()
		NewSettingsHandler(svc).HandleUpdateThresholds(w, newRequest(http.MethodPut, "/",
			`{"social":{"medium":5,"habitual":10},"gameplay":{"medium":3,"habitual":8},"updated_by":"admin"}`, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgThresholdsUpdated)
		svc.AssertExpectations(t)
	})

	t.Run("Negative Rejected By Validation", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewSettingsHandler(&MockSettingsService{}).HandleUpdateThresholds(w, newRequest(http.MethodPut, "/",
			`{"social":{"medium":-1,"habitual":10},"gameplay":{"medium":3,"habitual":8},"updated_by":"admin"}`, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Order Rejected By Service", func(t *testing.T) {
		svc := &MockSettingsService{}
		svc.On("UpdateThresholds", mock.Anything, mock.Anything, "admin").
			Return(domain.StatusThresholds{}, fmt.Errorf("%w: habitual below medium", domain.ErrInvalidThresholds))

		w := httptest.NewRecorder()
		NewSettingsHandler(svc).HandleUpdateThresholds(w, newRequest(http.MethodPut, "/",
			`{"social":{"medium":10,"habitual":5},"gameplay":{"medium":3,"habitual":8},"updated_by":"admin"}`, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrMsgInvalidThresholds)
	})
}
