package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/modstanding/internal/domain"
)

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		catalogErr  error
		withCatalog bool
		wantStatus  int
		wantBody    string
	}{
		{"Database Connected", nil, nil, false, http.StatusOK, `"status":"ok"`},
		{"Database And Catalog Ready", nil, nil, true, http.StatusOK, `"status":"ok"`},
		{"Database Connection Failed", assert.AnError, nil, true, http.StatusServiceUnavailable, `"message":"database connection failed"`},
		{"Database Timeout", context.DeadlineExceeded, nil, false, http.StatusServiceUnavailable, `"status":"unavailable"`},
		{"Catalog Unavailable", nil, domain.ErrCatalogUnavailable, true, http.StatusServiceUnavailable, `"message":"punishment type catalog unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := &MockDBPool{}
			mockDB.On("Ping", mock.Anything).Return(tt.pingErr)

			var probe CatalogProbe
			mockCatalog := &MockCatalogService{}
			if tt.withCatalog {
				probe = mockCatalog
				if tt.pingErr == nil {
					mockCatalog.On("Catalog", mock.Anything).Return(domain.Catalog{}, tt.catalogErr)
				}
			}

			w := httptest.NewRecorder()
			HandleReadyz(mockDB, probe).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			mockDB.AssertExpectations(t)
			mockCatalog.AssertExpectations(t)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion().ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"go_version"`)
}
