package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/punishment"
)

type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

type MockPunishmentService struct {
	mock.Mock
}

func (m *MockPunishmentService) ListForPlayer(ctx context.Context, playerID string) ([]punishment.View, error) {
	args := m.Called(ctx, playerID)
	views, _ := args.Get(0).([]punishment.View)
	return views, args.Error(1)
}

func (m *MockPunishmentService) Get(ctx context.Context, id string) (punishment.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(punishment.View), args.Error(1)
}

func (m *MockPunishmentService) Apply(ctx context.Context, req punishment.ApplyRequest) (punishment.View, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(punishment.View), args.Error(1)
}

func (m *MockPunishmentService) MarkStarted(ctx context.Context, id string, startedAt time.Time) (punishment.View, error) {
	args := m.Called(ctx, id, startedAt)
	return args.Get(0).(punishment.View), args.Error(1)
}

func (m *MockPunishmentService) Modify(ctx context.Context, id string, req punishment.ModifyRequest) (punishment.View, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(punishment.View), args.Error(1)
}

func (m *MockPunishmentService) AddNote(ctx context.Context, id string, req punishment.NoteRequest) (punishment.View, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(punishment.View), args.Error(1)
}

func (m *MockPunishmentService) Evaluate(ctx context.Context, raw []byte) (punishment.Evaluation, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(punishment.Evaluation), args.Error(1)
}

type MockStandingService struct {
	mock.Mock
}

func (m *MockStandingService) GetStanding(ctx context.Context, playerID string) (domain.StatusAggregate, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(domain.StatusAggregate), args.Error(1)
}

func (m *MockStandingService) OffenseTierFor(ctx context.Context, playerID string, category domain.Category) (domain.OffenseTier, error) {
	args := m.Called(ctx, playerID, category)
	return args.Get(0).(domain.OffenseTier), args.Error(1)
}

func (m *MockStandingService) Recompute(ctx context.Context, playerID string) (domain.StatusAggregate, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(domain.StatusAggregate), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]domain.PunishmentType, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]domain.PunishmentType)
	return types, args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, ordinal int) (*domain.PunishmentType, error) {
	args := m.Called(ctx, ordinal)
	t, _ := args.Get(0).(*domain.PunishmentType)
	return t, args.Error(1)
}

func (m *MockCatalogService) Catalog(ctx context.Context) (domain.Catalog, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(domain.Catalog)
	return c, args.Error(1)
}

func (m *MockCatalogService) Upsert(ctx context.Context, t domain.PunishmentType) (*domain.PunishmentType, error) {
	args := m.Called(ctx, t)
	out, _ := args.Get(0).(*domain.PunishmentType)
	return out, args.Error(1)
}

func (m *MockCatalogService) Seed(ctx context.Context, types []domain.PunishmentType) (int, error) {
	args := m.Called(ctx, types)
	return args.Int(0), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetThresholds(ctx context.Context) (domain.StatusThresholds, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StatusThresholds), args.Error(1)
}

func (m *MockSettingsService) UpdateThresholds(ctx context.Context, t domain.StatusThresholds, updatedBy string) (domain.StatusThresholds, error) {
	args := m.Called(ctx, t, updatedBy)
	return args.Get(0).(domain.StatusThresholds), args.Error(1)
}

// newRequest builds a request carrying chi URL params, as the router would
func newRequest(method, target, body string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
