package punishment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
)

// memoryRepo is an in-memory repository.Punishment
type memoryRepo struct {
	mu      sync.Mutex
	records map[string]domain.PunishmentInstance
	err     error
}

func newMemoryRepo(seed ...domain.PunishmentInstance) *memoryRepo {
	r := &memoryRepo{records: map[string]domain.PunishmentInstance{}}
	for _, p := range seed {
		r.records[p.ID] = p
	}
	return r
}

func (r *memoryRepo) GetPunishment(ctx context.Context, id string) (*domain.PunishmentInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.records[id]
	if !ok {
		return nil, domain.ErrPunishmentNotFound
	}
	p.Modifications = append([]domain.Modification(nil), p.Modifications...)
	p.Notes = append([]domain.Note(nil), p.Notes...)
	return &p, nil
}

func (r *memoryRepo) ListByPlayer(ctx context.Context, playerID string) ([]domain.PunishmentInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.PunishmentInstance
	for _, p := range r.records {
		if p.PlayerID == playerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}

func (r *memoryRepo) ListStarted(ctx context.Context) ([]domain.PunishmentInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PunishmentInstance
	for _, p := range r.records {
		if p.StartedAt != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) CreatePunishment(ctx context.Context, p *domain.PunishmentInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records[p.ID] = *p
	return nil
}

func (r *memoryRepo) MarkStarted(ctx context.Context, id string, startedAt time.Time, expiry *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[id]
	if !ok {
		return domain.ErrPunishmentNotFound
	}
	p.StartedAt = &startedAt
	p.OriginalExpiry = expiry
	r.records[id] = p
	return nil
}

func (r *memoryRepo) AppendModification(ctx context.Context, punishmentID string, m domain.Modification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[punishmentID]
	if !ok {
		return domain.ErrPunishmentNotFound
	}
	p.Modifications = append(append([]domain.Modification(nil), p.Modifications...), m)
	r.records[punishmentID] = p
	return nil
}

func (r *memoryRepo) AppendNote(ctx context.Context, punishmentID string, n domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[punishmentID]
	if !ok {
		return domain.ErrPunishmentNotFound
	}
	p.Notes = append(append([]domain.Note(nil), p.Notes...), n)
	r.records[punishmentID] = p
	return nil
}

// staticCatalog serves a fixed catalog
type staticCatalog struct {
	catalog domain.Catalog
	err     error
}

func (c staticCatalog) Catalog(ctx context.Context) (domain.Catalog, error) {
	return c.catalog, c.err
}

func (c staticCatalog) Get(ctx context.Context, ordinal int) (*domain.PunishmentType, error) {
	if c.err != nil {
		return nil, c.err
	}
	t, ok := c.catalog.Lookup(ordinal)
	if !ok {
		return nil, domain.ErrPunishmentTypeNotFound
	}
	return &t, nil
}

// MockStanding is a mock StandingReader
type MockStanding struct {
	mock.Mock
}

func (m *MockStanding) OffenseTierFor(ctx context.Context, playerID string, category domain.Category) (domain.OffenseTier, error) {
	args := m.Called(ctx, playerID, category)
	return args.Get(0).(domain.OffenseTier), args.Error(1)
}

// MockPublisher is a mock event.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

func eventOfType(t event.Type) interface{} {
	return mock.MatchedBy(func(evt event.Event) bool { return evt.Type == t })
}
