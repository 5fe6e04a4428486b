package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/logger"
	"github.com/osse101/modstanding/internal/repository"
)

// Service serves the punishment type catalog: the immutable built-in types
// merged with custom types from the repository.
type Service interface {
	List(ctx context.Context) ([]domain.PunishmentType, error)
	Get(ctx context.Context, ordinal int) (*domain.PunishmentType, error)
	Catalog(ctx context.Context) (domain.Catalog, error)
	Upsert(ctx context.Context, t domain.PunishmentType) (*domain.PunishmentType, error)
	Seed(ctx context.Context, types []domain.PunishmentType) (int, error)
}

type service struct {
	repo      repository.Catalog
	builtins  domain.Catalog
	types     *expirable.LRU[int, domain.PunishmentType]
	snapshots *expirable.LRU[string, domain.Catalog]
}

// NewService creates a catalog service. Lookups are cached for ttl;
// a non-positive ttl uses DefaultCacheTTL.
func NewService(repo repository.Catalog, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	builtins := make(domain.Catalog)
	for _, t := range domain.BuiltinPunishmentTypes() {
		builtins[t.Ordinal] = t
	}
	return &service{
		repo:      repo,
		builtins:  builtins,
		types:     expirable.NewLRU[int, domain.PunishmentType](DefaultCacheSize, nil, ttl),
		snapshots: expirable.NewLRU[string, domain.Catalog](1, nil, ttl),
	}
}

// List returns every type ordered by ordinal
func (s *service) List(ctx context.Context) ([]domain.PunishmentType, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PunishmentType, 0, len(c))
	for _, t := range c {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out, nil
}

// Get returns one type. Unknown ordinals yield domain.ErrPunishmentTypeNotFound.
func (s *service) Get(ctx context.Context, ordinal int) (*domain.PunishmentType, error) {
	if t, ok := s.builtins[ordinal]; ok {
		t = t.Clone()
		return &t, nil
	}
	if t, ok := s.types.Get(ordinal); ok {
		t = t.Clone()
		return &t, nil
	}

	t, err := s.repo.GetType(ctx, ordinal)
	if err != nil {
		if errors.Is(err, domain.ErrPunishmentTypeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	s.types.Add(ordinal, t.Clone())
	return t, nil
}

// Catalog returns a snapshot of all types keyed by ordinal. Each call gets its own copy,
// so callers may modify it. A repository failure yields domain.ErrCatalogUnavailable so
// callers can report a pending status.
func (s *service) Catalog(ctx context.Context) (domain.Catalog, error) {
	if c, ok := s.snapshots.Get(snapshotKey); ok {
		return c.Clone(), nil
	}

	custom, err := s.repo.ListTypes(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgCatalogLoadFail, "error", err)
		return nil, fmt.Errorf("%w: "+ErrMsgListTypes, domain.ErrCatalogUnavailable, err)
	}

	c := make(domain.Catalog, len(s.builtins)+len(custom))
	for ordinal, t := range s.builtins {
		c[ordinal] = t
	}
	for _, t := range custom {
		if domain.IsReservedOrdinal(t.Ordinal) {
			continue
		}
		c[t.Ordinal] = t
	}
	s.snapshots.Add(snapshotKey, c)
	return c.Clone(), nil
}

// Upsert validates and stores a custom type, replacing any type with the same ordinal
func (s *service) Upsert(ctx context.Context, t domain.PunishmentType) (*domain.PunishmentType, error) {
	if err := ValidateType(t); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertType(ctx, t); err != nil {
		return nil, fmt.Errorf(ErrMsgUpsertType, t.Ordinal, err)
	}
	s.invalidate(t.Ordinal)

	logger.FromContext(ctx).Info(LogMsgTypeUpserted, "ordinal", t.Ordinal, "name", t.Name, logger.AttrKeyCategory, t.Category)
	return &t, nil
}

// Seed stores the given types only where their ordinal is not configured yet.
// Existing types are left untouched so admin edits survive restarts.
func (s *service) Seed(ctx context.Context, types []domain.PunishmentType) (int, error) {
	log := logger.FromContext(ctx)

	existing, err := s.repo.ListTypes(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgListTypes, err)
	}
	have := make(map[int]bool, len(existing))
	for _, t := range existing {
		have[t.Ordinal] = true
	}

	seeded := 0
	for _, t := range types {
		if have[t.Ordinal] {
			continue
		}
		if err := ValidateType(t); err != nil {
			return seeded, err
		}
		if err := s.repo.UpsertType(ctx, t); err != nil {
			return seeded, fmt.Errorf(ErrMsgSeedType, t.Ordinal, err)
		}
		have[t.Ordinal] = true
		seeded++
		log.Debug(LogMsgTypeSeeded, "ordinal", t.Ordinal, "name", t.Name)
	}

	if seeded > 0 {
		s.types.Purge()
		s.snapshots.Purge()
	}
	log.Info(LogMsgCatalogSeeded, "seeded", seeded, "existing", len(existing))
	return seeded, nil
}

func (s *service) invalidate(ordinal int) {
	s.types.Remove(ordinal)
	s.snapshots.Remove(snapshotKey)
}
