package standing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
	"github.com/osse101/modstanding/internal/logger"
	"github.com/osse101/modstanding/internal/metrics"
	"github.com/osse101/modstanding/internal/repository"
)

// CatalogReader provides a snapshot of the punishment type catalog
type CatalogReader interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
}

// ThresholdsReader provides the current status thresholds
type ThresholdsReader interface {
	GetThresholds(ctx context.Context) (domain.StatusThresholds, error)
}

// Service computes player standing
type Service interface {
	GetStanding(ctx context.Context, playerID string) (domain.StatusAggregate, error)
	OffenseTierFor(ctx context.Context, playerID string, category domain.Category) (domain.OffenseTier, error)
	Recompute(ctx context.Context, playerID string) (domain.StatusAggregate, error)
}

type service struct {
	repo       repository.Punishment
	tiers      repository.StandingTiers
	catalog    CatalogReader
	thresholds ThresholdsReader
	publisher  event.Publisher
	now        func() time.Time
}

// NewService creates a standing service. publisher may be nil.
func NewService(repo repository.Punishment, tiers repository.StandingTiers, catalog CatalogReader, thresholds ThresholdsReader, publisher event.Publisher) Service {
	return &service{
		repo:       repo,
		tiers:      tiers,
		catalog:    catalog,
		thresholds: thresholds,
		publisher:  publisher,
		now:        time.Now,
	}
}

// GetStanding aggregates the player's active punishments. An unavailable catalog
// yields a pending aggregate instead of an error.
func (s *service) GetStanding(ctx context.Context, playerID string) (domain.StatusAggregate, error) {
	start := time.Now()
	defer func() { metrics.StandingDuration.Observe(time.Since(start).Seconds()) }()
	log := logger.FromContext(ctx)

	instances, err := s.repo.ListByPlayer(ctx, playerID)
	if err != nil {
		metrics.StandingComputations.WithLabelValues(metrics.OutcomeError).Inc()
		return domain.StatusAggregate{}, fmt.Errorf(ErrMsgListPunishments, playerID, err)
	}

	thresholds, err := s.thresholds.GetThresholds(ctx)
	if err != nil {
		metrics.StandingComputations.WithLabelValues(metrics.OutcomeError).Inc()
		return domain.StatusAggregate{}, fmt.Errorf(ErrMsgLoadThresholds, err)
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrCatalogUnavailable) {
			metrics.StandingComputations.WithLabelValues(metrics.OutcomeError).Inc()
			return domain.StatusAggregate{}, fmt.Errorf(ErrMsgLoadCatalog, err)
		}
		catalog = nil
	}

	agg := Aggregate(instances, catalog, thresholds, s.now())
	if agg.Pending {
		metrics.StandingComputations.WithLabelValues(metrics.OutcomePending).Inc()
		log.Warn(LogMsgStandingPending, logger.AttrKeyPlayerID, playerID)
		return agg, nil
	}

	metrics.StandingComputations.WithLabelValues(metrics.OutcomeComputed).Inc()
	for _, d := range agg.Defects {
		log.Warn(LogMsgAggregateDefect, logger.AttrKeyPlayerID, playerID, logger.AttrKeyDefectKind, d.Kind, logger.AttrKeyRecordID, d.RecordID, "detail", d.Detail)
	}
	metrics.RecordDefects(agg.Defects)

	log.Debug(LogMsgStandingComputed,
		logger.AttrKeyPlayerID, playerID,
		"social", agg.SocialStatus, "social_points", agg.SocialPoints,
		"gameplay", agg.GameplayStatus, "gameplay_points", agg.GameplayPoints)
	return agg, nil
}

// OffenseTierFor maps the player's current status in category to an offense tier.
// Administrative types always start at the first tier.
func (s *service) OffenseTierFor(ctx context.Context, playerID string, category domain.Category) (domain.OffenseTier, error) {
	if category == domain.CategoryAdministrative {
		return domain.OffenseFirst, nil
	}
	agg, err := s.GetStanding(ctx, playerID)
	if err != nil {
		return domain.OffenseFirst, err
	}
	if agg.Pending {
		return domain.OffenseFirst, domain.ErrCatalogUnavailable
	}
	status, _ := StatusFor(agg, category)
	return OffenseTierFor(status), nil
}

// Recompute recalculates the player's standing and publishes a standing change
// event for every category whose tier differs from the last one published.
// Published tiers are stored, so restarts do not repeat announcements.
// Players never seen before are treated as Low. Pending results publish nothing.
func (s *service) Recompute(ctx context.Context, playerID string) (domain.StatusAggregate, error) {
	agg, err := s.GetStanding(ctx, playerID)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgRecomputeFailed, logger.AttrKeyPlayerID, playerID, "error", err)
		return agg, err
	}
	if agg.Pending {
		return agg, nil
	}

	now := s.now()
	for _, category := range []domain.Category{domain.CategorySocial, domain.CategoryGameplay} {
		current, points := StatusFor(agg, category)
		previous, found, err := s.tiers.SwapTier(ctx, playerID, category, current)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgRecomputeFailed, logger.AttrKeyPlayerID, playerID, "error", err)
			return agg, fmt.Errorf(ErrMsgSwapTier, category, playerID, err)
		}
		if !found {
			previous = domain.StatusLow
		}
		if previous == current {
			continue
		}
		logger.FromContext(ctx).Info(LogMsgTierChanged,
			logger.AttrKeyPlayerID, playerID, logger.AttrKeyCategory, category, "from", previous, "to", current, "points", points)
		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewStandingChangedEvent(playerID, category, previous, current, points, now))
		}
	}
	return agg, nil
}
