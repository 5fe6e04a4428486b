package settings

import (
	"context"
	"fmt"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/logger"
	"github.com/osse101/modstanding/internal/repository"
	"github.com/osse101/modstanding/internal/standing"
)

// Service manages admin settings
type Service interface {
	GetThresholds(ctx context.Context) (domain.StatusThresholds, error)
	UpdateThresholds(ctx context.Context, t domain.StatusThresholds, updatedBy string) (domain.StatusThresholds, error)
}

type service struct {
	repo     repository.Settings
	defaults domain.StatusThresholds
}

// NewService creates a settings service. defaults apply until thresholds are saved.
func NewService(repo repository.Settings, defaults domain.StatusThresholds) Service {
	return &service{repo: repo, defaults: defaults}
}

func (s *service) GetThresholds(ctx context.Context) (domain.StatusThresholds, error) {
	t, err := s.repo.GetThresholds(ctx)
	if err != nil {
		return domain.StatusThresholds{}, fmt.Errorf(ErrMsgLoadThresholds, err)
	}
	if t == nil {
		return s.defaults, nil
	}
	return *t, nil
}

// UpdateThresholds replaces both categories' thresholds. A habitual boundary
// below medium is rejected with domain.ErrInvalidThresholds.
func (s *service) UpdateThresholds(ctx context.Context, t domain.StatusThresholds, updatedBy string) (domain.StatusThresholds, error) {
	if err := standing.ValidateThresholds(t); err != nil {
		return domain.StatusThresholds{}, err
	}
	if err := s.repo.SaveThresholds(ctx, t, updatedBy); err != nil {
		return domain.StatusThresholds{}, fmt.Errorf(ErrMsgSaveThresholds, err)
	}

	logger.FromContext(ctx).Info(LogMsgThresholdsUpdated,
		"updated_by", updatedBy,
		"social_medium", t.Social.Medium, "social_habitual", t.Social.Habitual,
		"gameplay_medium", t.Gameplay.Medium, "gameplay_habitual", t.Gameplay.Habitual)
	return t, nil
}
