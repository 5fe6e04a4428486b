package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/modstanding/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetThresholds(ctx context.Context) (*domain.StatusThresholds, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusThresholds), args.Error(1)
}

func (m *MockRepository) SaveThresholds(ctx context.Context, t domain.StatusThresholds, updatedBy string) error {
	return m.Called(ctx, t, updatedBy).Error(0)
}

func TestGetThresholds(t *testing.T) {
	saved := &domain.StatusThresholds{
		Social:   domain.TierThresholds{Medium: 2, Habitual: 3},
		Gameplay: domain.TierThresholds{Medium: 10, Habitual: 20},
	}

	tests := []struct {
		name    string
		stored  *domain.StatusThresholds
		err     error
		want    domain.StatusThresholds
		wantErr bool
	}{
		{name: "defaults before first save", want: domain.DefaultThresholds()},
		{name: "saved thresholds", stored: saved, want: *saved},
		{name: "repository error", err: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.stored != nil {
				repo.On("GetThresholds", mock.Anything).Return(tt.stored, nil)
			} else {
				repo.On("GetThresholds", mock.Anything).Return(nil, tt.err)
			}
			svc := NewService(repo, domain.DefaultThresholds())

			got, err := svc.GetThresholds(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to load status thresholds")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateThresholds(t *testing.T) {
	valid := domain.StatusThresholds{
		Social:   domain.TierThresholds{Medium: 3, Habitual: 6},
		Gameplay: domain.TierThresholds{Medium: 5, Habitual: 5},
	}

	t.Run("saves valid thresholds", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SaveThresholds", mock.Anything, valid, "admin").Return(nil)
		svc := NewService(repo, domain.DefaultThresholds())

		got, err := svc.UpdateThresholds(context.Background(), valid, "admin")
		require.NoError(t, err)
		assert.Equal(t, valid, got)
		repo.AssertExpectations(t)
	})

	t.Run("rejects habitual below medium", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, domain.DefaultThresholds())

		bad := valid
		bad.Gameplay = domain.TierThresholds{Medium: 6, Habitual: 2}
		_, err := svc.UpdateThresholds(context.Background(), bad, "admin")
		assert.ErrorIs(t, err, domain.ErrInvalidThresholds)
		repo.AssertNotCalled(t, "SaveThresholds", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, domain.DefaultThresholds())

		bad := valid
		bad.Social.Medium = -1
		_, err := svc.UpdateThresholds(context.Background(), bad, "admin")
		assert.ErrorIs(t, err, domain.ErrInvalidThresholds)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SaveThresholds", mock.Anything, valid, "admin").Return(errors.New("db down"))
		svc := NewService(repo, domain.DefaultThresholds())

		_, err := svc.UpdateThresholds(context.Background(), valid, "admin")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save status thresholds")
		assert.Contains(t, err.Error(), "db down")
	})
}
