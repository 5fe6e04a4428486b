package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/modstanding/internal/database/postgres"
	"github.com/osse101/modstanding/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Punishment repository.Punishment
	Catalog    repository.Catalog
	Settings   repository.Settings
	Standing   repository.StandingTiers
}

// InitializeRepositories creates the PostgreSQL repositories
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Punishment: postgres.NewPunishmentRepository(dbPool),
		Catalog:    postgres.NewCatalogRepository(dbPool),
		Settings:   postgres.NewSettingsRepository(dbPool),
		Standing:   postgres.NewStandingRepository(dbPool),
	}
}
