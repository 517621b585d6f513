package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mintforge/packvault/internal/database/postgres"
	"github.com/mintforge/packvault/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Catalog   repository.Catalog
	Wallet    repository.Wallet
	Allocator repository.Allocator
}

// InitializeRepositories creates the Postgres-backed repositories.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Catalog:   postgres.NewCatalogRepository(dbPool),
		Wallet:    postgres.NewWalletRepository(dbPool),
		Allocator: postgres.NewAllocatorRepository(dbPool),
	}
}
