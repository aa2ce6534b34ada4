package pgsql

import (
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider bundles the Postgres-backed repositories into the
// Store contract the services consume.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.Provider {
	return &portsrepo.Provider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
	}
}

// Checker exposes the availability probe for the Postgres backend.
type Checker struct {
	BaseRepository
}

func NewChecker(dbPool *pgxpool.Pool) *Checker {
	return &Checker{BaseRepository{Pool: dbPool}}
}

var _ portsrepo.AvailabilityChecker = (*Checker)(nil)
