package repositories

import "context"

// Provider bundles the repositories one Store backend exposes.
type Provider struct {
	TransactionRepo TransactionRepository
	AccountRepo     AccountRepository
	CategoryRepo    CategoryRepository
}

// AvailabilityChecker is implemented by backends that can fail fast when
// unreachable. The network-backed store pings before multi-record mutations;
// the local store is always available.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context) error
}
