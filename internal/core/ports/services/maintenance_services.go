package services

import (
	"context"

	"github.com/financas-app/financas_backend/internal/core/domain"
)

// MaintenanceSvcFacade covers the self-healing passes over persisted data.
// Both operations are idempotent and skip-and-report per record.
type MaintenanceSvcFacade interface {
	// RepairAll rewrites records whose date is not canonical or whose
	// derived month/year disagree with the date.
	RepairAll(ctx context.Context, user domain.AuthUser) (*domain.RepairReport, error)

	// LinkLegacyRecurrences mints series ids for recurring records that
	// predate series tracking and materializes their forward year.
	LinkLegacyRecurrences(ctx context.Context, user domain.AuthUser) (*domain.RecurrenceLinkReport, error)
}

// SyncSvcFacade copies data between the two store backends.
type SyncSvcFacade interface {
	// MigrateLocalToCloud uploads the local store's data into the cloud
	// store, deduplicating master data by name and remapping foreign keys.
	MigrateLocalToCloud(ctx context.Context, user domain.AuthUser) (*domain.SyncReport, error)

	// SyncCloudToLocal replaces the local store's data with the user's
	// cloud data.
	SyncCloudToLocal(ctx context.Context, user domain.AuthUser) (*domain.SyncReport, error)
}
