package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/google/uuid"
)

const migrationChunkSize = 50

// SyncService copies data between the two Store backends. Unlike the other
// services it addresses both backends in one call, so it holds them directly
// instead of resolving through the capability flag.
type SyncService struct {
	cloud      *portsrepo.Provider
	local      *portsrepo.Provider
	cloudCheck portsrepo.AvailabilityChecker
}

func NewSyncService(cloud, local *portsrepo.Provider, cloudCheck portsrepo.AvailabilityChecker) *SyncService {
	return &SyncService{cloud: cloud, local: local, cloudCheck: cloudCheck}
}

func (s *SyncService) checkCloud(ctx context.Context) error {
	if s.cloudCheck == nil {
		return nil
	}
	if err := s.cloudCheck.CheckAvailability(ctx); err != nil {
		return fmt.Errorf("%w: cloud store unreachable: %v", apperrors.ErrConnectivity, err)
	}
	return nil
}

// MigrateLocalToCloud uploads everything the user tracked locally into the
// cloud store. Master data is deduplicated against the cloud by trimmed,
// lowercased name; transaction foreign keys are remapped accordingly. Rows
// with unusable dates are skipped and reported, and transaction inserts go
// up in fixed-size chunks so one bad chunk does not void the rest.
func (s *SyncService) MigrateLocalToCloud(ctx context.Context, user domain.AuthUser) (*domain.SyncReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !user.CanSync {
		return nil, fmt.Errorf("%w: user has no cloud access", apperrors.ErrForbidden)
	}
	if err := s.checkCloud(ctx); err != nil {
		return nil, err
	}

	report := &domain.SyncReport{}
	now := time.Now()

	categoryIDs, err := s.migrateCategories(ctx, user, now, report, logger)
	if err != nil {
		return nil, err
	}
	accountIDs, err := s.migrateAccounts(ctx, user, now, report, logger)
	if err != nil {
		return nil, err
	}

	localTxns, err := s.local.TransactionRepo.ListTransactions(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	var pending []domain.Transaction
	for _, t := range localTxns {
		if t.Date.IsZero() {
			report.Errors = append(report.Errors, fmt.Sprintf("transaction %s: unusable date, skipped", t.TransactionID))
			continue
		}
		day := dates.Normalize(t.Date)
		t.TransactionID = uuid.NewString()
		t.UserID = user.UserID
		t.Date = day
		t.Month = dates.Month0(day)
		t.Year = dates.Year(day)
		if mapped, ok := categoryIDs[t.CategoryID]; ok {
			t.CategoryID = mapped
		}
		if mapped, ok := accountIDs[t.AccountID]; ok {
			t.AccountID = mapped
		}
		t.LastUpdatedAt = now
		t.LastUpdatedBy = user.UserID
		pending = append(pending, t)
	}

	for start := 0; start < len(pending); start += migrationChunkSize {
		end := start + migrationChunkSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]
		if err := s.cloud.TransactionRepo.SaveTransactions(ctx, chunk); err != nil {
			logger.Error("Failed to upload transaction chunk", slog.String("error", err.Error()), slog.Int("offset", start))
			report.Errors = append(report.Errors, fmt.Sprintf("transactions %d-%d: %v", start, end-1, err))
			continue
		}
		report.Transactions += len(chunk)
	}

	logger.Info("Local to cloud migration finished",
		slog.String("user_id", user.UserID),
		slog.Int("categories", report.Categories),
		slog.Int("accounts", report.Accounts),
		slog.Int("transactions", report.Transactions),
		slog.Int("errors", len(report.Errors)))
	return report, nil
}

// migrateCategories returns the local-id to cloud-id mapping.
func (s *SyncService) migrateCategories(ctx context.Context, user domain.AuthUser, now time.Time, report *domain.SyncReport, logger *slog.Logger) (map[string]string, error) {
	localCats, err := s.local.CategoryRepo.ListCategories(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	cloudCats, err := s.cloud.CategoryRepo.ListCategories(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(cloudCats))
	for _, c := range cloudCats {
		byName[normalizeName(c.Name)] = c.CategoryID
	}

	mapping := make(map[string]string, len(localCats))
	for _, c := range localCats {
		if existingID, ok := byName[normalizeName(c.Name)]; ok {
			mapping[c.CategoryID] = existingID
			continue
		}
		localID := c.CategoryID
		c.CategoryID = uuid.NewString()
		c.UserID = user.UserID
		c.LastUpdatedAt = now
		c.LastUpdatedBy = user.UserID
		if err := s.cloud.CategoryRepo.SaveCategory(ctx, c); err != nil {
			logger.Error("Failed to upload category", slog.String("error", err.Error()), slog.String("name", c.Name))
			report.Errors = append(report.Errors, fmt.Sprintf("category %q: %v", c.Name, err))
			continue
		}
		byName[normalizeName(c.Name)] = c.CategoryID
		mapping[localID] = c.CategoryID
		report.Categories++
	}
	return mapping, nil
}

// migrateAccounts returns the local-id to cloud-id mapping.
func (s *SyncService) migrateAccounts(ctx context.Context, user domain.AuthUser, now time.Time, report *domain.SyncReport, logger *slog.Logger) (map[string]string, error) {
	localAccts, err := s.local.AccountRepo.ListAccounts(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	cloudAccts, err := s.cloud.AccountRepo.ListAccounts(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(cloudAccts))
	for _, a := range cloudAccts {
		byName[normalizeName(a.Name)] = a.AccountID
	}

	mapping := make(map[string]string, len(localAccts))
	for _, a := range localAccts {
		if existingID, ok := byName[normalizeName(a.Name)]; ok {
			mapping[a.AccountID] = existingID
			continue
		}
		localID := a.AccountID
		a.AccountID = uuid.NewString()
		a.UserID = user.UserID
		a.LastUpdatedAt = now
		a.LastUpdatedBy = user.UserID
		if err := s.cloud.AccountRepo.SaveAccount(ctx, a); err != nil {
			logger.Error("Failed to upload account", slog.String("error", err.Error()), slog.String("name", a.Name))
			report.Errors = append(report.Errors, fmt.Sprintf("account %q: %v", a.Name, err))
			continue
		}
		byName[normalizeName(a.Name)] = a.AccountID
		mapping[localID] = a.AccountID
		report.Accounts++
	}
	return mapping, nil
}

// SyncCloudToLocal replaces the local store's contents with the user's cloud
// data, table by table, keeping cloud ids so later edits line up.
func (s *SyncService) SyncCloudToLocal(ctx context.Context, user domain.AuthUser) (*domain.SyncReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !user.CanSync {
		return nil, fmt.Errorf("%w: user has no cloud access", apperrors.ErrForbidden)
	}
	if err := s.checkCloud(ctx); err != nil {
		return nil, err
	}

	categories, err := s.cloud.CategoryRepo.ListCategories(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.cloud.AccountRepo.ListAccounts(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	txns, err := s.cloud.TransactionRepo.ListTransactions(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.local.CategoryRepo.ReplaceAllCategories(ctx, user.UserID, categories); err != nil {
		return nil, err
	}
	if err := s.local.AccountRepo.ReplaceAllAccounts(ctx, user.UserID, accounts); err != nil {
		return nil, err
	}
	if err := s.local.TransactionRepo.ReplaceAllTransactions(ctx, user.UserID, txns); err != nil {
		return nil, err
	}

	logger.Info("Cloud to local sync finished",
		slog.String("user_id", user.UserID),
		slog.Int("categories", len(categories)),
		slog.Int("accounts", len(accounts)),
		slog.Int("transactions", len(txns)))
	return &domain.SyncReport{
		Categories:   len(categories),
		Accounts:     len(accounts),
		Transactions: len(txns),
	}, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
