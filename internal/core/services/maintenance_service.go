package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/google/uuid"
)

// MaintenanceService runs the self-healing passes over persisted
// transactions. Both passes are skip-and-report: one bad record never aborts
// processing of the rest.
type MaintenanceService struct {
	stores storeSelector
}

func NewMaintenanceService(stores storeSelector) *MaintenanceService {
	return &MaintenanceService{stores: stores}
}

// RepairAll rewrites every record whose date is not canonical or whose
// derived month/year disagree with the date's calendar month/year. Records
// already conformant are never touched, so a second run reports zero fixes.
// Records whose date is unusable (zero value) are skipped and counted.
func (s *MaintenanceService) RepairAll(ctx context.Context, user domain.AuthUser) (*domain.RepairReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	txns, err := repos.TransactionRepo.ListTransactions(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to list transactions for repair", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	var repaired []domain.Transaction
	skipped := 0
	for _, t := range txns {
		if t.Date.IsZero() {
			skipped++
			logger.Warn("Unrepairable transaction, date missing", slog.String("transaction_id", t.TransactionID))
			continue
		}
		day := dates.Normalize(t.Date)
		if t.Date.Equal(day) && t.Month == dates.Month0(day) && t.Year == dates.Year(day) {
			continue
		}
		t.Date = day
		t.Month = dates.Month0(day)
		t.Year = dates.Year(day)
		t.LastUpdatedAt = now
		t.LastUpdatedBy = user.UserID
		repaired = append(repaired, t)
	}

	if len(repaired) > 0 {
		if err := repos.TransactionRepo.UpdateTransactions(ctx, repaired); err != nil {
			logger.Error("Failed to write repaired transactions", slog.String("error", err.Error()), slog.Int("count", len(repaired)))
			return nil, err
		}
	}

	logger.Info("Integrity repair finished",
		slog.String("user_id", user.UserID),
		slog.Int("repaired", len(repaired)),
		slog.Int("skipped", skipped))
	return &domain.RepairReport{Count: len(repaired), Skipped: skipped}, nil
}

// LinkLegacyRecurrences upgrades recurring records that predate series
// tracking. Each such record gets a freshly minted recurrence id, and its
// twelve forward months are linked: when a record already exists for that
// month with the same description and type it joins the series, otherwise a
// pending copy is created.
func (s *MaintenanceService) LinkLegacyRecurrences(ctx context.Context, user domain.AuthUser) (*domain.RecurrenceLinkReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repos, err := s.stores.resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	txns, err := repos.TransactionRepo.ListTransactions(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to list transactions for recurrence linking", slog.String("error", err.Error()))
		return nil, err
	}

	// Index unlinked records by description/type/month/year so a legacy
	// series can adopt months the user already tracked by hand.
	type monthKey struct {
		desc  string
		typ   domain.TransactionType
		year  int
		month int
	}
	unlinked := make(map[monthKey]*domain.Transaction)
	for i := range txns {
		t := &txns[i]
		if t.RecurrenceID != nil {
			continue
		}
		unlinked[monthKey{strings.TrimSpace(t.Description), t.Type, t.Year, t.Month}] = t
	}

	now := time.Now()
	report := &domain.RecurrenceLinkReport{}
	var updates []domain.Transaction
	var creations []domain.Transaction

	for i := range txns {
		legacy := &txns[i]
		if !legacy.IsRecurring || legacy.RecurrenceID != nil {
			continue
		}
		if legacy.Date.IsZero() {
			logger.Warn("Skipping legacy recurrence with missing date", slog.String("transaction_id", legacy.TransactionID))
			continue
		}
		report.Legacy++

		recurrenceID := uuid.NewString()
		legacy.RecurrenceID = &recurrenceID
		legacy.LastUpdatedAt = now
		legacy.LastUpdatedBy = user.UserID
		updates = append(updates, *legacy)

		desc := strings.TrimSpace(legacy.Description)
		for n := 1; n <= recurringSeriesLength; n++ {
			day := dates.AddMonths(legacy.Date, n)
			key := monthKey{desc, legacy.Type, dates.Year(day), dates.Month0(day)}
			if match, ok := unlinked[key]; ok && match.RecurrenceID == nil {
				match.RecurrenceID = &recurrenceID
				match.IsRecurring = true
				match.LastUpdatedAt = now
				match.LastUpdatedBy = user.UserID
				updates = append(updates, *match)
				report.Updated++
				continue
			}
			creations = append(creations, domain.Transaction{
				TransactionID: uuid.NewString(),
				UserID:        user.UserID,
				Description:   legacy.Description,
				Amount:        legacy.Amount,
				Date:          day,
				Month:         dates.Month0(day),
				Year:          dates.Year(day),
				Type:          legacy.Type,
				CategoryID:    legacy.CategoryID,
				AccountID:     legacy.AccountID,
				PaymentStatus: domain.PaymentStatusPending,
				IsRecurring:   true,
				RecurrenceID:  &recurrenceID,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     user.UserID,
					LastUpdatedAt: now,
					LastUpdatedBy: user.UserID,
				},
			})
			report.Created++
		}
	}

	if len(updates) > 0 {
		if err := repos.TransactionRepo.UpdateTransactions(ctx, updates); err != nil {
			logger.Error("Failed to link legacy recurrences", slog.String("error", err.Error()), slog.Int("count", len(updates)))
			return nil, err
		}
	}
	if len(creations) > 0 {
		if err := repos.TransactionRepo.SaveTransactions(ctx, creations); err != nil {
			logger.Error("Failed to create recurrence fill-ins", slog.String("error", err.Error()), slog.Int("count", len(creations)))
			return nil, err
		}
	}

	logger.Info("Legacy recurrence linking finished",
		slog.String("user_id", user.UserID),
		slog.Int("legacy", report.Legacy),
		slog.Int("updated", report.Updated),
		slog.Int("created", report.Created))
	return report, nil
}
