package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/financas-app/financas_backend/internal/core/domain"
	portssvc "github.com/financas-app/financas_backend/internal/core/ports/services"
	"github.com/financas-app/financas_backend/internal/core/services"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MaintenanceServiceTestSuite struct {
	suite.Suite
	backend *mockBackend
	service portssvc.MaintenanceSvcFacade
	user    domain.AuthUser
	ctx     context.Context
}

func (suite *MaintenanceServiceTestSuite) SetupTest() {
	suite.backend = newMockBackend()
	container := services.NewServiceContainer(newMockBackend().provider(), suite.backend.provider(), nil, new(MockUserRepository))
	suite.service = container.Maintenance
	suite.user = domain.AuthUser{UserID: uuid.NewString(), CanSync: false}
	suite.ctx = context.Background()
}

func (suite *MaintenanceServiceTestSuite) TestRepairAll() {
	good := dates.Canonical(2025, time.March, 10)
	txns := []domain.Transaction{
		{
			// Already conformant, must not be rewritten.
			TransactionID: uuid.NewString(),
			UserID:        suite.user.UserID,
			Date:          good,
			Month:         dates.Month0(good),
			Year:          dates.Year(good),
		},
		{
			// Midnight local-time date from a legacy import.
			TransactionID: uuid.NewString(),
			UserID:        suite.user.UserID,
			Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			Month:         2,
			Year:          2025,
		},
		{
			// Canonical date but drifted derived fields.
			TransactionID: uuid.NewString(),
			UserID:        suite.user.UserID,
			Date:          good,
			Month:         7,
			Year:          2023,
		},
		{
			// No recoverable day at all.
			TransactionID: uuid.NewString(),
			UserID:        suite.user.UserID,
		},
	}

	suite.backend.txRepo.On("ListTransactions", suite.ctx, suite.user.UserID).Return(txns, nil).Once()

	var repaired []domain.Transaction
	suite.backend.txRepo.On("UpdateTransactions", suite.ctx, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) { repaired = args.Get(1).([]domain.Transaction) }).
		Return(nil).Once()

	report, err := suite.service.RepairAll(suite.ctx, suite.user)

	suite.Require().NoError(err)
	suite.Equal(2, report.Count)
	suite.Equal(1, report.Skipped)
	suite.Require().Len(repaired, 2)
	for _, t := range repaired {
		suite.True(t.Date.Equal(good))
		suite.Equal(2, t.Month)
		suite.Equal(2025, t.Year)
	}
}

func (suite *MaintenanceServiceTestSuite) TestRepairAll_SecondRunFindsNothing() {
	day := dates.Canonical(2025, time.May, 2)
	txns := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			UserID:        suite.user.UserID,
			Date:          day,
			Month:         dates.Month0(day),
			Year:          dates.Year(day),
		},
	}

	suite.backend.txRepo.On("ListTransactions", suite.ctx, suite.user.UserID).Return(txns, nil).Once()

	report, err := suite.service.RepairAll(suite.ctx, suite.user)

	suite.Require().NoError(err)
	suite.Equal(0, report.Count)
	suite.Equal(0, report.Skipped)
	suite.backend.txRepo.AssertNotCalled(suite.T(), "UpdateTransactions", mock.Anything, mock.Anything)
}

func (suite *MaintenanceServiceTestSuite) TestLinkLegacyRecurrences() {
	anchor := dates.Canonical(2025, time.January, 10)
	legacy := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.user.UserID,
		Description:   "Internet",
		Amount:        decimal.NewFromFloat(99.90),
		Date:          anchor,
		Month:         dates.Month0(anchor),
		Year:          dates.Year(anchor),
		Type:          domain.Expense,
		PaymentStatus: domain.PaymentStatusPaid,
		IsRecurring:   true,
	}
	// A hand-entered copy two months out that should join the series
	// (description matches after trimming).
	march := dates.AddMonths(anchor, 2)
	handEntered := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.user.UserID,
		Description:   "  Internet ",
		Amount:        decimal.NewFromFloat(99.90),
		Date:          march,
		Month:         dates.Month0(march),
		Year:          dates.Year(march),
		Type:          domain.Expense,
		PaymentStatus: domain.PaymentStatusPending,
	}
	// Same month and description but an income, so it must not be adopted.
	decoy := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.user.UserID,
		Description:   "Internet",
		Amount:        decimal.NewFromFloat(50),
		Date:          march,
		Month:         dates.Month0(march),
		Year:          dates.Year(march),
		Type:          domain.Income,
		PaymentStatus: domain.PaymentStatusPending,
	}

	suite.backend.txRepo.On("ListTransactions", suite.ctx, suite.user.UserID).
		Return([]domain.Transaction{legacy, handEntered, decoy}, nil).Once()

	var updated, created []domain.Transaction
	suite.backend.txRepo.On("UpdateTransactions", suite.ctx, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) { updated = args.Get(1).([]domain.Transaction) }).
		Return(nil).Once()
	suite.backend.txRepo.On("SaveTransactions", suite.ctx, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) { created = args.Get(1).([]domain.Transaction) }).
		Return(nil).Once()

	report, err := suite.service.LinkLegacyRecurrences(suite.ctx, suite.user)

	suite.Require().NoError(err)
	suite.Equal(1, report.Legacy)
	suite.Equal(1, report.Updated)
	suite.Equal(11, report.Created)

	// The legacy anchor plus the adopted copy are rewritten with the new
	// series id.
	suite.Require().Len(updated, 2)
	suite.Require().NotNil(updated[0].RecurrenceID)
	seriesID := *updated[0].RecurrenceID
	suite.Equal(legacy.TransactionID, updated[0].TransactionID)
	suite.Equal(handEntered.TransactionID, updated[1].TransactionID)
	suite.Require().NotNil(updated[1].RecurrenceID)
	suite.Equal(seriesID, *updated[1].RecurrenceID)
	suite.True(updated[1].IsRecurring)

	suite.Require().Len(created, 11)
	for _, t := range created {
		suite.Require().NotNil(t.RecurrenceID)
		suite.Equal(seriesID, *t.RecurrenceID)
		suite.Equal(domain.PaymentStatusPending, t.PaymentStatus)
		suite.Equal("Internet", t.Description)
		suite.True(t.IsRecurring)
	}
}

func (suite *MaintenanceServiceTestSuite) TestLinkLegacyRecurrences_NothingToLink() {
	recurrenceID := uuid.NewString()
	day := dates.Canonical(2025, time.April, 1)
	txns := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			UserID:        suite.user.UserID,
			Description:   "Rent",
			Date:          day,
			Month:         dates.Month0(day),
			Year:          dates.Year(day),
			Type:          domain.Expense,
			IsRecurring:   true,
			RecurrenceID:  &recurrenceID,
		},
	}

	suite.backend.txRepo.On("ListTransactions", suite.ctx, suite.user.UserID).Return(txns, nil).Once()

	report, err := suite.service.LinkLegacyRecurrences(suite.ctx, suite.user)

	suite.Require().NoError(err)
	suite.Equal(0, report.Legacy)
	suite.Equal(0, report.Updated)
	suite.Equal(0, report.Created)
	suite.backend.txRepo.AssertNotCalled(suite.T(), "UpdateTransactions", mock.Anything, mock.Anything)
	suite.backend.txRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func TestMaintenanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceTestSuite))
}
