package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portssvc "github.com/financas-app/financas_backend/internal/core/ports/services"
	"github.com/financas-app/financas_backend/internal/dto"
	"github.com/financas-app/financas_backend/internal/handlers"
	"github.com/financas-app/financas_backend/internal/utils"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/financas-app/financas_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, user domain.AuthUser, req dto.CreateTransactionRequest) ([]domain.Transaction, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, user domain.AuthUser, transactionID string, req dto.UpdateTransactionRequest, scope domain.UpdateScope) error {
	args := m.Called(ctx, user, transactionID, req, scope)
	return args.Error(0)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, user domain.AuthUser, transactionID string, scope domain.UpdateScope) error {
	args := m.Called(ctx, user, transactionID, scope)
	return args.Error(0)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, user domain.AuthUser, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, user, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactionsByPeriod(ctx context.Context, user domain.AuthUser, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, user, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Summary(ctx context.Context, user domain.AuthUser, periodStart, periodEnd time.Time) (*domain.BalanceSummary, error) {
	args := m.Called(ctx, user, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSummary), args.Error(1)
}
func (m *MockBalanceService) MonthlyComparison(ctx context.Context, user domain.AuthUser, ref time.Time) ([]domain.MonthTotals, error) {
	args := m.Called(ctx, user, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthTotals), args.Error(1)
}
func (m *MockBalanceService) CloseMonth(ctx context.Context, user domain.AuthUser, req dto.CloseMonthRequest) (*domain.CloseMonthResult, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseMonthResult), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock MaintenanceService ---
type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) RepairAll(ctx context.Context, user domain.AuthUser) (*domain.RepairReport, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepairReport), args.Error(1)
}
func (m *MockMaintenanceService) LinkLegacyRecurrences(ctx context.Context, user domain.AuthUser) (*domain.RecurrenceLinkReport, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurrenceLinkReport), args.Error(1)
}

var _ portssvc.MaintenanceSvcFacade = (*MockMaintenanceService)(nil)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) MigrateLocalToCloud(ctx context.Context, user domain.AuthUser) (*domain.SyncReport, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncReport), args.Error(1)
}
func (m *MockSyncService) SyncCloudToLocal(ctx context.Context, user domain.AuthUser) (*domain.SyncReport, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncReport), args.Error(1)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, user domain.AuthUser, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, user, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, user domain.AuthUser) ([]domain.Account, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, user domain.AuthUser, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, user domain.AuthUser, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, user, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, user domain.AuthUser, accountID string) error {
	args := m.Called(ctx, user, accountID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, user domain.AuthUser, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, user, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ListCategories(ctx context.Context, user domain.AuthUser) ([]domain.Category, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, user domain.AuthUser, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, user domain.AuthUser, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, user, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) DeactivateCategory(ctx context.Context, user domain.AuthUser, categoryID string) error {
	args := m.Called(ctx, user, categoryID)
	return args.Error(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockTransaction *MockTransactionService
	jwtSecret       string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransaction = new(MockTransactionService)
	container := &portssvc.ServiceContainer{
		Transaction: suite.mockTransaction,
		Balance:     new(MockBalanceService),
		Maintenance: new(MockMaintenanceService),
		Sync:        new(MockSyncService),
		Account:     new(MockAccountService),
		Category:    new(MockCategoryService),
		User:        new(MockUserService),
	}

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "financas-test",
		RateLimit:         "100-M",
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string, canSync bool) string {
	token, _, err := utils.GenerateJWT(userID, canSync, suite.jwtSecret, time.Hour, "financas-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	day := dates.Canonical(2025, time.March, 10)
	created := []domain.Transaction{{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Description:   "Groceries",
		Amount:        decimal.NewFromFloat(99.90),
		Date:          day,
		Month:         dates.Month0(day),
		Year:          dates.Year(day),
		Type:          domain.Expense,
		PaymentStatus: domain.PaymentStatusPending,
	}}

	suite.mockTransaction.On("CreateTransaction",
		mock.Anything,
		domain.AuthUser{UserID: userID, CanSync: true},
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Description == "Groceries" && req.Date == "2025-03-10"
		}),
	).Return(created, nil).Once()

	body := map[string]any{
		"description": "Groceries",
		"amount":      "99.90",
		"date":        "2025-03-10",
		"type":        "expense",
		"categoryID":  uuid.NewString(),
		"accountID":   uuid.NewString(),
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", suite.generateTestToken(userID, true), body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("Groceries", resp.Transactions[0].Description)
	suite.Equal("2025-03-10", resp.Transactions[0].Date)
	suite.mockTransaction.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_RejectsBadDate() {
	body := map[string]any{
		"description": "Groceries",
		"amount":      "10",
		"date":        "10/03/2025",
		"type":        "expense",
		"categoryID":  uuid.NewString(),
		"accountID":   uuid.NewString(),
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", suite.generateTestToken(uuid.NewString(), false), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransaction.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ConnectivityMapsTo503() {
	userID := uuid.NewString()
	suite.mockTransaction.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: cloud store unreachable", apperrors.ErrConnectivity)).Once()

	body := map[string]any{
		"description": "Groceries",
		"amount":      "10",
		"date":        "2025-03-10",
		"type":        "expense",
		"categoryID":  uuid.NewString(),
		"accountID":   uuid.NewString(),
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", suite.generateTestToken(userID, true), body)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	from, to := dates.MonthWindow(dates.Canonical(2025, time.March, 1))

	suite.mockTransaction.On("ListTransactionsByPeriod",
		mock.Anything,
		domain.AuthUser{UserID: userID},
		from, to,
	).Return([]domain.Transaction{}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?year=2025&month0=2", suite.generateTestToken(userID, false), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTransaction.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_ScopeFromQuery() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockTransaction.On("UpdateTransaction",
		mock.Anything,
		domain.AuthUser{UserID: userID},
		transactionID,
		mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
			return req.Description != nil && *req.Description == "New name"
		}),
		domain.ScopeFuture,
	).Return(nil).Once()

	body := map[string]any{"description": "New name"}
	w := suite.doJSON(http.MethodPut, "/api/v1/transactions/"+transactionID+"?scope=future", suite.generateTestToken(userID, false), body)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTransaction.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockTransaction.On("DeleteTransaction",
		mock.Anything,
		domain.AuthUser{UserID: userID},
		transactionID,
		domain.ScopeSingle,
	).Return(fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/transactions/"+transactionID, suite.generateTestToken(userID, false), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMissingToken_Unauthorized() {
	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?year=2025&month0=2", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransaction.AssertNotCalled(suite.T(), "ListTransactionsByPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestExpiredToken_SignalsReauth() {
	token, _, err := utils.GenerateJWT(uuid.NewString(), false, suite.jwtSecret, -time.Minute, "financas-test")
	suite.Require().NoError(err)

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?year=2025&month0=2", token, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("auth_expired", body["code"])
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
