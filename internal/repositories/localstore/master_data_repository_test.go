package localstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/repositories/localstore"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeactivateAccount(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Name:      "Old Card",
		Type:      domain.Credit,
		Limit:     decimal.NewFromInt(2000),
		IsActive:  true,
	}
	require.NoError(t, provider.AccountRepo.SaveAccount(ctx, account))

	now := time.Now()
	require.NoError(t, provider.AccountRepo.DeactivateAccount(ctx, account.AccountID, userID, now))

	// Deactivated accounts drop out of listings but stay findable by id.
	accounts, err := provider.AccountRepo.ListAccounts(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	found, err := provider.AccountRepo.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	// A second deactivation is an error, not a silent no-op.
	err = provider.AccountRepo.DeactivateAccount(ctx, account.AccountID, userID, now)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeactivateCategory_Unknown(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)

	err = provider.CategoryRepo.DeactivateCategory(context.Background(), uuid.NewString(), uuid.NewString(), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListCategories_SortedByName(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	for _, name := range []string{"Transporte", "Alimentação", "Moradia"} {
		category := domain.Category{
			CategoryID: uuid.NewString(),
			UserID:     userID,
			Name:       name,
			Type:       domain.Expense,
			IsActive:   true,
		}
		require.NoError(t, provider.CategoryRepo.SaveCategory(ctx, category))
	}

	categories, err := provider.CategoryRepo.ListCategories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Alimentação", categories[0].Name)
	assert.Equal(t, "Moradia", categories[1].Name)
	assert.Equal(t, "Transporte", categories[2].Name)
}

func TestUpdateAccount_Unknown(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)

	ghost := domain.Account{AccountID: uuid.NewString(), UserID: uuid.NewString(), Name: "Ghost"}
	err = provider.AccountRepo.UpdateAccount(context.Background(), ghost)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
