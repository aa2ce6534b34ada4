package localstore_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/repositories/localstore"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTxn(userID string, day time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Description:   "Coffee",
		Amount:        decimal.NewFromFloat(8.50),
		Date:          day,
		Month:         dates.Month0(day),
		Year:          dates.Year(day),
		Type:          domain.Expense,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func TestSaveAndFindTransaction(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	txn := testTxn(userID, dates.Canonical(2025, time.March, 1))
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{txn}))

	found, err := provider.TransactionRepo.FindTransactionByID(ctx, txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, txn.TransactionID, found.TransactionID)
	assert.True(t, found.Amount.Equal(txn.Amount))

	_, err = provider.TransactionRepo.FindTransactionByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveTransactions_RejectsDuplicateWithoutPartialWrite(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	existing := testTxn(userID, dates.Canonical(2025, time.March, 1))
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{existing}))

	fresh := testTxn(userID, dates.Canonical(2025, time.March, 2))
	err = provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{fresh, existing})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	// The fresh record must not have been inserted by the failed batch.
	_, err = provider.TransactionRepo.FindTransactionByID(ctx, fresh.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateTransactions_MissingRecordFailsWholeBatch(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	txn := testTxn(userID, dates.Canonical(2025, time.March, 1))
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{txn}))

	changed := txn
	changed.Description = "Espresso"
	ghost := testTxn(userID, dates.Canonical(2025, time.March, 2))

	err = provider.TransactionRepo.UpdateTransactions(ctx, []domain.Transaction{changed, ghost})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	// The existing record kept its old shape.
	found, err := provider.TransactionRepo.FindTransactionByID(ctx, txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", found.Description)
}

func TestUpdateTransactions_OverlappingEditsResolveToOneWriter(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	txn := testTxn(userID, dates.Canonical(2025, time.March, 1))
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{txn}))

	espresso := txn
	espresso.Description = "Espresso"
	espresso.Amount = decimal.NewFromFloat(9.75)
	latte := txn
	latte.Description = "Latte"
	latte.Amount = decimal.NewFromFloat(14.00)

	for i := 0; i < 100; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		for _, write := range []domain.Transaction{espresso, latte} {
			write := write
			go func() {
				defer wg.Done()
				assert.NoError(t, provider.TransactionRepo.UpdateTransactions(ctx, []domain.Transaction{write}))
			}()
		}
		wg.Wait()

		// Last write wins, and it wins whole: the stored record matches one
		// writer's full edit, never a field-level mix of the two.
		found, err := provider.TransactionRepo.FindTransactionByID(ctx, txn.TransactionID)
		require.NoError(t, err)
		switch found.Description {
		case "Espresso":
			assert.True(t, found.Amount.Equal(espresso.Amount))
		case "Latte":
			assert.True(t, found.Amount.Equal(latte.Amount))
		default:
			t.Fatalf("unexpected description %q", found.Description)
		}
	}
}

func TestFindTransactionsByDateRange_IsInclusiveAndSorted(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	first := testTxn(userID, dates.Canonical(2025, time.March, 1))
	mid := testTxn(userID, dates.Canonical(2025, time.March, 15))
	last := testTxn(userID, dates.Canonical(2025, time.March, 31))
	outside := testTxn(userID, dates.Canonical(2025, time.April, 1))
	foreign := testTxn(uuid.NewString(), dates.Canonical(2025, time.March, 15))
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{last, outside, first, foreign, mid}))

	from, to := dates.MonthWindow(dates.Canonical(2025, time.March, 10))
	got, err := provider.TransactionRepo.FindTransactionsByDateRange(ctx, userID, from, to)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Both window edges are included and rows come back date ascending.
	assert.Equal(t, first.TransactionID, got[0].TransactionID)
	assert.Equal(t, mid.TransactionID, got[1].TransactionID)
	assert.Equal(t, last.TransactionID, got[2].TransactionID)
}

func TestFindTransactionsByInstallmentID_SortsByNumber(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	installmentID := uuid.NewString()
	var batch []domain.Transaction
	// Inserted out of order, and parcel 3's date was dragged before the rest.
	for _, num := range []int{3, 1, 2} {
		txn := testTxn(userID, dates.AddMonths(dates.Canonical(2025, time.May, 5), num-1))
		if num == 3 {
			txn.Date = dates.Canonical(2025, time.April, 1)
		}
		txn.InstallmentID = &installmentID
		txn.InstallmentNumber = num
		txn.TotalInstallments = 3
		batch = append(batch, txn)
	}
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, batch))

	got, err := provider.TransactionRepo.FindTransactionsByInstallmentID(ctx, userID, installmentID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, txn := range got {
		assert.Equal(t, i+1, txn.InstallmentNumber)
	}
}

func TestDeleteTransactions_IgnoresAbsentAndForeignIDs(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	mine := testTxn(userID, dates.Canonical(2025, time.March, 1))
	theirs := testTxn(uuid.NewString(), dates.Canonical(2025, time.March, 1))
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{mine, theirs}))

	err = provider.TransactionRepo.DeleteTransactions(ctx, userID, []string{mine.TransactionID, theirs.TransactionID, uuid.NewString()})
	require.NoError(t, err)

	_, err = provider.TransactionRepo.FindTransactionByID(ctx, mine.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	// Another user's record survives even when its id is named.
	_, err = provider.TransactionRepo.FindTransactionByID(ctx, theirs.TransactionID)
	assert.NoError(t, err)
}

func TestReplaceAllTransactions_ScopedToUser(t *testing.T) {
	store, err := localstore.NewStore("")
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)
	ctx := context.Background()

	userID := uuid.NewString()
	old := testTxn(userID, dates.Canonical(2025, time.January, 1))
	foreign := testTxn(uuid.NewString(), dates.Canonical(2025, time.January, 1))
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{old, foreign}))

	incoming := testTxn(userID, dates.Canonical(2025, time.February, 1))
	require.NoError(t, provider.TransactionRepo.ReplaceAllTransactions(ctx, userID, []domain.Transaction{incoming}))

	mine, err := provider.TransactionRepo.ListTransactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, incoming.TransactionID, mine[0].TransactionID)

	_, err = provider.TransactionRepo.FindTransactionByID(ctx, foreign.TransactionID)
	assert.NoError(t, err)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	ctx := context.Background()

	store, err := localstore.NewStore(path)
	require.NoError(t, err)
	provider := localstore.NewRepositoryProvider(store)

	userID := uuid.NewString()
	txn := testTxn(userID, dates.Canonical(2025, time.March, 1))
	account := domain.Account{AccountID: uuid.NewString(), UserID: userID, Name: "Wallet", Type: domain.Wallet, IsActive: true}
	category := domain.Category{CategoryID: uuid.NewString(), UserID: userID, Name: "Food", Type: domain.Expense, IsActive: true}
	require.NoError(t, provider.TransactionRepo.SaveTransactions(ctx, []domain.Transaction{txn}))
	require.NoError(t, provider.AccountRepo.SaveAccount(ctx, account))
	require.NoError(t, provider.CategoryRepo.SaveCategory(ctx, category))

	reopened, err := localstore.NewStore(path)
	require.NoError(t, err)
	reopenedProvider := localstore.NewRepositoryProvider(reopened)

	found, err := reopenedProvider.TransactionRepo.FindTransactionByID(ctx, txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", found.Description)
	assert.True(t, found.Date.Equal(txn.Date))

	accounts, err := reopenedProvider.AccountRepo.ListAccounts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Wallet", accounts[0].Name)

	categories, err := reopenedProvider.CategoryRepo.ListCategories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Food", categories[0].Name)
}
