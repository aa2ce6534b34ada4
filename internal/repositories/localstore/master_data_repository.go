package localstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
)

type localAccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepository = (*localAccountRepository)(nil)

func (r *localAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.AccountID]; exists {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
	}
	r.store.accounts[account.AccountID] = account
	return r.store.persist()
}

func (r *localAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return &a, nil
}

func (r *localAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := []domain.Account{}
	for _, a := range r.store.accounts {
		if a.UserID == userID && a.IsActive {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

func (r *localAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.AccountID]; !ok {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrNotFound)
	}
	r.store.accounts[account.AccountID] = account
	return r.store.persist()
}

func (r *localAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.accounts[accountID]
	if !ok || !a.IsActive {
		return fmt.Errorf("account %s not found or already inactive: %w", accountID, apperrors.ErrNotFound)
	}
	a.IsActive = false
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	r.store.accounts[accountID] = a
	return r.store.persist()
}

func (r *localAccountRepository) ReplaceAllAccounts(ctx context.Context, userID string, accounts []domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, a := range r.store.accounts {
		if a.UserID == userID {
			delete(r.store.accounts, id)
		}
	}
	for _, a := range accounts {
		r.store.accounts[a.AccountID] = a
	}
	return r.store.persist()
}

type localCategoryRepository struct {
	store *Store
}

var _ portsrepo.CategoryRepository = (*localCategoryRepository)(nil)

func (r *localCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.categories[category.CategoryID]; exists {
		return fmt.Errorf("category %s: %w", category.CategoryID, apperrors.ErrDuplicate)
	}
	r.store.categories[category.CategoryID] = category
	return r.store.persist()
}

func (r *localCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[categoryID]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}
	return &c, nil
}

func (r *localCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := []domain.Category{}
	for _, c := range r.store.categories {
		if c.UserID == userID && c.IsActive {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *localCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.CategoryID]; !ok {
		return fmt.Errorf("category %s: %w", category.CategoryID, apperrors.ErrNotFound)
	}
	r.store.categories[category.CategoryID] = category
	return r.store.persist()
}

func (r *localCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.categories[categoryID]
	if !ok || !c.IsActive {
		return fmt.Errorf("category %s not found or already inactive: %w", categoryID, apperrors.ErrNotFound)
	}
	c.IsActive = false
	c.LastUpdatedAt = now
	c.LastUpdatedBy = userID
	r.store.categories[categoryID] = c
	return r.store.persist()
}

func (r *localCategoryRepository) ReplaceAllCategories(ctx context.Context, userID string, categories []domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, c := range r.store.categories {
		if c.UserID == userID {
			delete(r.store.categories, id)
		}
	}
	for _, c := range categories {
		r.store.categories[c.CategoryID] = c
	}
	return r.store.persist()
}
