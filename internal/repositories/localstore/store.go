// Package localstore is the offline Store backend: in-memory tables guarded
// by a single lock, snapshotted to a JSON file after every mutation batch.
// It satisfies the same repository contracts as the Postgres backend, so the
// services cannot tell the two apart.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
)

// snapshot is the on-disk shape of the whole store.
type snapshot struct {
	Transactions map[string]domain.Transaction `json:"transactions"`
	Accounts     map[string]domain.Account     `json:"accounts"`
	Categories   map[string]domain.Category    `json:"categories"`
}

// Store holds the tables. One lock covers every table so a multi-table
// operation (cloud-to-local sync) is atomic with respect to readers.
type Store struct {
	mu   sync.RWMutex
	path string

	transactions map[string]domain.Transaction
	accounts     map[string]domain.Account
	categories   map[string]domain.Category
}

// NewStore opens the store at path, loading the previous snapshot when one
// exists. An empty path keeps the store memory-only (tests).
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:         path,
		transactions: make(map[string]domain.Transaction),
		accounts:     make(map[string]domain.Account),
		categories:   make(map[string]domain.Category),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local store %s: %w", path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode local store %s: %w", path, err)
	}
	if snap.Transactions != nil {
		s.transactions = snap.Transactions
	}
	if snap.Accounts != nil {
		s.accounts = snap.Accounts
	}
	if snap.Categories != nil {
		s.categories = snap.Categories
	}
	return s, nil
}

// persist writes the snapshot via a temp file and rename so a crash mid-write
// never corrupts the previous snapshot. Callers must hold the write lock.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}

	snap := snapshot{
		Transactions: s.transactions,
		Accounts:     s.accounts,
		Categories:   s.categories,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode local store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create local store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("failed to create local store temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write local store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close local store temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace local store snapshot: %w", err)
	}
	return nil
}

// NewRepositoryProvider bundles the local repositories into the Store
// contract the services consume.
func NewRepositoryProvider(store *Store) *portsrepo.Provider {
	return &portsrepo.Provider{
		TransactionRepo: &localTransactionRepository{store: store},
		AccountRepo:     &localAccountRepository{store: store},
		CategoryRepo:    &localCategoryRepository{store: store},
	}
}
