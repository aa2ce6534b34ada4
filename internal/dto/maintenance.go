package dto

import "github.com/financas-app/financas_backend/internal/core/domain"

// RepairResponse reports how many records the normalization pass rewrote.
type RepairResponse struct {
	Repaired int `json:"repaired"`
	Skipped  int `json:"skipped"`
}

// ToRepairResponse converts the repair report.
func ToRepairResponse(r *domain.RepairReport) RepairResponse {
	return RepairResponse{Repaired: r.Count, Skipped: r.Skipped}
}

// RecurrenceLinkResponse reports the legacy recurrence linking outcome.
type RecurrenceLinkResponse struct {
	Legacy  int `json:"legacy"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ToRecurrenceLinkResponse converts the link report.
func ToRecurrenceLinkResponse(r *domain.RecurrenceLinkReport) RecurrenceLinkResponse {
	return RecurrenceLinkResponse{Legacy: r.Legacy, Created: r.Created, Updated: r.Updated}
}

// SyncResponse reports per-table row counts of a store migration.
type SyncResponse struct {
	Categories   int      `json:"categories"`
	Accounts     int      `json:"accounts"`
	Transactions int      `json:"transactions"`
	Errors       []string `json:"errors,omitempty"`
}

// ToSyncResponse converts the sync report.
func ToSyncResponse(r *domain.SyncReport) SyncResponse {
	return SyncResponse{
		Categories:   r.Categories,
		Accounts:     r.Accounts,
		Transactions: r.Transactions,
		Errors:       r.Errors,
	}
}
