package services

import (
	"context"
	"fmt"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
	portssvc "github.com/financas-app/financas_backend/internal/core/ports/services"
)

// storeSelector resolves which Store backend serves a call. The decision is
// made per call from the authenticated user's capability flag, never from
// global state, so a user can be flipped between backends without restarts.
type storeSelector struct {
	cloud      *portsrepo.Provider
	local      *portsrepo.Provider
	cloudCheck portsrepo.AvailabilityChecker
}

// resolve picks the backend for the user. For the cloud backend it pings
// first so mutations fail with ErrConnectivity before any write is attempted.
func (s storeSelector) resolve(ctx context.Context, user domain.AuthUser) (*portsrepo.Provider, error) {
	if !user.CanSync {
		return s.local, nil
	}
	if s.cloudCheck != nil {
		if err := s.cloudCheck.CheckAvailability(ctx); err != nil {
			return nil, fmt.Errorf("%w: cloud store unreachable: %v", apperrors.ErrConnectivity, err)
		}
	}
	return s.cloud, nil
}

// NewServiceContainer wires every service against the two store backends.
// userRepo always points at the cloud store; profile data is never local.
func NewServiceContainer(
	cloud *portsrepo.Provider,
	local *portsrepo.Provider,
	cloudCheck portsrepo.AvailabilityChecker,
	userRepo portsrepo.UserRepository,
) *portssvc.ServiceContainer {
	sel := storeSelector{cloud: cloud, local: local, cloudCheck: cloudCheck}
	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(sel),
		Balance:     NewBalanceService(sel),
		Maintenance: NewMaintenanceService(sel),
		Sync:        NewSyncService(cloud, local, cloudCheck),
		Account:     NewAccountService(sel),
		Category:    NewCategoryService(sel),
		User:        NewUserService(userRepo),
	}
}
