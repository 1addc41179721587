// AngelaMos | 2026
// service.go

package lease

import (
	"context"

	"github.com/amontalvo1020/rentalspro/internal/user"
)

type TenantLister interface {
	LeaseTenants(ctx context.Context, leaseID int64) ([]user.User, error)
}

type Service struct {
	repo    Repository
	tenants TenantLister
}

func NewService(repo Repository, tenants TenantLister) *Service {
	return &Service{repo: repo, tenants: tenants}
}

func (s *Service) GetLease(ctx context.Context, id int64) (*Lease, []user.User, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	tenants, err := s.tenants.LeaseTenants(ctx, l.ID)
	if err != nil {
		return nil, nil, err
	}

	return l, tenants, nil
}

// GetActiveLease returns the active lease for key with its active tenants.
func (s *Service) GetActiveLease(ctx context.Context, key Key) (*Lease, []user.User, error) {
	l, err := s.repo.GetActive(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	tenants, err := s.tenants.LeaseTenants(ctx, l.ID)
	if err != nil {
		return nil, nil, err
	}

	return l, tenants, nil
}

func (s *Service) DuplicateActive(ctx context.Context) ([]DuplicateActive, error) {
	return s.repo.ListDuplicateActive(ctx)
}
