// AngelaMos | 2026
// service.go

package unit

import (
	"context"
	"fmt"
	"time"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Service struct {
	repo  Repository
	cache Cache
	now   func() time.Time
}

func NewService(repo Repository, cache Cache) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// GetUnit reads through the cache.
func (s *Service) GetUnit(ctx context.Context, id int64) (*Unit, error) {
	if u, ok := s.cache.Get(ctx, id); ok {
		return u, nil
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, u)
	return u, nil
}

func (s *Service) ListByProperty(
	ctx context.Context,
	propertyID int64,
	active *bool,
) ([]Unit, error) {
	return s.repo.ListByProperty(ctx, propertyID, active)
}

func (s *Service) CreateUnit(ctx context.Context, req CreateUnitRequest) (*Unit, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("create unit: %w", err)
	}

	u := req.ToUnit(s.now().UTC())
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUnits inserts all units or none of them.
func (s *Service) CreateUnits(ctx context.Context, reqs []CreateUnitRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, fmt.Errorf("create units: no units given: %w", core.ErrInvalidInput)
	}

	now := s.now().UTC()
	units := make([]Unit, 0, len(reqs))
	for _, req := range reqs {
		if err := validateRequest(req); err != nil {
			return 0, fmt.Errorf("create units: %w", err)
		}
		units = append(units, req.ToUnit(now))
	}

	if err := s.repo.CreateBatch(ctx, units); err != nil {
		return 0, err
	}

	return len(units), nil
}

func validateRequest(req CreateUnitRequest) error {
	if req.PropertyID < 1 {
		return fmt.Errorf("property id is required: %w", core.ErrInvalidInput)
	}
	if req.StatusID != 0 && !req.StatusID.Valid() {
		return fmt.Errorf("unknown status id %d: %w", req.StatusID, core.ErrInvalidInput)
	}
	if req.PaymentStatusID != 0 && !req.PaymentStatusID.Valid() {
		return fmt.Errorf("unknown payment status id %d: %w", req.PaymentStatusID, core.ErrInvalidInput)
	}
	return nil
}
