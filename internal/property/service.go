// AngelaMos | 2026
// service.go

package property

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/amontalvo1020/rentalspro/internal/company"
	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/unit"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

type Service struct {
	db        *sqlx.DB
	repo      Repository
	units     unit.Repository
	users     user.Repository
	companies company.Repository
	now       func() time.Time
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	units unit.Repository,
	users user.Repository,
	companies company.Repository,
) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		units:     units,
		users:     users,
		companies: companies,
		now:       time.Now,
	}
}

// GetProperty loads the property with its owner and company. Units are only
// attached for property types that have them.
func (s *Service) GetProperty(ctx context.Context, id int64) (*Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Detail{Property: p}

	if p.OwnerID != nil {
		owner, err := s.users.GetByID(ctx, *p.OwnerID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		d.Owner = owner
	}

	if p.CompanyID != nil {
		c, err := s.companies.GetByID(ctx, *p.CompanyID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		d.Company = c
	}

	if p.TypeID.HasUnits() {
		d.Units, err = s.units.ListByProperty(ctx, p.ID, nil)
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Search returns matching properties, each with its units.
func (s *Service) Search(ctx context.Context, params SearchParams) ([]Detail, error) {
	props, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return []Detail{}, nil
	}

	ids := make([]int64, 0, len(props))
	for i := range props {
		ids = append(ids, props[i].ID)
	}

	units, err := s.units.ListByProperties(ctx, ids)
	if err != nil {
		return nil, err
	}

	byProperty := make(map[int64][]unit.Unit, len(props))
	for _, u := range units {
		byProperty[u.PropertyID] = append(byProperty[u.PropertyID], u)
	}

	out := make([]Detail, 0, len(props))
	for i := range props {
		out = append(out, Detail{
			Property: &props[i],
			Units:    byProperty[props[i].ID],
		})
	}

	return out, nil
}

// CreateProperty inserts the property and its units in one transaction.
func (s *Service) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*Detail, error) {
	exists, err := s.repo.AddressExists(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create property: address %q already exists: %w", req.Address, core.ErrConflict)
	}

	now := s.now().UTC()
	p := req.toProperty(now)

	units := make([]unit.Unit, 0, len(req.Units))
	for _, ur := range req.Units {
		units = append(units, ur.ToUnit(now))
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := NewRepository(tx).Create(ctx, &p); err != nil {
			return err
		}

		for i := range units {
			units[i].PropertyID = p.ID
		}

		return unit.NewRepository(tx).CreateBatch(ctx, units)
	})
	if err != nil {
		return nil, err
	}

	return &Detail{Property: &p, Units: units}, nil
}

// UpdateProperty applies only the fields that differ from the stored row and
// skips the write entirely when nothing changed.
func (s *Service) UpdateProperty(
	ctx context.Context,
	id int64,
	req UpdatePropertyRequest,
) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	setString := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	setID := func(dst **int64, src *int64) {
		if src != nil && (*dst == nil || **dst != *src) {
			v := *src
			*dst = &v
			changed = true
		}
	}
	setDecimal := func(dst *decimal.NullDecimal, src *decimal.Decimal) {
		if src != nil && (!dst.Valid || !dst.Decimal.Equal(*src)) {
			*dst = decimal.NewNullDecimal(*src)
			changed = true
		}
	}

	if req.Address != nil && !strings.EqualFold(strings.TrimSpace(*req.Address), strings.TrimSpace(p.Address)) {
		exists, err := s.repo.AddressExists(ctx, *req.Address)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("update property: address %q already exists: %w", *req.Address, core.ErrConflict)
		}
	}

	setID(&p.OwnerID, req.OwnerID)
	setID(&p.CompanyID, req.CompanyID)
	setString(&p.Address, req.Address)
	setString(&p.City, req.City)
	setString(&p.State, req.State)
	setString(&p.ZipCode, req.ZipCode)
	setDecimal(&p.Bedrooms, req.Bedrooms)
	setDecimal(&p.Bathrooms, req.Bathrooms)
	setDecimal(&p.PurchasePrice, req.PurchasePrice)

	if req.Amenities != nil && (p.Amenities == nil || *p.Amenities != *req.Amenities) {
		v := *req.Amenities
		p.Amenities = &v
		changed = true
	}
	if req.TypeID != nil && p.TypeID != *req.TypeID {
		p.TypeID = *req.TypeID
		changed = true
	}
	if req.Size != nil && (p.Size == nil || *p.Size != *req.Size) {
		v := *req.Size
		p.Size = &v
		changed = true
	}
	if req.PurchaseDate != nil && !p.PurchaseDate.Equal(*req.PurchaseDate) {
		p.PurchaseDate = *req.PurchaseDate
		changed = true
	}
	if req.Active != nil && p.Active != *req.Active {
		p.Active = *req.Active
		changed = true
	}

	if !changed {
		return p, nil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
