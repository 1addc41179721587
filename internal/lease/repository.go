// AngelaMos | 2026
// repository.go

package lease

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Lease, error)
	GetActive(ctx context.Context, key Key) (*Lease, error)
	Create(ctx context.Context, l *Lease) error
	Update(ctx context.Context, l *Lease) error
	ListDuplicateActive(ctx context.Context) ([]DuplicateActive, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const leaseColumns = `id, property_id, unit_id, start_date, end_date, rent_amount,
		       security_deposit, pet_deposit, created_date, updated_date, active`

func (r *repository) GetByID(ctx context.Context, id int64) (*Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1`

	var l Lease
	err := r.db.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lease: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get lease", err)
	}

	return &l, nil
}

// GetActive returns the single active lease for key. It fails with
// ErrNotFound when there is none and ErrConflict when there are several.
func (r *repository) GetActive(ctx context.Context, key Key) (*Lease, error) {
	var (
		query string
		arg   int64
	)

	if key.UnitID != nil {
		query = `SELECT ` + leaseColumns + `
			FROM leases
			WHERE unit_id = $1 AND active = TRUE
			ORDER BY id
			LIMIT 2`
		arg = *key.UnitID
	} else {
		query = `SELECT ` + leaseColumns + `
			FROM leases
			WHERE property_id = $1 AND unit_id IS NULL AND active = TRUE
			ORDER BY id
			LIMIT 2`
		arg = key.PropertyID
	}

	var leases []Lease
	if err := r.db.SelectContext(ctx, &leases, query, arg); err != nil {
		return nil, core.StorageErr("get active lease", err)
	}

	switch len(leases) {
	case 0:
		return nil, fmt.Errorf("get active lease for %s: %w", key, core.ErrNotFound)
	case 1:
		return &leases[0], nil
	default:
		return nil, fmt.Errorf(
			"get active lease for %s: leases %d and %d are both active: %w",
			key, leases[0].ID, leases[1].ID, core.ErrConflict,
		)
	}
}

func (r *repository) Create(ctx context.Context, l *Lease) error {
	query := `
		INSERT INTO leases (
			property_id, unit_id, start_date, end_date, rent_amount,
			security_deposit, pet_deposit, created_date, active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING id`

	err := r.db.GetContext(ctx, &l.ID, query,
		l.PropertyID,
		l.UnitID,
		l.StartDate,
		l.EndDate,
		l.RentAmount,
		l.SecurityDeposit,
		l.PetDeposit,
		l.CreatedDate,
		l.Active,
	)
	if err != nil {
		return core.StorageErr("create lease", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, l *Lease) error {
	query := `
		UPDATE leases
		SET start_date = $2, end_date = $3, rent_amount = $4,
		    security_deposit = $5, pet_deposit = $6, active = $7,
		    updated_date = NOW()
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.GetContext(ctx, &l.UpdatedDate, query,
		l.ID,
		l.StartDate,
		l.EndDate,
		l.RentAmount,
		l.SecurityDeposit,
		l.PetDeposit,
		l.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update lease: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.StorageErr("update lease", err)
	}

	return nil
}

type leaseSlot struct {
	ID         int64  `db:"id"`
	PropertyID int64  `db:"property_id"`
	UnitID     *int64 `db:"unit_id"`
}

// ListDuplicateActive reports every key holding more than one active lease.
func (r *repository) ListDuplicateActive(ctx context.Context) ([]DuplicateActive, error) {
	query := `
		SELECT l.id, l.property_id, l.unit_id
		FROM leases l
		WHERE l.active = TRUE AND EXISTS (
			SELECT 1 FROM leases o
			WHERE o.active = TRUE AND o.id <> l.id AND (
				(l.unit_id IS NULL AND o.unit_id IS NULL AND o.property_id = l.property_id)
				OR (l.unit_id IS NOT NULL AND o.unit_id = l.unit_id)
			)
		)
		ORDER BY l.property_id, l.unit_id NULLS FIRST, l.id`

	var slots []leaseSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, core.StorageErr("list duplicate active leases", err)
	}

	var out []DuplicateActive
	for _, s := range slots {
		key := Key{PropertyID: s.PropertyID, UnitID: s.UnitID}
		if n := len(out); n > 0 && sameSlot(out[n-1].Key, key) {
			out[n-1].LeaseIDs = append(out[n-1].LeaseIDs, s.ID)
			continue
		}
		out = append(out, DuplicateActive{Key: key, LeaseIDs: []int64{s.ID}})
	}

	return out, nil
}

func sameSlot(a, b Key) bool {
	if a.UnitID == nil || b.UnitID == nil {
		return a.UnitID == nil && b.UnitID == nil && a.PropertyID == b.PropertyID
	}
	return *a.UnitID == *b.UnitID
}
