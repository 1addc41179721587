// AngelaMos | 2026
// repository.go

package unit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Unit, error)
	ListByProperty(ctx context.Context, propertyID int64, active *bool) ([]Unit, error)
	ListByProperties(ctx context.Context, propertyIDs []int64) ([]Unit, error)
	Create(ctx context.Context, u *Unit) error
	CreateBatch(ctx context.Context, units []Unit) error
	Update(ctx context.Context, u *Unit) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const unitColumns = `id, property_id, unit_number, floor, bedrooms, bathrooms,
		       square_feet, utilities, furnished, parking_space,
		       status_id, payment_status_id, created_date, updated_date, active`

func (r *repository) GetByID(ctx context.Context, id int64) (*Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`

	var u Unit
	err := r.db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get unit: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get unit", err)
	}

	return &u, nil
}

// ListByProperty returns the property's units. A nil active returns all of
// them regardless of the active flag.
func (r *repository) ListByProperty(
	ctx context.Context,
	propertyID int64,
	active *bool,
) ([]Unit, error) {
	query := `SELECT ` + unitColumns + `
		FROM units
		WHERE property_id = $1 AND ($2::boolean IS NULL OR active = $2)
		ORDER BY unit_number, id`

	var units []Unit
	if err := r.db.SelectContext(ctx, &units, query, propertyID, active); err != nil {
		return nil, core.StorageErr("list property units", err)
	}

	return units, nil
}

func (r *repository) ListByProperties(
	ctx context.Context,
	propertyIDs []int64,
) ([]Unit, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + unitColumns + `
		FROM units
		WHERE property_id = ANY($1)
		ORDER BY property_id, unit_number, id`

	var units []Unit
	if err := r.db.SelectContext(ctx, &units, query, propertyIDs); err != nil {
		return nil, core.StorageErr("list units", err)
	}

	return units, nil
}

func (r *repository) Create(ctx context.Context, u *Unit) error {
	query := `
		INSERT INTO units (
			property_id, unit_number, floor, bedrooms, bathrooms,
			square_feet, utilities, furnished, parking_space,
			status_id, payment_status_id, created_date, active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING id`

	err := r.db.GetContext(ctx, &u.ID, query,
		u.PropertyID,
		u.UnitNumber,
		u.Floor,
		u.Bedrooms,
		u.Bathrooms,
		u.SquareFeet,
		u.Utilities,
		u.Furnished,
		u.ParkingSpace,
		u.StatusID,
		u.PaymentStatusID,
		u.CreatedDate,
		u.Active,
	)
	if err != nil {
		return r.writeErr("create unit", err)
	}

	return nil
}

// CreateBatch inserts all units with a single multi-row INSERT and sets
// each unit's generated ID.
func (r *repository) CreateBatch(ctx context.Context, units []Unit) error {
	if len(units) == 0 {
		return nil
	}

	query := `
		INSERT INTO units (
			property_id, unit_number, floor, bedrooms, bathrooms,
			square_feet, utilities, furnished, parking_space,
			status_id, payment_status_id, created_date, active
		) VALUES (
			:property_id, :unit_number, :floor, :bedrooms, :bathrooms,
			:square_feet, :utilities, :furnished, :parking_space,
			:status_id, :payment_status_id, :created_date, :active
		)
		RETURNING id`

	ids, err := core.NamedInsertIDs(ctx, r.db, query, units)
	if err != nil {
		return r.writeErr("create units", err)
	}
	if len(ids) != len(units) {
		return core.StorageErr("create units",
			fmt.Errorf("inserted %d rows, got %d ids", len(units), len(ids)))
	}
	for i := range units {
		units[i].ID = ids[i]
	}

	return nil
}

func (r *repository) Update(ctx context.Context, u *Unit) error {
	query := `
		UPDATE units
		SET unit_number = $2, floor = $3, bedrooms = $4, bathrooms = $5,
		    square_feet = $6, utilities = $7, furnished = $8,
		    parking_space = $9, status_id = $10, payment_status_id = $11,
		    active = $12, updated_date = NOW()
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.GetContext(ctx, &u.UpdatedDate, query,
		u.ID,
		u.UnitNumber,
		u.Floor,
		u.Bedrooms,
		u.Bathrooms,
		u.SquareFeet,
		u.Utilities,
		u.Furnished,
		u.ParkingSpace,
		u.StatusID,
		u.PaymentStatusID,
		u.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update unit: %w", core.ErrNotFound)
	}
	if err != nil {
		return r.writeErr("update unit", err)
	}

	return nil
}

func (r *repository) writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, core.ErrDuplicateKey)
		case "23503":
			return fmt.Errorf("%s: property does not exist: %w", op, core.ErrNotFound)
		}
	}
	return core.StorageErr(op, err)
}
