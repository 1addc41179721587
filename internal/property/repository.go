// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Property, error)
	AddressExists(ctx context.Context, address string) (bool, error)
	Search(ctx context.Context, params SearchParams) ([]Property, error)
	Create(ctx context.Context, p *Property) error
	Update(ctx context.Context, p *Property) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const propertyColumns = `id, owner_id, company_id, status_id, type_id, payment_status_id,
		       address, city, state, zip_code, bedrooms, bathrooms, size,
		       amenities, purchase_price, purchase_date, active,
		       created_date, updated_date`

func (r *repository) GetByID(ctx context.Context, id int64) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get property", err)
	}

	return &p, nil
}

// AddressExists reports whether an active property already has address,
// compared case-insensitively after trimming.
func (r *repository) AddressExists(ctx context.Context, address string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM properties
			WHERE LOWER(TRIM(address)) = LOWER(TRIM($1)) AND active = TRUE
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, address); err != nil {
		return false, core.StorageErr("check property address", err)
	}

	return exists, nil
}

func (r *repository) Search(ctx context.Context, params SearchParams) ([]Property, error) {
	var conditions []string
	var args []any
	argIdx := 1

	add := func(cond string, arg any) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, arg)
		argIdx++
	}

	active := true
	if params.Active != nil {
		active = *params.Active
	}
	add("active = $%d", active)

	if params.Address != nil && strings.TrimSpace(*params.Address) != "" {
		add("address ILIKE '%%' || $%d || '%%'", strings.TrimSpace(*params.Address))
	}
	if params.PaymentStatus != nil {
		add("payment_status_id = $%d", *params.PaymentStatus)
	}
	if len(params.Status) > 0 {
		add("status_id = ANY($%d)", params.Status)
	}
	if len(params.Type) > 0 {
		add("type_id = ANY($%d)", params.Type)
	}
	if params.OwnerID != nil {
		add("owner_id = $%d", *params.OwnerID)
	}
	if params.CompanyID != nil {
		add("company_id = $%d", *params.CompanyID)
	}

	query := fmt.Sprintf(`SELECT %s FROM properties WHERE %s ORDER BY id`,
		propertyColumns, strings.Join(conditions, " AND "))

	var props []Property
	if err := r.db.SelectContext(ctx, &props, query, args...); err != nil {
		return nil, core.StorageErr("search properties", err)
	}

	return props, nil
}

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			owner_id, company_id, status_id, type_id, payment_status_id,
			address, city, state, zip_code, bedrooms, bathrooms, size,
			amenities, purchase_price, purchase_date, active, created_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		RETURNING id`

	err := r.db.GetContext(ctx, &p.ID, query,
		p.OwnerID,
		p.CompanyID,
		p.StatusID,
		p.TypeID,
		p.PaymentStatusID,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Bedrooms,
		p.Bathrooms,
		p.Size,
		p.Amenities,
		p.PurchasePrice,
		p.PurchaseDate,
		p.Active,
		p.CreatedDate,
	)
	if err != nil {
		return writeErr("create property", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET owner_id = $2, company_id = $3, status_id = $4, type_id = $5,
		    payment_status_id = $6, address = $7, city = $8, state = $9,
		    zip_code = $10, bedrooms = $11, bathrooms = $12, size = $13,
		    amenities = $14, purchase_price = $15, purchase_date = $16,
		    active = $17, updated_date = NOW()
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.GetContext(ctx, &p.UpdatedDate, query,
		p.ID,
		p.OwnerID,
		p.CompanyID,
		p.StatusID,
		p.TypeID,
		p.PaymentStatusID,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Bedrooms,
		p.Bathrooms,
		p.Size,
		p.Amenities,
		p.PurchasePrice,
		p.PurchaseDate,
		p.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	if err != nil {
		return writeErr("update property", err)
	}

	return nil
}

func writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, core.ErrDuplicateKey)
		case "23503":
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, core.ErrInvalidInput)
		}
	}
	return core.StorageErr(op, err)
}
