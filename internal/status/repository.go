// AngelaMos | 2026
// repository.go

package status

import (
	"context"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Row struct {
	ID    int    `db:"id"    json:"id"`
	Name  string `db:"name"  json:"name"`
	Color string `db:"color" json:"background_color,omitempty"`
}

type TypeRow struct {
	ID   int    `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
}

// OccupancyCount is the number of active properties or units in one
// status and payment status pair. Scope is "property" or "unit".
type OccupancyCount struct {
	Scope         string `db:"scope"             json:"scope"`
	StatusID      int    `db:"status_id"         json:"status_id"`
	PaymentStatus int    `db:"payment_status_id" json:"payment_status_id"`
	Total         int64  `db:"total"             json:"total"`
}

type Repository interface {
	ListStatuses(ctx context.Context) ([]Row, error)
	ListPaymentStatuses(ctx context.Context) ([]Row, error)
	ListPropertyTypes(ctx context.Context) ([]TypeRow, error)
	CountOccupancy(ctx context.Context) ([]OccupancyCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListStatuses(ctx context.Context) ([]Row, error) {
	var rows []Row
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, COALESCE(color, '') AS color FROM property_statuses ORDER BY id`)
	if err != nil {
		return nil, core.StorageErr("list statuses", err)
	}
	return rows, nil
}

func (r *repository) ListPaymentStatuses(ctx context.Context) ([]Row, error) {
	var rows []Row
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, COALESCE(color, '') AS color FROM payment_statuses ORDER BY id`)
	if err != nil {
		return nil, core.StorageErr("list payment statuses", err)
	}
	return rows, nil
}

func (r *repository) ListPropertyTypes(ctx context.Context) ([]TypeRow, error) {
	var rows []TypeRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name FROM property_types ORDER BY id`)
	if err != nil {
		return nil, core.StorageErr("list property types", err)
	}
	return rows, nil
}

func (r *repository) CountOccupancy(ctx context.Context) ([]OccupancyCount, error) {
	query := `
		SELECT 'property' AS scope, status_id, payment_status_id, COUNT(*) AS total
		FROM properties
		WHERE active
		GROUP BY status_id, payment_status_id
		UNION ALL
		SELECT 'unit' AS scope, status_id, payment_status_id, COUNT(*) AS total
		FROM units
		WHERE active
		GROUP BY status_id, payment_status_id
		ORDER BY scope, status_id, payment_status_id`

	var rows []OccupancyCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, core.StorageErr("count occupancy", err)
	}
	return rows, nil
}
