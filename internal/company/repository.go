// AngelaMos | 2026
// repository.go

package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Company, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const companyColumns = `id, name, address, city, state, zip_code, phone, email,
		       created_date, updated_date, active`

func (r *repository) GetByID(ctx context.Context, id int64) (*Company, error) {
	var c Company
	err := r.db.GetContext(ctx, &c,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get company: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get company", err)
	}
	return &c, nil
}
