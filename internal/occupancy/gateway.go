// AngelaMos | 2026
// gateway.go

package occupancy

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/lease"
	"github.com/amontalvo1020/rentalspro/internal/property"
	"github.com/amontalvo1020/rentalspro/internal/unit"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

// Gateway is the set of reads and writes a cascade needs. Every method is
// bound to the surrounding unit of work.
type Gateway interface {
	GetProperty(ctx context.Context, id int64) (*property.Property, error)
	UpdateProperty(ctx context.Context, p *property.Property) error
	GetUnit(ctx context.Context, id int64) (*unit.Unit, error)
	UpdateUnit(ctx context.Context, u *unit.Unit) error
	GetLease(ctx context.Context, id int64) (*lease.Lease, error)
	GetActiveLease(ctx context.Context, key lease.Key) (*lease.Lease, error)
	InsertLease(ctx context.Context, l *lease.Lease) error
	UpdateLease(ctx context.Context, l *lease.Lease) error
	BatchDeactivateUsers(ctx context.Context, leaseID int64) (int64, error)
	InsertUsers(ctx context.Context, users []user.User) error
}

// Transactor runs fn in a single unit of work. Nothing fn wrote survives
// unless fn returns nil and the commit succeeds.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(g Gateway) error) error
}

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(g Gateway) error) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(newGateway(tx))
	})
}

type gateway struct {
	properties property.Repository
	units      unit.Repository
	leases     lease.Repository
	users      user.Repository
}

func newGateway(db core.DBTX) *gateway {
	return &gateway{
		properties: property.NewRepository(db),
		units:      unit.NewRepository(db),
		leases:     lease.NewRepository(db),
		users:      user.NewRepository(db),
	}
}

func (g *gateway) GetProperty(ctx context.Context, id int64) (*property.Property, error) {
	return g.properties.GetByID(ctx, id)
}

func (g *gateway) UpdateProperty(ctx context.Context, p *property.Property) error {
	return g.properties.Update(ctx, p)
}

func (g *gateway) GetUnit(ctx context.Context, id int64) (*unit.Unit, error) {
	return g.units.GetByID(ctx, id)
}

func (g *gateway) UpdateUnit(ctx context.Context, u *unit.Unit) error {
	return g.units.Update(ctx, u)
}

func (g *gateway) GetLease(ctx context.Context, id int64) (*lease.Lease, error) {
	return g.leases.GetByID(ctx, id)
}

func (g *gateway) GetActiveLease(ctx context.Context, key lease.Key) (*lease.Lease, error) {
	return g.leases.GetActive(ctx, key)
}

func (g *gateway) InsertLease(ctx context.Context, l *lease.Lease) error {
	return g.leases.Create(ctx, l)
}

func (g *gateway) UpdateLease(ctx context.Context, l *lease.Lease) error {
	return g.leases.Update(ctx, l)
}

func (g *gateway) BatchDeactivateUsers(ctx context.Context, leaseID int64) (int64, error) {
	return g.users.DeactivateByLease(ctx, leaseID)
}

func (g *gateway) InsertUsers(ctx context.Context, users []user.User) error {
	return g.users.CreateBatch(ctx, users)
}
