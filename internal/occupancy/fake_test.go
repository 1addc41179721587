// AngelaMos | 2026
// fake_test.go

package occupancy

import (
	"context"
	"fmt"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/lease"
	"github.com/amontalvo1020/rentalspro/internal/property"
	"github.com/amontalvo1020/rentalspro/internal/unit"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

type memState struct {
	properties map[int64]property.Property
	units      map[int64]unit.Unit
	leases     map[int64]lease.Lease
	users      map[int64]user.User
	nextID     int64
}

func (s memState) clone() memState {
	c := memState{
		properties: make(map[int64]property.Property, len(s.properties)),
		units:      make(map[int64]unit.Unit, len(s.units)),
		leases:     make(map[int64]lease.Lease, len(s.leases)),
		users:      make(map[int64]user.User, len(s.users)),
		nextID:     s.nextID,
	}
	for k, v := range s.properties {
		c.properties[k] = v
	}
	for k, v := range s.units {
		c.units[k] = v
	}
	for k, v := range s.leases {
		c.leases[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// memStore is an in-memory Transactor. A failed unit of work restores the
// state it started from.
type memStore struct {
	state  memState
	fail   map[string]error
	block  map[string]bool
	writes []string
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			properties: map[int64]property.Property{},
			units:      map[int64]unit.Unit{},
			leases:     map[int64]lease.Lease{},
			users:      map[int64]user.User{},
			nextID:     1000,
		},
		fail:  map[string]error{},
		block: map[string]bool{},
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(g Gateway) error) error {
	snapshot := m.state.clone()
	writes := len(m.writes)

	if err := fn(&memGateway{m: m}); err != nil {
		m.state = snapshot
		m.writes = m.writes[:writes]
		return err
	}
	return nil
}

type memGateway struct {
	m *memStore
}

func (g *memGateway) enter(ctx context.Context, op string) error {
	if g.m.block[op] {
		<-ctx.Done()
		return core.StorageErr(op, ctx.Err())
	}
	if err := g.m.fail[op]; err != nil {
		return err
	}
	return nil
}

func (g *memGateway) GetProperty(ctx context.Context, id int64) (*property.Property, error) {
	if err := g.enter(ctx, "GetProperty"); err != nil {
		return nil, err
	}
	p, ok := g.m.state.properties[id]
	if !ok {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	return &p, nil
}

func (g *memGateway) UpdateProperty(ctx context.Context, p *property.Property) error {
	if err := g.enter(ctx, "UpdateProperty"); err != nil {
		return err
	}
	if _, ok := g.m.state.properties[p.ID]; !ok {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	g.m.state.properties[p.ID] = *p
	g.m.writes = append(g.m.writes, fmt.Sprintf("property %d", p.ID))
	return nil
}

func (g *memGateway) GetUnit(ctx context.Context, id int64) (*unit.Unit, error) {
	if err := g.enter(ctx, "GetUnit"); err != nil {
		return nil, err
	}
	u, ok := g.m.state.units[id]
	if !ok {
		return nil, fmt.Errorf("get unit: %w", core.ErrNotFound)
	}
	return &u, nil
}

func (g *memGateway) UpdateUnit(ctx context.Context, u *unit.Unit) error {
	if err := g.enter(ctx, "UpdateUnit"); err != nil {
		return err
	}
	g.m.state.units[u.ID] = *u
	g.m.writes = append(g.m.writes, fmt.Sprintf("unit %d", u.ID))
	return nil
}

func (g *memGateway) GetLease(ctx context.Context, id int64) (*lease.Lease, error) {
	if err := g.enter(ctx, "GetLease"); err != nil {
		return nil, err
	}
	l, ok := g.m.state.leases[id]
	if !ok {
		return nil, fmt.Errorf("get lease: %w", core.ErrNotFound)
	}
	return &l, nil
}

func (g *memGateway) GetActiveLease(ctx context.Context, key lease.Key) (*lease.Lease, error) {
	if err := g.enter(ctx, "GetActiveLease"); err != nil {
		return nil, err
	}

	var found []lease.Lease
	for _, l := range g.m.state.leases {
		if !l.Active {
			continue
		}
		switch {
		case key.UnitID != nil:
			if l.UnitID != nil && *l.UnitID == *key.UnitID {
				found = append(found, l)
			}
		case l.UnitID == nil && l.PropertyID == key.PropertyID:
			found = append(found, l)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("get active lease for %s: %w", key, core.ErrNotFound)
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("get active lease for %s: %w", key, core.ErrConflict)
	}
}

func (g *memGateway) InsertLease(ctx context.Context, l *lease.Lease) error {
	if err := g.enter(ctx, "InsertLease"); err != nil {
		return err
	}
	g.m.state.nextID++
	l.ID = g.m.state.nextID
	g.m.state.leases[l.ID] = *l
	g.m.writes = append(g.m.writes, fmt.Sprintf("insert lease %d", l.ID))
	return nil
}

func (g *memGateway) UpdateLease(ctx context.Context, l *lease.Lease) error {
	if err := g.enter(ctx, "UpdateLease"); err != nil {
		return err
	}
	g.m.state.leases[l.ID] = *l
	g.m.writes = append(g.m.writes, fmt.Sprintf("lease %d", l.ID))
	return nil
}

func (g *memGateway) BatchDeactivateUsers(ctx context.Context, leaseID int64) (int64, error) {
	if err := g.enter(ctx, "BatchDeactivateUsers"); err != nil {
		return 0, err
	}
	var n int64
	for id, u := range g.m.state.users {
		if u.Active && u.LeaseID != nil && *u.LeaseID == leaseID {
			u.Active = false
			g.m.state.users[id] = u
			n++
		}
	}
	g.m.writes = append(g.m.writes, fmt.Sprintf("users of lease %d", leaseID))
	return n, nil
}

func (g *memGateway) InsertUsers(ctx context.Context, users []user.User) error {
	if err := g.enter(ctx, "InsertUsers"); err != nil {
		return err
	}
	for i := range users {
		g.m.state.nextID++
		users[i].ID = g.m.state.nextID
		g.m.state.users[users[i].ID] = users[i]
	}
	return nil
}

type recordingCache struct {
	unit.NopCache
	invalidated []int64
}

func (c *recordingCache) Invalidate(_ context.Context, ids ...int64) {
	c.invalidated = append(c.invalidated, ids...)
}
