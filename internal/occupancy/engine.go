// AngelaMos | 2026
// engine.go

package occupancy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/lease"
	"github.com/amontalvo1020/rentalspro/internal/property"
	"github.com/amontalvo1020/rentalspro/internal/status"
	"github.com/amontalvo1020/rentalspro/internal/unit"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

// Engine keeps occupancy status, payment status, lease activity and tenant
// activity consistent. Each operation runs as one unit of work under a
// bounded deadline.
type Engine struct {
	tx      Transactor
	cache   unit.Cache
	logger  *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewEngine(
	tx Transactor,
	cache unit.Cache,
	timeout time.Duration,
	logger *slog.Logger,
) *Engine {
	if cache == nil {
		cache = unit.NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		tx:      tx,
		cache:   cache,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// Cascade summarizes what a status change wrote.
type Cascade struct {
	Status             status.Occupancy
	PaymentStatus      status.Payment
	Changed            bool
	EndedLeaseID       *int64
	DeactivatedTenants int64
}

type PostLeaseResult struct {
	Lease             *lease.Lease
	Tenants           []user.User
	SupersededLeaseID *int64
}

func (e *Engine) ApplyPropertyStatusChange(
	ctx context.Context,
	propertyID int64,
	newStatus status.Occupancy,
) (*Cascade, error) {
	const op = "apply property status"

	if !newStatus.Valid() {
		return nil, fmt.Errorf("%s: unknown status %d: %w", op, newStatus, core.ErrInvalidInput)
	}

	ctx, cancel := e.bound(ctx)
	defer cancel()

	ctx, span := core.StartSpan(ctx, "occupancy.ApplyPropertyStatusChange",
		core.AttrPropertyID.Int64(propertyID),
		core.AttrStatus.String(newStatus.String()),
	)
	defer span.End()

	var res Cascade
	err := e.tx.WithinTx(ctx, func(g Gateway) error {
		res = Cascade{}

		p, err := g.GetProperty(ctx, propertyID)
		if err != nil {
			return err
		}

		res.Status, res.PaymentStatus = p.StatusID, p.PaymentStatusID
		if p.StatusID == newStatus {
			return nil
		}

		effects := PropertyEffects(newStatus)

		p.StatusID = newStatus
		if hasEffect(effects, EffectMarkPaid) {
			p.PaymentStatusID = status.Paid
		}

		if err := g.UpdateProperty(ctx, p); err != nil {
			return err
		}
		res.Status, res.PaymentStatus, res.Changed = p.StatusID, p.PaymentStatusID, true

		if hasEffect(effects, EffectEndLease) {
			return e.endLease(ctx, g, lease.Key{PropertyID: propertyID}, &res)
		}
		return nil
	})
	if err != nil {
		return nil, e.fail(ctx, op, err)
	}

	e.logger.InfoContext(ctx, "property status applied",
		"property_id", propertyID,
		"status", res.Status.String(),
		"payment_status", res.PaymentStatus.String(),
		"changed", res.Changed,
		"ended_lease_id", res.EndedLeaseID,
		"deactivated_tenants", res.DeactivatedTenants,
	)

	return &res, nil
}

func (e *Engine) ApplyUnitStatusChange(
	ctx context.Context,
	unitID int64,
	newStatus status.Occupancy,
) (*Cascade, error) {
	const op = "apply unit status"

	if !newStatus.Valid() {
		return nil, fmt.Errorf("%s: unknown status %d: %w", op, newStatus, core.ErrInvalidInput)
	}

	ctx, cancel := e.bound(ctx)
	defer cancel()

	ctx, span := core.StartSpan(ctx, "occupancy.ApplyUnitStatusChange",
		core.AttrUnitID.Int64(unitID),
		core.AttrStatus.String(newStatus.String()),
	)
	defer span.End()

	var res Cascade
	err := e.tx.WithinTx(ctx, func(g Gateway) error {
		res = Cascade{}

		u, err := g.GetUnit(ctx, unitID)
		if err != nil {
			return err
		}

		res.Status, res.PaymentStatus = u.StatusID, u.PaymentStatusID
		if u.StatusID == newStatus {
			return nil
		}

		effects := UnitEffects(newStatus)

		u.StatusID = newStatus
		if hasEffect(effects, EffectMarkPaid) {
			u.PaymentStatusID = status.Paid
		}

		if err := g.UpdateUnit(ctx, u); err != nil {
			return err
		}
		res.Status, res.PaymentStatus, res.Changed = u.StatusID, u.PaymentStatusID, true

		if hasEffect(effects, EffectEndLease) {
			uid := unitID
			return e.endLease(ctx, g, lease.Key{PropertyID: u.PropertyID, UnitID: &uid}, &res)
		}
		return nil
	})
	if err != nil {
		return nil, e.fail(ctx, op, err)
	}

	if res.Changed {
		e.cache.Invalidate(ctx, unitID)
	}

	e.logger.InfoContext(ctx, "unit status applied",
		"unit_id", unitID,
		"status", res.Status.String(),
		"changed", res.Changed,
		"ended_lease_id", res.EndedLeaseID,
		"deactivated_tenants", res.DeactivatedTenants,
	)

	return &res, nil
}

// PostLease creates an active lease for the request's property or unit,
// marks the leased entity Rented and Paid and inserts the tenants. A lease
// already active for the same key is ended, together with its tenants, in
// the same unit of work.
func (e *Engine) PostLease(
	ctx context.Context,
	req lease.CreateLeaseRequest,
) (*PostLeaseResult, error) {
	const op = "post lease"

	if err := validateLease(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := e.bound(ctx)
	defer cancel()

	attrs := []attribute.KeyValue{core.AttrPropertyID.Int64(req.PropertyID)}
	if req.UnitID != nil {
		attrs = append(attrs, core.AttrUnitID.Int64(*req.UnitID))
	}
	ctx, span := core.StartSpan(ctx, "occupancy.PostLease", attrs...)
	defer span.End()

	var res PostLeaseResult
	err := e.tx.WithinTx(ctx, func(g Gateway) error {
		res = PostLeaseResult{}

		p, err := g.GetProperty(ctx, req.PropertyID)
		if err != nil {
			return err
		}

		var u *unit.Unit
		if req.UnitID != nil {
			u, err = g.GetUnit(ctx, *req.UnitID)
			if err != nil {
				return err
			}
			if u.PropertyID != p.ID {
				return fmt.Errorf("unit %d does not belong to property %d: %w", u.ID, p.ID, core.ErrInvalidInput)
			}
		}

		key := lease.Key{PropertyID: req.PropertyID, UnitID: req.UnitID}
		var ended Cascade
		if err := e.endLease(ctx, g, key, &ended); err != nil {
			return err
		}
		res.SupersededLeaseID = ended.EndedLeaseID

		now := e.now().UTC()
		l := req.ToLease(now)
		if err := g.InsertLease(ctx, &l); err != nil {
			return err
		}
		res.Lease = &l

		if u != nil {
			u.StatusID = status.Rented
			u.PaymentStatusID = status.Paid
			if err := g.UpdateUnit(ctx, u); err != nil {
				return err
			}
		} else {
			p.StatusID = status.Rented
			p.PaymentStatusID = status.Paid
			if err := g.UpdateProperty(ctx, p); err != nil {
				return err
			}
		}

		tenants := make([]user.User, 0, len(req.Tenants))
		for _, t := range req.Tenants {
			tenants = append(tenants, user.NewTenant(t, l.ID, now))
		}
		if err := g.InsertUsers(ctx, tenants); err != nil {
			return err
		}
		res.Tenants = tenants

		return nil
	})
	if err != nil {
		return nil, e.fail(ctx, op, err)
	}

	if req.UnitID != nil {
		e.cache.Invalidate(ctx, *req.UnitID)
	}

	e.logger.InfoContext(ctx, "lease posted",
		"lease_id", res.Lease.ID,
		"property_id", req.PropertyID,
		"unit_id", req.UnitID,
		"tenants", len(res.Tenants),
		"superseded_lease_id", res.SupersededLeaseID,
	)

	return &res, nil
}

// UpdateLeaseFinancials writes only the amounts that differ from the stored
// lease. The bool reports whether anything was written.
func (e *Engine) UpdateLeaseFinancials(
	ctx context.Context,
	leaseID int64,
	req lease.UpdateFinancialsRequest,
) (*lease.Lease, bool, error) {
	const op = "update lease financials"

	if err := checkAmounts(map[string]*decimal.Decimal{
		"rent_amount":      req.RentAmount,
		"security_deposit": req.SecurityDeposit,
		"pet_deposit":      req.PetDeposit,
	}); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := e.bound(ctx)
	defer cancel()

	ctx, span := core.StartSpan(ctx, "occupancy.UpdateLeaseFinancials",
		core.AttrLeaseID.Int64(leaseID),
	)
	defer span.End()

	var (
		out     *lease.Lease
		changed bool
	)
	err := e.tx.WithinTx(ctx, func(g Gateway) error {
		changed = false

		l, err := g.GetLease(ctx, leaseID)
		if err != nil {
			return err
		}
		out = l

		if req.RentAmount != nil && !l.RentAmount.Equal(*req.RentAmount) {
			l.RentAmount = *req.RentAmount
			changed = true
		}
		if setNullable(&l.SecurityDeposit, req.SecurityDeposit) {
			changed = true
		}
		if setNullable(&l.PetDeposit, req.PetDeposit) {
			changed = true
		}

		if !changed {
			return nil
		}
		return g.UpdateLease(ctx, l)
	})
	if err != nil {
		return nil, false, e.fail(ctx, op, err)
	}

	e.logger.InfoContext(ctx, "lease financials updated", "lease_id", leaseID, "changed", changed)

	return out, changed, nil
}

// SetPropertyPaymentStatus writes the payment status without any cascade.
func (e *Engine) SetPropertyPaymentStatus(
	ctx context.Context,
	propertyID int64,
	payment status.Payment,
) (*property.Property, error) {
	const op = "set property payment status"

	if !payment.Valid() {
		return nil, fmt.Errorf("%s: unknown payment status %d: %w", op, payment, core.ErrInvalidInput)
	}

	ctx, cancel := e.bound(ctx)
	defer cancel()

	var out *property.Property
	err := e.tx.WithinTx(ctx, func(g Gateway) error {
		p, err := g.GetProperty(ctx, propertyID)
		if err != nil {
			return err
		}
		out = p

		if p.PaymentStatusID == payment {
			return nil
		}
		p.PaymentStatusID = payment
		return g.UpdateProperty(ctx, p)
	})
	if err != nil {
		return nil, e.fail(ctx, op, err)
	}

	return out, nil
}

// SetUnitPaymentStatus writes the payment status without any cascade.
func (e *Engine) SetUnitPaymentStatus(
	ctx context.Context,
	unitID int64,
	payment status.Payment,
) (*unit.Unit, error) {
	const op = "set unit payment status"

	if !payment.Valid() {
		return nil, fmt.Errorf("%s: unknown payment status %d: %w", op, payment, core.ErrInvalidInput)
	}

	ctx, cancel := e.bound(ctx)
	defer cancel()

	var (
		out     *unit.Unit
		changed bool
	)
	err := e.tx.WithinTx(ctx, func(g Gateway) error {
		u, err := g.GetUnit(ctx, unitID)
		if err != nil {
			return err
		}
		out = u

		if u.PaymentStatusID == payment {
			return nil
		}
		u.PaymentStatusID = payment
		changed = true
		return g.UpdateUnit(ctx, u)
	})
	if err != nil {
		return nil, e.fail(ctx, op, err)
	}

	if changed {
		e.cache.Invalidate(ctx, unitID)
	}

	return out, nil
}

// endLease deactivates the active lease for key and its tenants. A key with
// no active lease is not an error.
func (e *Engine) endLease(ctx context.Context, g Gateway, key lease.Key, res *Cascade) error {
	l, err := g.GetActiveLease(ctx, key)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	l.Active = false
	if err := g.UpdateLease(ctx, l); err != nil {
		return err
	}

	n, err := g.BatchDeactivateUsers(ctx, l.ID)
	if err != nil {
		return err
	}

	id := l.ID
	res.EndedLeaseID = &id
	res.DeactivatedTenants = n

	core.AddSpanEvent(ctx, "lease.ended",
		core.AttrLeaseID.Int64(l.ID),
		core.AttrTenants.Int64(n),
	)

	return nil
}

func (e *Engine) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// fail wraps err with op. A blown deadline is reported as a storage timeout
// even when the driver surfaced it as something else.
func (e *Engine) fail(ctx context.Context, op string, err error) error {
	core.SetSpanError(ctx, err)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, core.ErrTimeout) {
		err = fmt.Errorf("%w: %w: %w", core.ErrStorage, core.ErrTimeout, err)
	}

	e.logger.WarnContext(ctx, "occupancy operation failed", "op", op, "error", err)

	return fmt.Errorf("%s: %w", op, err)
}

func validateLease(req lease.CreateLeaseRequest) error {
	if req.PropertyID < 1 {
		return fmt.Errorf("property id is required: %w", core.ErrInvalidInput)
	}
	if req.UnitID != nil && *req.UnitID < 1 {
		return fmt.Errorf("unit id must be positive: %w", core.ErrInvalidInput)
	}
	if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("end date is before start date: %w", core.ErrInvalidInput)
	}

	amounts := map[string]*decimal.Decimal{"rent_amount": &req.RentAmount}
	if req.SecurityDeposit.Valid {
		amounts["security_deposit"] = &req.SecurityDeposit.Decimal
	}
	if req.PetDeposit.Valid {
		amounts["pet_deposit"] = &req.PetDeposit.Decimal
	}
	return checkAmounts(amounts)
}

func checkAmounts(amounts map[string]*decimal.Decimal) error {
	for name, v := range amounts {
		if v != nil && v.IsNegative() {
			return fmt.Errorf("%s must not be negative: %w", name, core.ErrInvalidInput)
		}
	}
	return nil
}

// setNullable reports whether dst changed.
func setNullable(dst *decimal.NullDecimal, src *decimal.Decimal) bool {
	if src == nil {
		return false
	}
	if dst.Valid && dst.Decimal.Equal(*src) {
		return false
	}
	*dst = decimal.NewNullDecimal(*src)
	return true
}
