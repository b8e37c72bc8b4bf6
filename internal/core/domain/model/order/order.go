package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// SubStatus is the secondary purchasing/pre-order label displayed alongside
// the primary status. It is independent of the status machine.
type SubStatus string

const (
	SubStatusNone       SubStatus = "NONE"
	SubStatusPurchasing SubStatus = "PURCHASING"
)

// BlockType describes the embroidery block of the order and decides the
// entry point of the pipeline: a new block needs digitizing first.
type BlockType string

const (
	BlockOld  BlockType = "OLD"
	BlockEdit BlockType = "EDIT"
	BlockNew  BlockType = "NEW"
)

// Validate checks that the block type is a member of the enumerated set.
func (b BlockType) Validate() error {
	switch b {
	case BlockOld, BlockEdit, BlockNew:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("blockType is invalid",
			fmt.Errorf("%q is not a valid block type", string(b)))
	}
}

// Order is the aggregate root of the garment-order lifecycle. It owns the
// status, the department claim registry, the payment snapshot, and the
// annotations departments attach along the way.
//
// Invariants:
//   - status moves only through edges of the transition rule table
//   - at most one claimant per department slot at any time
//   - balanceDue = max(0, totalPrice - paidAmount), always derived
//   - terminal statuses freeze status mutation; claims and annotations
//     may still be appended for audit
//
// All mutation goes through methods that validate the acting role, the
// claim gates, and the payload, and bump updatedAt on success.
type Order struct {
	id      kernel.UUID
	jobID   string
	salesID kernel.UUID

	status    Status
	subStatus SubStatus
	blockType BlockType

	isUrgent         bool
	urgentNote       string
	cancelReason     string
	purchasingReason string
	trackingNo       string

	totalPrice    int64
	paidAmount    int64
	paymentMethod PaymentMethod

	slaBufferDays int
	reworkCount   int

	claims Claims

	dueDate   time.Time
	createdAt time.Time
	updatedAt time.Time
	version   int64

	isConstructed bool
}

// Snapshot is the flat, exported view of an order's state. It is produced by
// Snapshot() for read models and consumed by RestoreOrder when rehydrating
// from persistence.
type Snapshot struct {
	ID               kernel.UUID
	JobID            string
	SalesID          kernel.UUID
	Status           Status
	SubStatus        SubStatus
	BlockType        BlockType
	IsUrgent         bool
	UrgentNote       string
	CancelReason     string
	PurchasingReason string
	TrackingNo       string
	TotalPrice       int64
	PaidAmount       int64
	PaymentMethod    PaymentMethod
	SLABufferDays    int
	ReworkCount      int
	Claims           map[Department]ClaimRecord
	DueDate          time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int64
}

// NewOrder creates a new order at the pipeline entry point.
//
// The initial status depends on the block type: a new embroidery block enters
// at PendingDigitizing, existing blocks enter at PendingArtwork. The creator
// becomes the sales owner used for creator-gated actions (cancel, urgent).
func NewOrder(
	id kernel.UUID,
	jobID string,
	salesID kernel.UUID,
	blockType BlockType,
	dueDate time.Time,
	totalPrice int64,
	paidAmount int64,
	paymentMethod PaymentMethod,
	isUrgent bool,
	now time.Time,
) (*Order, error) {
	o := &Order{
		subStatus:     SubStatusNone,
		claims:        NewClaims(),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setJobID(jobID),
		o.setSalesID(salesID),
		o.setBlockType(blockType),
		o.setDueDate(dueDate),
		o.setMoney(totalPrice, paidAmount),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.isUrgent = isUrgent
	if blockType == BlockNew {
		o.status = PendingDigitizing
	} else {
		o.status = PendingArtwork
	}

	return o, nil
}

// RestoreOrder rebuilds an order from a persisted snapshot.
// Used by repositories; performs the same field validation as NewOrder but
// accepts any enumerated status and preserves timestamps, claims, and counters.
func RestoreOrder(snap Snapshot) (*Order, error) {
	o := &Order{
		subStatus:        snap.SubStatus,
		isUrgent:         snap.IsUrgent,
		urgentNote:       snap.UrgentNote,
		cancelReason:     snap.CancelReason,
		purchasingReason: snap.PurchasingReason,
		trackingNo:       snap.TrackingNo,
		slaBufferDays:    snap.SLABufferDays,
		reworkCount:      snap.ReworkCount,
		claims:           RestoreClaims(snap.Claims),
		createdAt:        snap.CreatedAt,
		updatedAt:        snap.UpdatedAt,
		version:          snap.Version,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(snap.ID),
		o.setJobID(snap.JobID),
		o.setSalesID(snap.SalesID),
		o.setBlockType(snap.BlockType),
		o.setDueDate(snap.DueDate),
		o.setMoney(snap.TotalPrice, snap.PaidAmount),
		o.setPaymentMethod(snap.PaymentMethod),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = snap.Status
	if o.subStatus == "" {
		o.subStatus = SubStatusNone
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Snapshot returns the flat exported view of the order's current state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:               o.id,
		JobID:            o.jobID,
		SalesID:          o.salesID,
		Status:           o.status,
		SubStatus:        o.subStatus,
		BlockType:        o.blockType,
		IsUrgent:         o.isUrgent,
		UrgentNote:       o.urgentNote,
		CancelReason:     o.cancelReason,
		PurchasingReason: o.purchasingReason,
		TrackingNo:       o.trackingNo,
		TotalPrice:       o.totalPrice,
		PaidAmount:       o.paidAmount,
		PaymentMethod:    o.paymentMethod,
		SLABufferDays:    o.slaBufferDays,
		ReworkCount:      o.reworkCount,
		Claims:           o.claims.Records(),
		DueDate:          o.dueDate,
		CreatedAt:        o.createdAt,
		UpdatedAt:        o.updatedAt,
		Version:          o.version,
	}
}

// ApplyTransition is the transition engine entry point. It validates the
// requested edge against the rule table, the actor's role, the department
// claim gate, and the payload, then mutates the order.
//
// QC requests targeting QCPassed with payload.Pass == false are rerouted
// into the rework loop and increment the rework counter.
//
// Returns the audit action label to append to the order's activity log.
func (o *Order) ApplyTransition(actor Actor, target Status, payload TransitionPayload, now time.Time) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	if err := actor.Validate(); err != nil {
		return "", err
	}
	if err := target.Validate(); err != nil {
		return "", err
	}

	if o.status.IsTerminal() {
		return "", errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	resolved := resolveTarget(o.status, target, payload)
	rule, ok := ruleFor(o.status, resolved)
	if !ok {
		return "", errs.NewInvalidTransitionError(o.status.String(), resolved.String())
	}

	if !rule.allowsRole(actor.Role()) {
		return "", errs.NewForbiddenError(actor.Role().String(), fmt.Sprintf("transition to %s", resolved))
	}

	if rule.gate != "" && !actor.Role().BypassesClaims() && !o.claims.IsClaimedBy(rule.gate, actor.ID()) {
		return "", errs.NewNotClaimedError(rule.gate.String(), actor.ID().String())
	}

	if rule.requiresReason && strings.TrimSpace(payload.Reason) == "" {
		return "", errs.NewValueIsRequiredError("cancelReason")
	}
	if rule.requiresTracking && strings.TrimSpace(payload.TrackingNo) == "" {
		return "", errs.NewValueIsRequiredError("trackingNo")
	}
	if rule.requiresSettlement && o.BalanceDue() > 0 && o.paymentMethod != PaymentCOD {
		return "", errs.NewValueIsInvalidErrorWithCause("balanceDue",
			fmt.Errorf("payment incomplete: %d outstanding", o.BalanceDue()))
	}

	o.status = resolved
	if rule.finishes != "" {
		o.claims.Finish(rule.finishes)
	}
	if rule.marksRework {
		o.reworkCount++
	}
	if rule.setsSubStatus != "" {
		o.subStatus = rule.setsSubStatus
	}
	if rule.clearsSubStatus {
		o.subStatus = SubStatusNone
	}
	if resolved == Cancelled {
		o.cancelReason = payload.Reason
	}
	if resolved == StockIssue && strings.TrimSpace(payload.Reason) != "" {
		o.purchasingReason = payload.Reason
	}
	if rule.requiresTracking {
		o.trackingNo = payload.TrackingNo
	}
	o.updatedAt = now

	return rule.action, nil
}

// ClaimDepartment assigns the department's claim slot to the actor.
//
// The actor's role must work the requested department; Admin and SuperAdmin
// may force-claim any slot over another actor. Claiming grants authorization
// for that department's transitions, it never moves status. Re-claiming a
// slot already held by the same actor is an idempotent no-op.
func (o *Order) ClaimDepartment(department Department, actor Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := department.Validate(); err != nil {
		return err
	}

	force := actor.Role().BypassesClaims()
	if !force {
		roleDept, ok := actor.Role().Department()
		if !ok || roleDept != department {
			return errs.NewForbiddenError(actor.Role().String(), fmt.Sprintf("claim %s", department))
		}
	}

	alreadyHeld := o.claims.IsClaimedBy(department, actor.ID())
	if err := o.claims.Claim(department, actor.ID(), force); err != nil {
		return err
	}
	if !alreadyHeld {
		o.updatedAt = now
	}
	return nil
}

// IsClaimedBy reports whether the actor holds the department's claim slot.
func (o *Order) IsClaimedBy(department Department, actorID kernel.UUID) bool {
	return o.claims.IsClaimedBy(department, actorID)
}

// Claimant returns the actor holding the department's slot, or nil.
func (o *Order) Claimant(department Department) *kernel.UUID {
	return o.claims.Claimant(department)
}

// IsDepartmentFinished reports whether the department's slot has been locked
// by its finish transition.
func (o *Order) IsDepartmentFinished(department Department) bool {
	return o.claims.IsFinished(department)
}

// MarkUrgent flags the order urgent with an optional note.
// Privileged roles and the sales creator may escalate; terminal orders
// reject escalation for everyone.
func (o *Order) MarkUrgent(actor Actor, note string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	isCreator := actor.Role() == RoleSales && actor.ID().IsEqual(o.salesID)
	if o.status.IsTerminal() || (!actor.Role().IsPrivileged() && !isCreator) {
		return errs.NewForbiddenError(actor.Role().String(), "mark urgent")
	}

	o.isUrgent = true
	o.urgentNote = note
	o.updatedAt = now
	return nil
}

// AutoMarkUrgent is the system escalation path used by the stale-order sweep.
// Returns true when the order was escalated, false when it was already urgent
// or terminal.
func (o *Order) AutoMarkUrgent(note string, now time.Time) bool {
	if o.isUrgent || o.status.IsTerminal() {
		return false
	}
	o.isUrgent = true
	o.urgentNote = note
	o.updatedAt = now
	return true
}

// RecordPayment adds a payment amount and optionally switches the method.
// The amount may not exceed the outstanding balance. The payment state and
// balance stay derived; nothing is stored beyond the raw amounts.
func (o *Order) RecordPayment(amount int64, method PaymentMethod, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if amount < 0 || amount > o.BalanceDue() {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, o.BalanceDue())
	}
	if method != "" {
		if err := method.Validate(); err != nil {
			return err
		}
		o.paymentMethod = method
	}

	o.paidAmount += amount
	o.updatedAt = now
	return nil
}

// SetSLABuffer sets the per-order SLA buffer in days.
// Only privileged roles may shift department deadlines.
func (o *Order) SetSLABuffer(actor Actor, days int, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().IsPrivileged() {
		return errs.NewForbiddenError(actor.Role().String(), "set SLA buffer")
	}
	if days < 0 {
		return errs.NewValueIsOutOfRangeError("slaBufferDays", days, 0, 365)
	}

	o.slaBufferDays = days
	o.updatedAt = now
	return nil
}

// BalanceDue returns the outstanding balance, never negative.
func (o *Order) BalanceDue() int64 {
	return BalanceDueFor(o.totalPrice, o.paidAmount)
}

// PaymentState derives the payment classification from the money columns.
func (o *Order) PaymentState() PaymentState {
	return PaymentStateFor(o.totalPrice, o.paidAmount)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// JobID returns the human-readable job code.
func (o *Order) JobID() string { return o.jobID }

// SalesID returns the identity of the sales creator.
func (o *Order) SalesID() kernel.UUID { return o.salesID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// SubStatus returns the purchasing sub-state label.
func (o *Order) SubStatus() SubStatus { return o.subStatus }

// BlockType returns the embroidery block type.
func (o *Order) BlockType() BlockType { return o.blockType }

// IsUrgent reports whether the order is flagged urgent.
func (o *Order) IsUrgent() bool { return o.isUrgent }

// UrgentNote returns the urgency annotation.
func (o *Order) UrgentNote() string { return o.urgentNote }

// CancelReason returns the cancellation annotation.
func (o *Order) CancelReason() string { return o.cancelReason }

// PurchasingReason returns the stock-issue annotation.
func (o *Order) PurchasingReason() string { return o.purchasingReason }

// TrackingNo returns the shipment tracking number.
func (o *Order) TrackingNo() string { return o.trackingNo }

// TotalPrice returns the order total in the smallest currency unit.
func (o *Order) TotalPrice() int64 { return o.totalPrice }

// PaidAmount returns the amount paid so far.
func (o *Order) PaidAmount() int64 { return o.paidAmount }

// PaymentMethod returns the settlement method.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// SLABufferDays returns the per-order deadline buffer.
func (o *Order) SLABufferDays() int { return o.slaBufferDays }

// ReworkCount returns how many times QC sent the order back.
func (o *Order) ReworkCount() int { return o.reworkCount }

// DueDate returns the target completion date.
func (o *Order) DueDate() time.Time { return o.dueDate }

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version returns the optimistic concurrency token.
func (o *Order) Version() int64 { return o.version }

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setJobID(jobID string) error {
	if strings.TrimSpace(jobID) == "" {
		return errs.NewValueIsRequiredError("jobId")
	}
	o.jobID = jobID
	return nil
}

func (o *Order) setSalesID(salesID kernel.UUID) error {
	if err := salesID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("salesId", err)
	}
	o.salesID = salesID
	return nil
}

func (o *Order) setBlockType(blockType BlockType) error {
	if err := blockType.Validate(); err != nil {
		return err
	}
	o.blockType = blockType
	return nil
}

func (o *Order) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("dueDate")
	}
	o.dueDate = dueDate
	return nil
}

func (o *Order) setMoney(totalPrice, paidAmount int64) error {
	if totalPrice < 0 {
		return errs.NewValueIsOutOfRangeError("totalPrice", totalPrice, 0, int64(1<<62))
	}
	if paidAmount < 0 {
		return errs.NewValueIsOutOfRangeError("paidAmount", paidAmount, 0, int64(1<<62))
	}
	o.totalPrice = totalPrice
	o.paidAmount = paidAmount
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
