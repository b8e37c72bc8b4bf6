package order

import (
	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/pkg/errs"
)

// ClaimRecord is the persisted shape of one department claim slot.
// Claimant is nil while the slot is unclaimed. Finished marks the slot
// locked after the department's finish transition fired: the claimant's
// identity is preserved for display, but the slot cannot change hands.
type ClaimRecord struct {
	Claimant *kernel.UUID
	Finished bool
}

// Claims is the fixed four-slot claim registry of an order.
// Invariant: at most one non-nil claimant per department at any time.
//
// Claiming only grants authorization to invoke that department's
// status-changing actions next; it never moves status by itself.
type Claims struct {
	slots map[Department]ClaimRecord
}

// NewClaims creates an empty registry with all four department slots open.
func NewClaims() Claims {
	slots := make(map[Department]ClaimRecord, len(AllDepartments()))
	for _, d := range AllDepartments() {
		slots[d] = ClaimRecord{}
	}
	return Claims{slots: slots}
}

// RestoreClaims rebuilds a registry from persisted records.
// Departments absent from the input are restored as open slots.
func RestoreClaims(records map[Department]ClaimRecord) Claims {
	claims := NewClaims()
	for d, rec := range records {
		if _, ok := claims.slots[d]; ok {
			claims.slots[d] = rec
		}
	}
	return claims
}

// Claim assigns the department slot to the actor.
//
// Rules:
//   - empty slot: the actor takes it
//   - slot already held by the same actor: no-op success (idempotent re-claim)
//   - slot held by a different actor: AlreadyClaimedError, unless force
//   - finished slot: locked; only a same-actor no-op succeeds, force included
func (c *Claims) Claim(department Department, actorID kernel.UUID, force bool) error {
	if err := department.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}

	rec := c.slots[department]
	if rec.Claimant != nil && rec.Claimant.IsEqual(actorID) {
		return nil
	}
	if rec.Finished {
		claimant := ""
		if rec.Claimant != nil {
			claimant = rec.Claimant.String()
		}
		return errs.NewAlreadyClaimedError(department.String(), claimant)
	}
	if rec.Claimant != nil && !force {
		return errs.NewAlreadyClaimedError(department.String(), rec.Claimant.String())
	}

	id := actorID
	c.slots[department] = ClaimRecord{Claimant: &id}
	return nil
}

// IsClaimedBy reports whether the actor currently holds the department slot.
func (c *Claims) IsClaimedBy(department Department, actorID kernel.UUID) bool {
	rec := c.slots[department]
	return rec.Claimant != nil && rec.Claimant.IsEqual(actorID)
}

// Claimant returns the actor holding the department slot, or nil.
func (c *Claims) Claimant(department Department) *kernel.UUID {
	rec := c.slots[department]
	if rec.Claimant == nil {
		return nil
	}
	id := *rec.Claimant
	return &id
}

// IsFinished reports whether the department slot has been locked by its
// finish transition.
func (c *Claims) IsFinished(department Department) bool {
	return c.slots[department].Finished
}

// Finish locks the department slot, preserving the claimant for display.
func (c *Claims) Finish(department Department) {
	rec := c.slots[department]
	rec.Finished = true
	c.slots[department] = rec
}

// Records returns a copy of all slot records, keyed by department.
// Used by the persistence adapter and read models.
func (c *Claims) Records() map[Department]ClaimRecord {
	out := make(map[Department]ClaimRecord, len(c.slots))
	for d, rec := range c.slots {
		if rec.Claimant != nil {
			id := *rec.Claimant
			rec.Claimant = &id
		}
		out[d] = rec
	}
	return out
}
