package order

import "garmentflow/internal/core/domain/model/kernel"

// ActionMap is the set of capability flags telling a client what it may
// currently do with an order. It is derived on every read from the order
// snapshot and the acting user, never stored, and presentation layers
// consume the flags verbatim instead of re-deriving role logic.
type ActionMap struct {
	CanClaim            bool `json:"canClaim"`
	CanSendToStock      bool `json:"canSendToStock"`
	CanConfirmStock     bool `json:"canConfirmStock"`
	CanReportStockIssue bool `json:"canReportStockIssue"`
	CanStartProduction  bool `json:"canStartProduction"`
	CanFinishProduction bool `json:"canFinishProduction"`
	CanPassQC           bool `json:"canPassQC"`
	CanFailQC           bool `json:"canFailQC"`
	CanReceiveForShip   bool `json:"canReceiveForShip"`
	CanShip             bool `json:"canShip"`
	CanUploadSlip       bool `json:"canUploadSlip"`
	CanMarkUrgent       bool `json:"canMarkUrgent"`
	CanCancel           bool `json:"canCancel"`
	CanViewOrderItems   bool `json:"canViewOrderItems"`
	CanViewPreorder     bool `json:"canViewPreorder"`
}

// claimStages lists the statuses during which each department's slot is
// open for claiming.
func claimStages() map[Department][]Status {
	return map[Department][]Status{
		DepartmentGraphic:    {PendingArtwork, Designing},
		DepartmentStock:      {PendingStockCheck, StockIssue},
		DepartmentProduction: {StockRechecked},
		DepartmentQC:         {ProductionFinished},
	}
}

// cancelableBySales lists the statuses from which the sales creator may
// still cancel. Privileged roles may cancel from any non-terminal status.
func cancelableBySales() []Status {
	return []Status{PendingArtwork, StockIssue}
}

// DeriveActionMap computes the capability flags for an (order, actor) pair.
//
// Transition-backed flags reuse the transition rule table and the claim
// registry, so a flag is true exactly when the corresponding command would
// pass the engine's role and claim checks. The derivation is deterministic
// and side-effect-free.
func DeriveActionMap(snap Snapshot, actor Actor) ActionMap {
	role := actor.Role()
	isCreator := role == RoleSales && actor.ID().IsEqual(snap.SalesID)

	return ActionMap{
		CanClaim:            deriveCanClaim(snap, actor),
		CanSendToStock:      mayDrive(snap, actor, PendingStockCheck),
		CanConfirmStock:     mayDrive(snap, actor, StockRechecked),
		CanReportStockIssue: mayDrive(snap, actor, StockIssue),
		CanStartProduction:  mayDrive(snap, actor, InProduction),
		CanFinishProduction: mayDrive(snap, actor, ProductionFinished),
		CanPassQC:           mayDrive(snap, actor, QCPassed),
		CanFailQC:           snap.Status == ProductionFinished && mayDrive(snap, actor, InProduction),
		CanReceiveForShip:   mayDrive(snap, actor, ReadyToShip),
		CanShip: mayDrive(snap, actor, Completed) &&
			(BalanceDueFor(snap.TotalPrice, snap.PaidAmount) == 0 || snap.PaymentMethod == PaymentCOD),
		CanUploadSlip: role.IsPrivileged() || role == RoleSales || role == RoleDelivery,
		CanMarkUrgent: !snap.Status.IsTerminal() &&
			(role.IsPrivileged() || isCreator),
		CanCancel: deriveCanCancel(snap, role, isCreator),
		// Item visibility is unconditional; the flag exists so clients never
		// hardcode it.
		CanViewOrderItems: true,
		CanViewPreorder: role.IsPrivileged() ||
			role == RoleSales || role == RolePurchasing || role == RoleStock || role == RoleProduction,
	}
}

// mayDrive reports whether the actor could drive the order from its current
// status to the target, checking the rule table's role and claim gates.
// Payload requirements (reason, tracking number, settlement) are not part
// of this check.
func mayDrive(snap Snapshot, actor Actor, to Status) bool {
	if snap.Status.IsTerminal() {
		return false
	}
	rule, ok := ruleFor(snap.Status, to)
	if !ok {
		return false
	}
	if !rule.allowsRole(actor.Role()) {
		return false
	}
	if rule.gate != "" && !actor.Role().BypassesClaims() && !claimHeldBy(snap, rule.gate, actor.ID()) {
		return false
	}
	return true
}

func claimHeldBy(snap Snapshot, department Department, actorID kernel.UUID) bool {
	rec, ok := snap.Claims[department]
	return ok && rec.Claimant != nil && rec.Claimant.IsEqual(actorID)
}

// deriveCanClaim follows the claim stage table: the actor's department slot
// must be open and the order must sit in one of that department's stages.
// Privileged roles bypass claims entirely, so the flag stays off for them.
func deriveCanClaim(snap Snapshot, actor Actor) bool {
	if actor.Role().BypassesClaims() || snap.Status.IsTerminal() {
		return false
	}
	department, ok := actor.Role().Department()
	if !ok {
		return false
	}
	if rec, held := snap.Claims[department]; held && rec.Claimant != nil {
		return false
	}
	for _, s := range claimStages()[department] {
		if snap.Status == s {
			return true
		}
	}
	return false
}

func deriveCanCancel(snap Snapshot, role Role, isCreator bool) bool {
	if snap.Status.IsTerminal() {
		return false
	}
	if role.IsPrivileged() {
		return true
	}
	if !isCreator {
		return false
	}
	for _, s := range cancelableBySales() {
		if snap.Status == s {
			return true
		}
	}
	return false
}
