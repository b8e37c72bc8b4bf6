package order

// TransitionPayload carries the optional inputs of a transition request.
// Which fields are required depends on the edge being driven.
type TransitionPayload struct {
	// Pass resolves a QC request: false reroutes the order into the rework
	// loop instead of QCPassed. Nil means no QC verdict was supplied.
	Pass *bool

	// ReturnTo selects the rework destination on a failed QC: RoleGraphic
	// sends the order back to Designing, anything else to InProduction.
	ReturnTo Role

	// Reason is the free-text annotation for cancellations (required) and
	// stock issues (stored as the purchasing reason).
	Reason string

	// TrackingNo is required to complete a shipment.
	TrackingNo string

	// Note is an optional free-text remark appended to the audit label.
	Note string
}

// edge is one directed status transition.
type edge struct {
	from Status
	to   Status
}

// transitionRule describes who may drive an edge and what it does on success.
// The rule table is the single source of truth for the status machine; no
// other code decides whether a transition is legal.
type transitionRule struct {
	// roles allowed to drive this edge. Privileged roles always pass.
	roles []Role

	// gate names the department whose claim slot must be held by the actor.
	// Empty means the edge has no claim gate.
	gate Department

	// finishes names the department slot locked when the edge fires,
	// preserving the claimant's identity for display.
	finishes Department

	// requiresReason demands a non-empty payload reason (cancellation).
	requiresReason bool

	// requiresTracking demands a tracking number (shipment completion).
	requiresTracking bool

	// requiresSettlement blocks the edge while balanceDue > 0, unless the
	// order is cash-on-delivery (shipment completion).
	requiresSettlement bool

	// marksRework increments the rework counter (QC fail loop).
	marksRework bool

	// setsSubStatus / clearsSubStatus maintain the purchasing sub-state.
	setsSubStatus   SubStatus
	clearsSubStatus bool

	// action is the audit label appended on success.
	action string
}

// getTransitionRules returns the full edge table.
// Cancellation is not listed here: it is legal from every non-terminal
// status and handled by cancelRule.
func getTransitionRules() map[edge]transitionRule {
	return map[edge]transitionRule{
		{PendingDigitizing, DigitizingFinished}: {
			roles:  []Role{RoleDigitizer},
			action: "digitizing finished",
		},
		{DigitizingFinished, PendingArtwork}: {
			roles:  []Role{RoleDigitizer},
			action: "embroidery file handed off to artwork",
		},
		{PendingArtwork, Designing}: {
			roles:  []Role{RoleGraphic},
			gate:   DepartmentGraphic,
			action: "design started",
		},
		{Designing, PendingStockCheck}: {
			roles:    []Role{RoleGraphic},
			gate:     DepartmentGraphic,
			finishes: DepartmentGraphic,
			action:   "artwork sent to stock check",
		},
		{PendingStockCheck, StockRechecked}: {
			roles:    []Role{RoleStock},
			gate:     DepartmentStock,
			finishes: DepartmentStock,
			action:   "stock confirmed complete",
		},
		{PendingStockCheck, StockIssue}: {
			roles:         []Role{RoleStock},
			gate:          DepartmentStock,
			setsSubStatus: SubStatusPurchasing,
			action:        "stock issue reported",
		},
		{StockIssue, PendingStockCheck}: {
			roles:           []Role{RolePurchasing, RoleStock},
			clearsSubStatus: true,
			action:          "purchasing resolved, stock recheck requested",
		},
		{StockRechecked, InProduction}: {
			roles:  []Role{RoleProduction},
			gate:   DepartmentProduction,
			action: "production started",
		},
		{InProduction, ProductionFinished}: {
			roles:    []Role{RoleProduction},
			gate:     DepartmentProduction,
			finishes: DepartmentProduction,
			action:   "production finished, awaiting QC",
		},
		{ProductionFinished, QCPassed}: {
			roles:    []Role{RoleSewingQC},
			gate:     DepartmentQC,
			finishes: DepartmentQC,
			action:   "QC passed",
		},
		{ProductionFinished, InProduction}: {
			roles:       []Role{RoleSewingQC},
			gate:        DepartmentQC,
			marksRework: true,
			action:      "QC failed, returned to production",
		},
		{ProductionFinished, Designing}: {
			roles:       []Role{RoleSewingQC},
			gate:        DepartmentQC,
			marksRework: true,
			action:      "QC failed, returned to design",
		},
		{QCPassed, ReadyToShip}: {
			roles:  []Role{RoleDelivery},
			action: "received for shipping",
		},
		{ReadyToShip, Completed}: {
			roles:              []Role{RoleDelivery},
			requiresTracking:   true,
			requiresSettlement: true,
			action:             "shipped",
		},
	}
}

// cancelRule governs the any-non-terminal -> Cancelled edge.
func cancelRule() transitionRule {
	return transitionRule{
		roles:          []Role{RoleSales},
		requiresReason: true,
		action:         "order cancelled",
	}
}

// ruleFor resolves the rule for a requested edge, or false when the edge
// is not in the table.
func ruleFor(from, to Status) (transitionRule, bool) {
	if to == Cancelled {
		if from.IsTerminal() {
			return transitionRule{}, false
		}
		return cancelRule(), true
	}
	rule, ok := getTransitionRules()[edge{from: from, to: to}]
	return rule, ok
}

// resolveTarget applies QC verdict rerouting: a QCPassed request carrying
// pass=false resolves into the rework loop instead.
func resolveTarget(from, to Status, payload TransitionPayload) Status {
	if from == ProductionFinished && to == QCPassed && payload.Pass != nil && !*payload.Pass {
		if payload.ReturnTo == RoleGraphic {
			return Designing
		}
		return InProduction
	}
	return to
}

// allowsRole reports whether the actor role may drive this edge.
// Privileged roles pass every role check.
func (r transitionRule) allowsRole(role Role) bool {
	if role.IsPrivileged() {
		return true
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}
