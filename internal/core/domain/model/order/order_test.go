package order_test

import (
	"testing"
	"time"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testDueDate() time.Time {
	return testNow.AddDate(0, 0, 5)
}

func mustActor(t *testing.T, role order.Role) order.Actor {
	t.Helper()
	actor, err := order.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

// crew bundles one actor per pipeline role for workflow tests.
type crew struct {
	sales      order.Actor
	digitizer  order.Actor
	graphic    order.Actor
	stock      order.Actor
	production order.Actor
	qc         order.Actor
	delivery   order.Actor
	admin      order.Actor
}

func newCrew(t *testing.T) crew {
	t.Helper()
	return crew{
		sales:      mustActor(t, order.RoleSales),
		digitizer:  mustActor(t, order.RoleDigitizer),
		graphic:    mustActor(t, order.RoleGraphic),
		stock:      mustActor(t, order.RoleStock),
		production: mustActor(t, order.RoleProduction),
		qc:         mustActor(t, order.RoleSewingQC),
		delivery:   mustActor(t, order.RoleDelivery),
		admin:      mustActor(t, order.RoleAdmin),
	}
}

func newPaidOrder(t *testing.T, salesID kernel.UUID, blockType order.BlockType) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "JOB-1001", salesID, blockType,
		testDueDate(), 5000, 5000, order.PaymentTransfer, false, testNow,
	)
	require.NoError(t, err)
	return o
}

// driveToProductionFinished walks an existing-block order through the pipeline
// up to the QC stage, claiming each department slot on the way.
func driveToProductionFinished(t *testing.T, o *order.Order, c crew) {
	t.Helper()
	require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))
	_, err := o.ApplyTransition(c.graphic, order.Designing, order.TransitionPayload{}, testNow)
	require.NoError(t, err)
	_, err = o.ApplyTransition(c.graphic, order.PendingStockCheck, order.TransitionPayload{}, testNow)
	require.NoError(t, err)

	require.NoError(t, o.ClaimDepartment(order.DepartmentStock, c.stock, testNow))
	_, err = o.ApplyTransition(c.stock, order.StockRechecked, order.TransitionPayload{}, testNow)
	require.NoError(t, err)

	require.NoError(t, o.ClaimDepartment(order.DepartmentProduction, c.production, testNow))
	_, err = o.ApplyTransition(c.production, order.InProduction, order.TransitionPayload{}, testNow)
	require.NoError(t, err)
	_, err = o.ApplyTransition(c.production, order.ProductionFinished, order.TransitionPayload{}, testNow)
	require.NoError(t, err)

	require.NoError(t, o.ClaimDepartment(order.DepartmentQC, c.qc, testNow))
}

func TestNewOrder(t *testing.T) {
	salesID := kernel.NewUUID()

	t.Run("should create order with existing block entering at pending artwork", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-1001", salesID, order.BlockOld,
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.PendingArtwork, o.Status())
		assert.Equal(t, order.SubStatusNone, o.SubStatus())
		assert.Equal(t, "JOB-1001", o.JobID())
		assert.True(t, o.SalesID().IsEqual(salesID))
		assert.Equal(t, int64(5000), o.TotalPrice())
		assert.Equal(t, int64(5000), o.BalanceDue())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentState())
		assert.Equal(t, 0, o.ReworkCount())
		assert.False(t, o.IsUrgent())
		assert.Equal(t, testNow, o.CreatedAt())
		assert.Equal(t, testNow, o.UpdatedAt())
	})

	t.Run("should create order with new block entering at pending digitizing", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-1002", salesID, order.BlockNew,
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)

		require.NoError(t, err)
		assert.Equal(t, order.PendingDigitizing, o.Status())
	})

	t.Run("should create order with edited block entering at pending artwork", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-1003", salesID, order.BlockEdit,
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)

		require.NoError(t, err)
		assert.Equal(t, order.PendingArtwork, o.Status())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(
			invalidID, "JOB-1001", salesID, order.BlockOld,
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty job id", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "  ", salesID, order.BlockOld,
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "jobId")
	})

	t.Run("should fail with zero due date", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-1001", salesID, order.BlockOld,
			time.Time{}, 5000, 0, order.PaymentTransfer, false, testNow,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "dueDate")
	})

	t.Run("should fail with negative total price", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-1001", salesID, order.BlockOld,
			testDueDate(), -1, 0, order.PaymentTransfer, false, testNow,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with invalid block type", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-1001", salesID, order.BlockType("SHINY"),
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "block type")
	})

	t.Run("should fail with invalid payment method", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-1001", salesID, order.BlockOld,
			testDueDate(), 5000, 0, order.PaymentMethod("BARTER"), false, testNow,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "payment method")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(
			invalidID, "", kernel.UUID{}, order.BlockType(""),
			time.Time{}, -5, -5, order.PaymentMethod(""), false, testNow,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "jobId")
		assert.Contains(t, err.Error(), "dueDate")
		assert.Contains(t, err.Error(), "block type")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass validation for properly constructed order", func(t *testing.T) {
		o := newPaidOrder(t, kernel.NewUUID(), order.BlockOld)

		require.NoError(t, o.Validate())
	})

	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_ApplyTransition(t *testing.T) {
	t.Run("should follow the complete pipeline for an existing block", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		driveToProductionFinished(t, o, c)
		assert.Equal(t, order.ProductionFinished, o.Status())
		assert.True(t, o.IsDepartmentFinished(order.DepartmentGraphic))
		assert.True(t, o.IsDepartmentFinished(order.DepartmentStock))
		assert.True(t, o.IsDepartmentFinished(order.DepartmentProduction))

		pass := true
		action, err := o.ApplyTransition(c.qc, order.QCPassed, order.TransitionPayload{Pass: &pass}, testNow)
		require.NoError(t, err)
		assert.Equal(t, "QC passed", action)
		assert.True(t, o.IsDepartmentFinished(order.DepartmentQC))

		_, err = o.ApplyTransition(c.delivery, order.ReadyToShip, order.TransitionPayload{}, testNow)
		require.NoError(t, err)

		action, err = o.ApplyTransition(c.delivery, order.Completed,
			order.TransitionPayload{TrackingNo: "TH123456789"}, testNow)
		require.NoError(t, err)
		assert.Equal(t, "shipped", action)
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, "TH123456789", o.TrackingNo())
	})

	t.Run("should route a new block through digitizing first", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockNew)

		_, err := o.ApplyTransition(c.digitizer, order.DigitizingFinished, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.digitizer, order.PendingArtwork, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		assert.Equal(t, order.PendingArtwork, o.Status())
	})

	t.Run("should reject an edge missing from the rule table", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		_, err := o.ApplyTransition(c.production, order.InProduction, order.TransitionPayload{}, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.PendingArtwork, o.Status())
	})

	t.Run("should reject a role outside the edge's allowed set", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))

		_, err := o.ApplyTransition(c.stock, order.Designing, order.TransitionPayload{}, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should reject a gated edge without the claim slot", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		_, err := o.ApplyTransition(c.graphic, order.Designing, order.TransitionPayload{}, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrNotClaimed)
		assert.Equal(t, order.PendingArtwork, o.Status())
	})

	t.Run("should let admin drive a gated edge without a claim", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		_, err := o.ApplyTransition(c.admin, order.Designing, order.TransitionPayload{}, testNow)

		require.NoError(t, err)
		assert.Equal(t, order.Designing, o.Status())
	})

	t.Run("should reject every mutation on a terminal order", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		_, err := o.ApplyTransition(c.sales, order.Cancelled,
			order.TransitionPayload{Reason: "customer withdrew"}, testNow)
		require.NoError(t, err)

		_, err = o.ApplyTransition(c.admin, order.Designing, order.TransitionPayload{}, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should require a reason to cancel", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		_, err := o.ApplyTransition(c.sales, order.Cancelled, order.TransitionPayload{Reason: "  "}, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "cancelReason")
		assert.Equal(t, order.PendingArtwork, o.Status())
	})

	t.Run("should store the cancel reason", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		action, err := o.ApplyTransition(c.sales, order.Cancelled,
			order.TransitionPayload{Reason: "fabric discontinued"}, testNow)

		require.NoError(t, err)
		assert.Equal(t, "order cancelled", action)
		assert.Equal(t, "fabric discontinued", o.CancelReason())
	})

	t.Run("should set purchasing sub-status on a stock issue and clear it on resolution", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))
		_, err := o.ApplyTransition(c.graphic, order.Designing, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.graphic, order.PendingStockCheck, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		require.NoError(t, o.ClaimDepartment(order.DepartmentStock, c.stock, testNow))

		_, err = o.ApplyTransition(c.stock, order.StockIssue,
			order.TransitionPayload{Reason: "thread out of stock, ETA 4 days"}, testNow)
		require.NoError(t, err)
		assert.Equal(t, order.SubStatusPurchasing, o.SubStatus())
		assert.Equal(t, "thread out of stock, ETA 4 days", o.PurchasingReason())

		purchasing := mustActor(t, order.RolePurchasing)
		_, err = o.ApplyTransition(purchasing, order.PendingStockCheck, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		assert.Equal(t, order.SubStatusNone, o.SubStatus())
	})

	t.Run("should require a tracking number to ship", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		driveToProductionFinished(t, o, c)
		pass := true
		_, err := o.ApplyTransition(c.qc, order.QCPassed, order.TransitionPayload{Pass: &pass}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.delivery, order.ReadyToShip, order.TransitionPayload{}, testNow)
		require.NoError(t, err)

		_, err = o.ApplyTransition(c.delivery, order.Completed, order.TransitionPayload{}, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "trackingNo")
	})

	t.Run("should block shipping with an outstanding balance", func(t *testing.T) {
		c := newCrew(t)
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-2001", c.sales.ID(), order.BlockOld,
			testDueDate(), 5000, 1000, order.PaymentTransfer, false, testNow,
		)
		require.NoError(t, err)
		driveToProductionFinished(t, o, c)
		pass := true
		_, err = o.ApplyTransition(c.qc, order.QCPassed, order.TransitionPayload{Pass: &pass}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.delivery, order.ReadyToShip, order.TransitionPayload{}, testNow)
		require.NoError(t, err)

		_, err = o.ApplyTransition(c.delivery, order.Completed,
			order.TransitionPayload{TrackingNo: "TH1"}, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "payment incomplete")
		assert.Equal(t, order.ReadyToShip, o.Status())
	})

	t.Run("should ship a cash-on-delivery order with an outstanding balance", func(t *testing.T) {
		c := newCrew(t)
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-2002", c.sales.ID(), order.BlockOld,
			testDueDate(), 5000, 0, order.PaymentCOD, false, testNow,
		)
		require.NoError(t, err)
		driveToProductionFinished(t, o, c)
		pass := true
		_, err = o.ApplyTransition(c.qc, order.QCPassed, order.TransitionPayload{Pass: &pass}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.delivery, order.ReadyToShip, order.TransitionPayload{}, testNow)
		require.NoError(t, err)

		_, err = o.ApplyTransition(c.delivery, order.Completed,
			order.TransitionPayload{TrackingNo: "TH2"}, testNow)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, int64(5000), o.BalanceDue())
	})
}

func TestOrder_QCRework(t *testing.T) {
	t.Run("should reroute a failed QC verdict back to production", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		driveToProductionFinished(t, o, c)

		fail := false
		action, err := o.ApplyTransition(c.qc, order.QCPassed, order.TransitionPayload{Pass: &fail}, testNow)

		require.NoError(t, err)
		assert.Equal(t, "QC failed, returned to production", action)
		assert.Equal(t, order.InProduction, o.Status())
		assert.Equal(t, 1, o.ReworkCount())
		assert.False(t, o.IsDepartmentFinished(order.DepartmentQC))
	})

	t.Run("should reroute a failed QC verdict back to design when requested", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		driveToProductionFinished(t, o, c)

		fail := false
		action, err := o.ApplyTransition(c.qc, order.QCPassed,
			order.TransitionPayload{Pass: &fail, ReturnTo: order.RoleGraphic}, testNow)

		require.NoError(t, err)
		assert.Equal(t, "QC failed, returned to design", action)
		assert.Equal(t, order.Designing, o.Status())
		assert.Equal(t, 1, o.ReworkCount())
	})

	t.Run("should count every rework loop", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		driveToProductionFinished(t, o, c)

		fail := false
		_, err := o.ApplyTransition(c.qc, order.QCPassed, order.TransitionPayload{Pass: &fail}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.production, order.ProductionFinished, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.qc, order.QCPassed, order.TransitionPayload{Pass: &fail}, testNow)
		require.NoError(t, err)

		assert.Equal(t, 2, o.ReworkCount())
	})
}

func TestOrder_ClaimDepartment(t *testing.T) {
	t.Run("should claim an open slot", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		err := o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow)

		require.NoError(t, err)
		assert.True(t, o.IsClaimedBy(order.DepartmentGraphic, c.graphic.ID()))
		require.NotNil(t, o.Claimant(order.DepartmentGraphic))
		assert.True(t, o.Claimant(order.DepartmentGraphic).IsEqual(c.graphic.ID()))
	})

	t.Run("should treat a repeated claim by the same actor as a no-op", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))

		err := o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, testNow, o.UpdatedAt())
	})

	t.Run("should reject a claim on a slot held by another actor", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))
		rival := mustActor(t, order.RoleGraphic)

		err := o.ClaimDepartment(order.DepartmentGraphic, rival, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
		assert.True(t, o.IsClaimedBy(order.DepartmentGraphic, c.graphic.ID()))
	})

	t.Run("should let admin force-claim over another actor", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))

		err := o.ClaimDepartment(order.DepartmentGraphic, c.admin, testNow)

		require.NoError(t, err)
		assert.True(t, o.IsClaimedBy(order.DepartmentGraphic, c.admin.ID()))
	})

	t.Run("should reject a claim by a role outside the department", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		err := o.ClaimDepartment(order.DepartmentGraphic, c.stock, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should lock a finished slot against takeover", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))
		_, err := o.ApplyTransition(c.graphic, order.Designing, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		_, err = o.ApplyTransition(c.graphic, order.PendingStockCheck, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		require.True(t, o.IsDepartmentFinished(order.DepartmentGraphic))

		err = o.ClaimDepartment(order.DepartmentGraphic, c.admin, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
		assert.True(t, o.IsClaimedBy(order.DepartmentGraphic, c.graphic.ID()))
	})
}

func TestOrder_MarkUrgent(t *testing.T) {
	t.Run("should let the sales creator escalate their own order", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		err := o.MarkUrgent(c.sales, "customer flies out friday", testNow)

		require.NoError(t, err)
		assert.True(t, o.IsUrgent())
		assert.Equal(t, "customer flies out friday", o.UrgentNote())
	})

	t.Run("should let admin escalate any order", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		err := o.MarkUrgent(c.admin, "", testNow)

		require.NoError(t, err)
		assert.True(t, o.IsUrgent())
	})

	t.Run("should reject escalation by a different sales actor", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		otherSales := mustActor(t, order.RoleSales)

		err := o.MarkUrgent(otherSales, "", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.False(t, o.IsUrgent())
	})

	t.Run("should reject creator escalation on a terminal order", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		_, err := o.ApplyTransition(c.sales, order.Cancelled,
			order.TransitionPayload{Reason: "done"}, testNow)
		require.NoError(t, err)

		err = o.MarkUrgent(c.sales, "", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should reject admin escalation on a terminal order", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		_, err := o.ApplyTransition(c.sales, order.Cancelled,
			order.TransitionPayload{Reason: "done"}, testNow)
		require.NoError(t, err)

		err = o.MarkUrgent(c.admin, "rush", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.False(t, o.IsUrgent())
	})
}

func TestOrder_AutoMarkUrgent(t *testing.T) {
	t.Run("should escalate a quiet order", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		changed := o.AutoMarkUrgent("no activity for 3 days", testNow)

		assert.True(t, changed)
		assert.True(t, o.IsUrgent())
		assert.Equal(t, "no activity for 3 days", o.UrgentNote())
	})

	t.Run("should skip an order that is already urgent", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.MarkUrgent(c.sales, "rush", testNow))

		changed := o.AutoMarkUrgent("no activity", testNow)

		assert.False(t, changed)
		assert.Equal(t, "rush", o.UrgentNote())
	})

	t.Run("should skip a terminal order", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		_, err := o.ApplyTransition(c.sales, order.Cancelled,
			order.TransitionPayload{Reason: "done"}, testNow)
		require.NoError(t, err)

		changed := o.AutoMarkUrgent("no activity", testNow)

		assert.False(t, changed)
		assert.False(t, o.IsUrgent())
	})
}

func TestOrder_RecordPayment(t *testing.T) {
	t.Run("should accumulate payments and derive the state", func(t *testing.T) {
		c := newCrew(t)
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-3001", c.sales.ID(), order.BlockOld,
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)
		require.NoError(t, err)

		require.NoError(t, o.RecordPayment(2000, "", testNow))
		assert.Equal(t, order.PaymentPartiallyPaid, o.PaymentState())
		assert.Equal(t, int64(3000), o.BalanceDue())

		require.NoError(t, o.RecordPayment(3000, "", testNow))
		assert.Equal(t, order.PaymentPaid, o.PaymentState())
		assert.Equal(t, int64(0), o.BalanceDue())
	})

	t.Run("should switch the payment method when provided", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		require.NoError(t, o.RecordPayment(0, order.PaymentCash, testNow))

		assert.Equal(t, order.PaymentCash, o.PaymentMethod())
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		err := o.RecordPayment(-100, "", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject an amount above the outstanding balance", func(t *testing.T) {
		c := newCrew(t)
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-3002", c.sales.ID(), order.BlockOld,
			testDueDate(), 5000, 4000, order.PaymentTransfer, false, testNow,
		)
		require.NoError(t, err)

		err = o.RecordPayment(1500, "", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, int64(4000), o.PaidAmount())
	})

	t.Run("should reject an invalid payment method", func(t *testing.T) {
		c := newCrew(t)
		o, err := order.NewOrder(
			kernel.NewUUID(), "JOB-3003", c.sales.ID(), order.BlockOld,
			testDueDate(), 5000, 0, order.PaymentTransfer, false, testNow,
		)
		require.NoError(t, err)

		err = o.RecordPayment(100, order.PaymentMethod("IOU"), testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_SetSLABuffer(t *testing.T) {
	t.Run("should let executive set the buffer", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		executive := mustActor(t, order.RoleExecutive)

		err := o.SetSLABuffer(executive, 2, testNow)

		require.NoError(t, err)
		assert.Equal(t, 2, o.SLABufferDays())
	})

	t.Run("should reject a non-privileged role", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		err := o.SetSLABuffer(c.sales, 2, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, 0, o.SLABufferDays())
	})

	t.Run("should reject a negative buffer", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)

		err := o.SetSLABuffer(c.admin, -1, testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_SnapshotRestore(t *testing.T) {
	t.Run("should round-trip an order through snapshot and restore", func(t *testing.T) {
		c := newCrew(t)
		o := newPaidOrder(t, c.sales.ID(), order.BlockOld)
		require.NoError(t, o.ClaimDepartment(order.DepartmentGraphic, c.graphic, testNow))
		_, err := o.ApplyTransition(c.graphic, order.Designing, order.TransitionPayload{}, testNow)
		require.NoError(t, err)
		require.NoError(t, o.MarkUrgent(c.sales, "rush", testNow))

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Status(), restored.Status())
		assert.Equal(t, o.JobID(), restored.JobID())
		assert.True(t, restored.IsClaimedBy(order.DepartmentGraphic, c.graphic.ID()))
		assert.True(t, restored.IsUrgent())
		assert.Equal(t, o.UpdatedAt(), restored.UpdatedAt())
		assert.Equal(t, o.Version(), restored.Version())
	})

	t.Run("should fail to restore an invalid status", func(t *testing.T) {
		c := newCrew(t)
		snap := newPaidOrder(t, c.sales.ID(), order.BlockOld).Snapshot()
		snap.Status = order.Status(99)

		restored, err := order.RestoreOrder(snap)

		require.Error(t, err)
		assert.Nil(t, restored)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should default an empty sub-status to none", func(t *testing.T) {
		c := newCrew(t)
		snap := newPaidOrder(t, c.sales.ID(), order.BlockOld).Snapshot()
		snap.SubStatus = ""

		restored, err := order.RestoreOrder(snap)

		require.NoError(t, err)
		assert.Equal(t, order.SubStatusNone, restored.SubStatus())
	})
}
