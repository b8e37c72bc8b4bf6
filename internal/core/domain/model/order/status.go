package order

import (
	"fmt"

	"garmentflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a garment order.
// It is the backbone of the department pipeline:
//
//	PendingDigitizing ──> DigitizingFinished ──> PendingArtwork ──> Designing
//	    ──> PendingStockCheck ──> StockRechecked ──> InProduction
//	    ──> ProductionFinished ──> QCPassed ──> ReadyToShip ──> Completed
//
// with the two loops PendingStockCheck <─> StockIssue (purchasing) and
// ProductionFinished ──> InProduction (QC rework), and Cancelled reachable
// from any non-terminal state.
//
// Status is a value object; the permitted edges live in the transition rule
// table (see transitions.go) and are enforced by the Order aggregate.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingDigitizing is the initial status for orders with a new embroidery block.
	PendingDigitizing

	// DigitizingFinished indicates the embroidery file is ready for artwork.
	DigitizingFinished

	// PendingArtwork is the initial status for orders reusing an existing block.
	PendingArtwork

	// Designing indicates a graphic actor is working on the artwork.
	Designing

	// PendingStockCheck indicates the artwork is done and stock must be verified.
	PendingStockCheck

	// StockIssue indicates missing stock; purchasing must resolve an ETA.
	StockIssue

	// StockRechecked indicates stock is complete and production may start.
	StockRechecked

	// InProduction indicates the order is being manufactured.
	InProduction

	// ProductionFinished indicates manufacturing is done and QC is pending.
	ProductionFinished

	// QCPassed indicates quality control approved the order.
	QCPassed

	// ReadyToShip indicates the order is packed and awaiting shipment.
	ReadyToShip

	// Completed indicates the order has been shipped. Terminal.
	Completed

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

// getStatusStrings returns the wire labels for every Status value.
// The labels match the codes persisted and exposed over the API.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		PendingDigitizing:  "PENDING_DIGITIZING",
		DigitizingFinished: "DIGITIZING_FINISHED",
		PendingArtwork:     "PENDING_ARTWORK",
		Designing:          "DESIGNING",
		PendingStockCheck:  "PENDING_STOCK_CHECK",
		StockIssue:         "STOCK_ISSUE",
		StockRechecked:     "STOCK_RECHECKED",
		InProduction:       "IN_PRODUCTION",
		ProductionFinished: "PRODUCTION_FINISHED",
		QCPassed:           "QC_PASSED",
		ReadyToShip:        "READY_TO_SHIP",
		Completed:          "COMPLETED",
		Cancelled:          "CANCELLED",
	}
}

// StatusFromString parses a wire label back into a Status.
// Returns an error for unknown labels.
func StatusFromString(s string) (Status, error) {
	for status, label := range getStatusStrings() {
		if label == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a member of the enumerated set.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire label of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status freezes further status mutation.
// Claims and annotations may still be appended on terminal orders for audit,
// but no status edge fires out of a terminal state.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}
