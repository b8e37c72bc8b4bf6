package order

import (
	"fmt"

	"garmentflow/internal/pkg/errs"
)

// PaymentMethod is how the customer settles the order balance.
// Cash-on-delivery orders are treated as pre-authorized for shipping
// regardless of the outstanding balance.
type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCash     PaymentMethod = "CASH"
	PaymentCOD      PaymentMethod = "COD"
)

// Validate checks that the payment method is a member of the enumerated set.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentTransfer, PaymentCash, PaymentCOD:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod is invalid",
			fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

// String returns the wire label of the payment method.
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentState classifies how much of the order total has been paid.
// It is always a pure function of totalPrice and paidAmount and is never
// stored independently of its inputs.
type PaymentState string

const (
	PaymentUnpaid        PaymentState = "UNPAID"
	PaymentPartiallyPaid PaymentState = "PARTIALLY_PAID"
	PaymentPaid          PaymentState = "PAID"
)

// String returns the wire label of the payment state.
func (s PaymentState) String() string {
	return string(s)
}

// PaymentStateFor derives the payment state from the order's money columns.
// Amounts are in the smallest currency unit.
func PaymentStateFor(totalPrice, paidAmount int64) PaymentState {
	switch {
	case paidAmount >= totalPrice:
		return PaymentPaid
	case paidAmount > 0:
		return PaymentPartiallyPaid
	default:
		return PaymentUnpaid
	}
}

// BalanceDueFor returns the outstanding balance, never negative.
func BalanceDueFor(totalPrice, paidAmount int64) int64 {
	if balance := totalPrice - paidAmount; balance > 0 {
		return balance
	}
	return 0
}
