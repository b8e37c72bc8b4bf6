package errs_test

import (
	"errors"
	"testing"

	"garmentflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("dueDate")

		assert.Equal(t, "dueDate", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: dueDate", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("dueDate", cause)

		assert.Equal(t, "dueDate", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: dueDate (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("paidAmount", -5, 0, 100)

		assert.Equal(t, "paidAmount", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is out of range: -5 is paidAmount, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("cancelReason")

		assert.Equal(t, "cancelReason", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: cancelReason", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestForbiddenError(t *testing.T) {
	t.Run("NewForbiddenError", func(t *testing.T) {
		err := errs.NewForbiddenError("STOCK", "ship")

		assert.Equal(t, "STOCK", err.Role)
		assert.Equal(t, "ship", err.Action)
		assert.Equal(t, "action is forbidden: ship is not allowed for role STOCK", err.Error())
		assert.Equal(t, errs.ErrForbidden, err.Unwrap())
	})

	t.Run("NewForbiddenErrorWithCause", func(t *testing.T) {
		cause := errors.New("claim slot locked")
		err := errs.NewForbiddenErrorWithCause("GRAPHIC", "claim", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Contains(t, err.Error(), "(cause: claim slot locked)")
	})
}

func TestNotClaimedError(t *testing.T) {
	err := errs.NewNotClaimedError("PRODUCTION", "actor-1")

	assert.Equal(t, "PRODUCTION", err.Department)
	assert.Equal(t, "actor-1", err.ActorID)
	assert.Equal(t, "department is not claimed: PRODUCTION is not claimed by actor actor-1", err.Error())
	assert.Equal(t, errs.ErrNotClaimed, err.Unwrap())
}

func TestAlreadyClaimedError(t *testing.T) {
	err := errs.NewAlreadyClaimedError("STOCK", "actor-2")

	assert.Equal(t, "STOCK", err.Department)
	assert.Equal(t, "actor-2", err.ClaimantID)
	assert.Equal(t, "department is already claimed: STOCK is held by actor actor-2", err.Error())
	assert.Equal(t, errs.ErrAlreadyClaimed, err.Unwrap())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("IN_PRODUCTION", "COMPLETED")

	assert.Equal(t, "IN_PRODUCTION", err.From)
	assert.Equal(t, "COMPLETED", err.To)
	assert.Equal(t, "status transition is invalid: IN_PRODUCTION -> COMPLETED", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", "42")

	assert.Equal(t, "order", err.ParamName)
	assert.Equal(t, "42", err.ID)
	assert.Equal(t, "concurrent modification conflict: param is: order, ID is: 42", err.Error())
	assert.Equal(t, errs.ErrConflict, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrNotClaimed)
		require.Error(t, errs.ErrAlreadyClaimed)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrConflict)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "action is forbidden", errs.ErrForbidden.Error())
		assert.Equal(t, "department is not claimed", errs.ErrNotClaimed.Error())
		assert.Equal(t, "department is already claimed", errs.ErrAlreadyClaimed.Error())
		assert.Equal(t, "status transition is invalid", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "concurrent modification conflict", errs.ErrConflict.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("dueDate"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("amount", -1, 0, 100), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("cancelReason"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewForbiddenError("STOCK", "ship"), errs.ErrForbidden)
		require.ErrorIs(t, errs.NewNotClaimedError("QC", "actor-1"), errs.ErrNotClaimed)
		require.ErrorIs(t, errs.NewAlreadyClaimedError("QC", "actor-2"), errs.ErrAlreadyClaimed)
		require.ErrorIs(t, errs.NewInvalidTransitionError("A", "B"), errs.ErrInvalidTransition)
		require.ErrorIs(t, errs.NewConflictError("order", 1), errs.ErrConflict)
	})
}
