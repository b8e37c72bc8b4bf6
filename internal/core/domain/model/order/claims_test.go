package order_test

import (
	"testing"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaims_Claim(t *testing.T) {
	actorA := kernel.NewUUID()
	actorB := kernel.NewUUID()

	t.Run("should claim an open slot", func(t *testing.T) {
		claims := order.NewClaims()

		err := claims.Claim(order.DepartmentGraphic, actorA, false)

		require.NoError(t, err)
		assert.True(t, claims.IsClaimedBy(order.DepartmentGraphic, actorA))
	})

	t.Run("should keep slots independent across departments", func(t *testing.T) {
		claims := order.NewClaims()

		require.NoError(t, claims.Claim(order.DepartmentGraphic, actorA, false))
		require.NoError(t, claims.Claim(order.DepartmentStock, actorB, false))

		assert.True(t, claims.IsClaimedBy(order.DepartmentGraphic, actorA))
		assert.True(t, claims.IsClaimedBy(order.DepartmentStock, actorB))
		assert.False(t, claims.IsClaimedBy(order.DepartmentProduction, actorA))
	})

	t.Run("should accept a repeated claim by the same actor", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentQC, actorA, false))

		err := claims.Claim(order.DepartmentQC, actorA, false)

		require.NoError(t, err)
		assert.True(t, claims.IsClaimedBy(order.DepartmentQC, actorA))
	})

	t.Run("should reject a claim on a held slot", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentQC, actorA, false))

		err := claims.Claim(order.DepartmentQC, actorB, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
		var alreadyClaimed *errs.AlreadyClaimedError
		require.ErrorAs(t, err, &alreadyClaimed)
		assert.Equal(t, actorA.String(), alreadyClaimed.ClaimantID)
		assert.True(t, claims.IsClaimedBy(order.DepartmentQC, actorA))
	})

	t.Run("should reassign a held slot with force", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentQC, actorA, false))

		err := claims.Claim(order.DepartmentQC, actorB, true)

		require.NoError(t, err)
		assert.True(t, claims.IsClaimedBy(order.DepartmentQC, actorB))
		assert.False(t, claims.IsClaimedBy(order.DepartmentQC, actorA))
	})

	t.Run("should reject any takeover of a finished slot", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentGraphic, actorA, false))
		claims.Finish(order.DepartmentGraphic)

		err := claims.Claim(order.DepartmentGraphic, actorB, true)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
		assert.True(t, claims.IsClaimedBy(order.DepartmentGraphic, actorA))
	})

	t.Run("should accept a same-actor claim on a finished slot", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentGraphic, actorA, false))
		claims.Finish(order.DepartmentGraphic)

		err := claims.Claim(order.DepartmentGraphic, actorA, false)

		require.NoError(t, err)
		assert.True(t, claims.IsFinished(order.DepartmentGraphic))
	})

	t.Run("should reject an invalid department", func(t *testing.T) {
		claims := order.NewClaims()

		err := claims.Claim(order.Department("SHIPPING"), actorA, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an unconstructed actor id", func(t *testing.T) {
		claims := order.NewClaims()
		var emptyID kernel.UUID

		err := claims.Claim(order.DepartmentGraphic, emptyID, false)

		require.Error(t, err)
	})
}

func TestClaims_Finish(t *testing.T) {
	actorA := kernel.NewUUID()

	t.Run("should preserve the claimant on a finished slot", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentStock, actorA, false))

		claims.Finish(order.DepartmentStock)

		assert.True(t, claims.IsFinished(order.DepartmentStock))
		require.NotNil(t, claims.Claimant(order.DepartmentStock))
		assert.True(t, claims.Claimant(order.DepartmentStock).IsEqual(actorA))
	})
}

func TestClaims_Records(t *testing.T) {
	actorA := kernel.NewUUID()

	t.Run("should round-trip through restore", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentGraphic, actorA, false))
		claims.Finish(order.DepartmentGraphic)

		restored := order.RestoreClaims(claims.Records())

		assert.True(t, restored.IsClaimedBy(order.DepartmentGraphic, actorA))
		assert.True(t, restored.IsFinished(order.DepartmentGraphic))
		assert.Nil(t, restored.Claimant(order.DepartmentStock))
	})

	t.Run("should restore missing departments as open slots", func(t *testing.T) {
		restored := order.RestoreClaims(nil)

		for _, d := range order.AllDepartments() {
			assert.Nil(t, restored.Claimant(d))
			assert.False(t, restored.IsFinished(d))
		}
	})

	t.Run("should return detached copies", func(t *testing.T) {
		claims := order.NewClaims()
		require.NoError(t, claims.Claim(order.DepartmentGraphic, actorA, false))

		records := claims.Records()
		other := kernel.NewUUID()
		records[order.DepartmentGraphic] = order.ClaimRecord{Claimant: &other}

		assert.True(t, claims.IsClaimedBy(order.DepartmentGraphic, actorA))
	})
}
