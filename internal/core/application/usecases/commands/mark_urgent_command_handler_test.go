package commands_test

import (
	"testing"

	"garmentflow/internal/core/application/usecases/commands"
	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkUrgentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	creator := cmdActor(t, order.RoleSales)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "JOB-6001", creator.ID(), order.BlockOld,
		cmdTestNow.AddDate(0, 0, 5), 5000, 5000, order.PaymentTransfer, false, cmdTestNow,
	)
	require.NoError(t, err)
	cmd, err := commands.NewMarkUrgentCommand(aggregate.ID(), creator, "customer deadline moved")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkUrgentCommandHandler(factory)
	snap, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, snap.IsUrgent)
	assert.Equal(t, "customer deadline moved", snap.UrgentNote)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkUrgentCommandHandler_Handle_ForbiddenForOtherSales(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingArtworkOrder(t)
	otherSales := cmdActor(t, order.RoleSales)
	cmd, err := commands.NewMarkUrgentCommand(aggregate.ID(), otherSales, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkUrgentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
