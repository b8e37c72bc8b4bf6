package commands_test

import (
	"testing"

	"garmentflow/internal/core/application/usecases/commands"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetSLABufferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingArtworkOrder(t)
	executive := cmdActor(t, order.RoleExecutive)
	cmd, err := commands.NewSetSLABufferCommand(aggregate.ID(), executive, 3)
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

	h := commands.NewSetSLABufferCommandHandler(factory)
	snap, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, snap.SLABufferDays)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetSLABufferCommandHandler_Handle_ForbiddenForUnprivilegedRole(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingArtworkOrder(t)
	sales := cmdActor(t, order.RoleSales)
	cmd, err := commands.NewSetSLABufferCommand(aggregate.ID(), sales, 3)
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

	h := commands.NewSetSLABufferCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
