package commands_test

import (
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/bucket"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	policyEngine := services.NewPolicyEngine()

	t.Run("Success", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		claims := claimsFor(t, userID, auth.RoleUser)

		firstProduct := kernel.NewUUID()
		secondProduct := kernel.NewUUID()
		bucketRows := []bucket.Item{
			mustBucketItem(t, userID, firstProduct, 2),
			mustBucketItem(t, userID, secondProduct, 1),
		}

		orderRepo := new(MockOrderRepository)
		bucketRepo := new(MockBucketRepository)
		uow := new(MockCheckoutUoW)
		factory := new(MockCheckoutUoWFactory)
		courierClient := new(MockCourierClient)
		publisher := new(MockOrderEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("BucketRepository").Return(bucketRepo)

		bucketRepo.On("GetByUser", ctx, userID).Return(bucketRows, nil).Once()
		courierClient.On("FindCourier", ctx, userID).Return(courierID, nil).Once()

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
				return o.UserID().IsEqual(userID) &&
					o.CourierID().IsEqual(courierID) &&
					o.Status() == order.StatusInProgress &&
					o.Address() == "Baker Street 221b"
			})).Return(nil).Once(),
			orderRepo.On("AddItems", ctx, mock.MatchedBy(func(items []order.Item) bool {
				return len(items) == 2 &&
					items[0].ProductID().IsEqual(firstProduct) && items[0].Amount() == 2 &&
					items[1].ProductID().IsEqual(secondProduct) && items[1].Amount() == 1
			})).Return(nil).Once(),
			bucketRepo.On("Clear", ctx, userID).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		publisher.On("PublishOrderChanged", ctx, mock.AnythingOfType("ports.OrderChangedEvent")).
			Return(nil).Once()

		handler := commands.NewCreateOrderCommandHandler(
			factory, &policyEngine, courierClient, publisher, discardLogger(),
		)

		cmd, err := commands.NewCreateOrderCommand(claims, userID, "Baker Street 221b")
		require.NoError(t, err)

		created, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, created.UserID().IsEqual(userID))
		assert.True(t, created.CourierID().IsEqual(courierID))
		assert.Equal(t, order.StatusInProgress, created.Status())

		factory.AssertExpectations(t)
		uow.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
		bucketRepo.AssertExpectations(t)
		courierClient.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("EmptyBucketSkipsMatching", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		claims := claimsFor(t, userID, auth.RoleUser)

		bucketRepo := new(MockBucketRepository)
		uow := new(MockCheckoutUoW)
		factory := new(MockCheckoutUoWFactory)
		courierClient := new(MockCourierClient)
		publisher := new(MockOrderEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("BucketRepository").Return(bucketRepo)
		bucketRepo.On("GetByUser", ctx, userID).Return([]bucket.Item{}, nil).Once()

		handler := commands.NewCreateOrderCommandHandler(
			factory, &policyEngine, courierClient, publisher, discardLogger(),
		)

		cmd, err := commands.NewCreateOrderCommand(claims, userID, "Baker Street 221b")
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, commands.ErrEmptyBucket)
		courierClient.AssertNotCalled(t, "FindCourier", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
		publisher.AssertNotCalled(t, "PublishOrderChanged", mock.Anything, mock.Anything)
	})

	t.Run("AddedToQueuePersistsNothing", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		claims := claimsFor(t, userID, auth.RoleUser)

		bucketRepo := new(MockBucketRepository)
		uow := new(MockCheckoutUoW)
		factory := new(MockCheckoutUoWFactory)
		courierClient := new(MockCourierClient)
		publisher := new(MockOrderEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("BucketRepository").Return(bucketRepo)
		bucketRepo.On("GetByUser", ctx, userID).
			Return([]bucket.Item{mustBucketItem(t, userID, kernel.NewUUID(), 1)}, nil).Once()
		courierClient.On("FindCourier", ctx, userID).
			Return(kernel.UUID{}, ports.ErrAddedToQueue).Once()

		handler := commands.NewCreateOrderCommandHandler(
			factory, &policyEngine, courierClient, publisher, discardLogger(),
		)

		cmd, err := commands.NewCreateOrderCommand(claims, userID, "Baker Street 221b")
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, ports.ErrAddedToQueue)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
		bucketRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("ForbiddenForOtherUser", func(t *testing.T) {
		ctx := t.Context()
		claims := claimsFor(t, kernel.NewUUID(), auth.RoleUser)

		factory := new(MockCheckoutUoWFactory)
		courierClient := new(MockCourierClient)
		publisher := new(MockOrderEventPublisher)

		handler := commands.NewCreateOrderCommandHandler(
			factory, &policyEngine, courierClient, publisher, discardLogger(),
		)

		cmd, err := commands.NewCreateOrderCommand(claims, kernel.NewUUID(), "Baker Street 221b")
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, services.ErrForbidden)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("CommitErrorSkipsPublish", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		claims := claimsFor(t, userID, auth.RoleUser)
		commitErr := errors.New("commit failed")

		orderRepo := new(MockOrderRepository)
		bucketRepo := new(MockBucketRepository)
		uow := new(MockCheckoutUoW)
		factory := new(MockCheckoutUoWFactory)
		courierClient := new(MockCourierClient)
		publisher := new(MockOrderEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("BucketRepository").Return(bucketRepo)
		bucketRepo.On("GetByUser", ctx, userID).
			Return([]bucket.Item{mustBucketItem(t, userID, kernel.NewUUID(), 1)}, nil).Once()
		courierClient.On("FindCourier", ctx, userID).Return(kernel.NewUUID(), nil).Once()

		uow.On("Begin", ctx).Return(nil).Once()
		orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
		orderRepo.On("AddItems", ctx, mock.Anything).Return(nil).Once()
		bucketRepo.On("Clear", ctx, userID).Return(nil).Once()
		uow.On("Commit", ctx).Return(commitErr).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewCreateOrderCommandHandler(
			factory, &policyEngine, courierClient, publisher, discardLogger(),
		)

		cmd, err := commands.NewCreateOrderCommand(claims, userID, "Baker Street 221b")
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, commitErr)
		publisher.AssertNotCalled(t, "PublishOrderChanged", mock.Anything, mock.Anything)
	})

	t.Run("UnconstructedCommand", func(t *testing.T) {
		factory := new(MockCheckoutUoWFactory)
		handler := commands.NewCreateOrderCommandHandler(
			factory, &policyEngine, new(MockCourierClient), new(MockOrderEventPublisher), discardLogger(),
		)

		_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

		assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}
