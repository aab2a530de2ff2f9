package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPurgeStaleBucketsCommand(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cmd, err := commands.NewPurgeStaleBucketsCommand(24 * time.Hour)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, 24*time.Hour, cmd.OlderThan())
	})

	t.Run("NonPositiveAge", func(t *testing.T) {
		for _, olderThan := range []time.Duration{0, -time.Hour} {
			_, err := commands.NewPurgeStaleBucketsCommand(olderThan)
			assert.Error(t, err)
		}
	})

	t.Run("ZeroValueCommandFailsValidation", func(t *testing.T) {
		var cmd commands.PurgeStaleBucketsCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrPurgeStaleBucketsCommandIsNotConstructed)
	})
}

func TestPurgeStaleBucketsCommandHandler_Handle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctx := t.Context()
		olderThan := 24 * time.Hour

		bucketRepo := new(MockBucketRepository)
		uow := new(MockBucketUoW)
		factory := new(MockBucketUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("BucketRepository").Return(bucketRepo)

		before := time.Now().UTC().Add(-olderThan)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			bucketRepo.On("ClearOlderThan", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
				return !cutoff.Before(before) && cutoff.Before(time.Now().UTC().Add(-olderThan+time.Minute))
			})).Return(int64(7), nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewPurgeStaleBucketsCommandHandler(factory, discardLogger())

		cmd, err := commands.NewPurgeStaleBucketsCommand(olderThan)
		require.NoError(t, err)

		purged, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(7), purged)

		bucketRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("UnconstructedCommand", func(t *testing.T) {
		factory := new(MockBucketUoWFactory)
		handler := commands.NewPurgeStaleBucketsCommandHandler(factory, discardLogger())

		_, err := handler.Handle(t.Context(), commands.PurgeStaleBucketsCommand{})

		assert.ErrorIs(t, err, commands.ErrPurgeStaleBucketsCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}
