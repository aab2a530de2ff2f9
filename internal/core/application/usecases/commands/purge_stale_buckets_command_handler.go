package commands

import (
	"context"
	"log/slog"
	"time"
)

// PurgeStaleBucketsCommandHandler deletes bucket rows that were abandoned:
// added long ago and never checked out.
type PurgeStaleBucketsCommandHandler struct {
	uowFactory BucketUoWFactory
	logger     *slog.Logger
}

// NewPurgeStaleBucketsCommandHandler creates a handler for bucket purging.
func NewPurgeStaleBucketsCommandHandler(
	uowFactory BucketUoWFactory,
	logger *slog.Logger,
) PurgeStaleBucketsCommandHandler {
	return PurgeStaleBucketsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle deletes every bucket row created before now minus the command's
// age threshold and returns the number of deleted rows.
func (h *PurgeStaleBucketsCommandHandler) Handle(ctx context.Context, cmd PurgeStaleBucketsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.BucketRepository().ClearOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if purged > 0 {
		h.logger.InfoContext(ctx, "purged stale bucket rows",
			slog.Int64("rows", purged),
			slog.Time("cutoff", cutoff),
		)
	}

	return purged, nil
}
