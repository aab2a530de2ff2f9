package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// bucketPurgeSchedule runs the purge hourly, on the hour.
const bucketPurgeSchedule = "0 * * * *"

// BucketPurgeJob deletes abandoned bucket rows on a schedule. Rows older
// than the configured TTL were picked but never checked out and only
// accumulate storage.
type BucketPurgeJob struct {
	handler   commands.PurgeStaleBucketsCommandHandler
	bucketTTL time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewBucketPurgeJob creates the purge job. bucketTTL sets the minimum age
// of rows to delete.
func NewBucketPurgeJob(
	handler commands.PurgeStaleBucketsCommandHandler,
	bucketTTL time.Duration,
	logger *slog.Logger,
) *BucketPurgeJob {
	return &BucketPurgeJob{
		handler:   handler,
		bucketTTL: bucketTTL,
		cron:      cron.New(),
		logger:    logger.With("component", "bucket_purge_job"),
	}
}

// Start begins the purge job on its hourly schedule.
func (j *BucketPurgeJob) Start() error {
	_, err := j.cron.AddFunc(bucketPurgeSchedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewPurgeStaleBucketsCommand(j.bucketTTL)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Bucket purge job misconfigured", "error", cmdErr)
			return
		}

		if _, handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Bucket purge job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Bucket purge job started (running hourly)")
	return nil
}

// Stop stops the purge job.
func (j *BucketPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Bucket purge job stopped")
}
