package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrPurgeStaleBucketsCommandIsNotConstructed = errors.New(
	"PurgeStaleBucketsCommand must be created via NewPurgeStaleBucketsCommand constructor",
)

// PurgeStaleBucketsCommand asks for the deletion of bucket rows older than
// the given age. Issued by the background purge job, not by users, so it
// carries no claims.
type PurgeStaleBucketsCommand struct {
	olderThan time.Duration

	guard kernel.ConstructorGuard
}

// NewPurgeStaleBucketsCommand creates a purge command. olderThan must be
// positive.
func NewPurgeStaleBucketsCommand(olderThan time.Duration) (PurgeStaleBucketsCommand, error) {
	if olderThan <= 0 {
		return PurgeStaleBucketsCommand{}, errs.NewValueIsInvalidError("olderThan")
	}

	return PurgeStaleBucketsCommand{
		olderThan: olderThan,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeStaleBucketsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeStaleBucketsCommandIsNotConstructed)
}

// OlderThan returns the minimum age of rows to purge.
func (c PurgeStaleBucketsCommand) OlderThan() time.Duration {
	return c.olderThan
}
