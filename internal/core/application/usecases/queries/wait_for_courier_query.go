package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrWaitForCourierQueryIsNotConstructed = errors.New(
	"WaitForCourierQuery must be created via NewWaitForCourierQuery constructor",
)

// WaitForCourierQuery polls the matching service for the caller's wait
// queue position after an added-to-queue checkout outcome.
type WaitForCourierQuery struct {
	claims auth.Claims
	userID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewWaitForCourierQuery creates a queue-status query.
func NewWaitForCourierQuery(claims auth.Claims, userID kernel.UUID) (WaitForCourierQuery, error) {
	if err := errors.Join(
		claims.Validate(),
		userID.Validate(),
	); err != nil {
		return WaitForCourierQuery{}, err
	}

	return WaitForCourierQuery{
		claims: claims,
		userID: userID,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q WaitForCourierQuery) Validate() error {
	return q.guard.Validate(ErrWaitForCourierQueryIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (q WaitForCourierQuery) Claims() auth.Claims {
	return q.claims
}

// UserID returns the queued user's id.
func (q WaitForCourierQuery) UserID() kernel.UUID {
	return q.userID
}

// QueueStatusResponse reports the caller's wait queue position.
type QueueStatusResponse struct {
	Status         string
	AvgWaitingTime int
}
