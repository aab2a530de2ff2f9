package queries

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// WaitForCourierQueryHandler proxies queue-status polls to the matching
// service. No database access: the queue lives upstream.
type WaitForCourierQueryHandler struct {
	courierClient ports.CourierClient
	policyEngine  *services.PolicyEngine
}

// NewWaitForCourierQueryHandler creates a handler for queue-status polls.
func NewWaitForCourierQueryHandler(
	courierClient ports.CourierClient,
	policyEngine *services.PolicyEngine,
) WaitForCourierQueryHandler {
	return WaitForCourierQueryHandler{
		courierClient: courierClient,
		policyEngine:  policyEngine,
	}
}

// Handle polls the matching service. Users may only poll their own position.
func (h WaitForCourierQueryHandler) Handle(ctx context.Context, query WaitForCourierQuery) (QueueStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return QueueStatusResponse{}, err
	}

	if err := h.policyEngine.HasAccessByIdentity(query.Claims(), query.UserID()); err != nil {
		return QueueStatusResponse{}, err
	}

	status, err := h.courierClient.WaitForCourier(ctx, query.UserID())
	if err != nil {
		return QueueStatusResponse{}, err
	}

	return QueueStatusResponse{
		Status:         status.Status,
		AvgWaitingTime: status.AvgWaitingTime,
	}, nil
}
