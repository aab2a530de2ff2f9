package http

import (
	"net/http"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/labstack/echo/v4"
)

// matchingCallback is the body of both matching-service callbacks.
type matchingCallback struct {
	UserID string `json:"user_id"`
}

// CourierFound handles POST /internal/matching/courier-found: the matching
// service reports that a queued user now has a courier. The event fans out
// to the user's live subscribers; the 202 answer acknowledges receipt
// only, not delivery, since subscribers may be absent or slow and the
// event is then dropped.
func (s *Server) CourierFound(c echo.Context) error {
	return s.publishCallback(c, notification.KindCompleted)
}

// WaitExpired handles POST /internal/matching/wait-expired: the matching
// service reports that a queued user's wait timed out. Acknowledgment
// semantics match CourierFound.
func (s *Server) WaitExpired(c echo.Context) error {
	return s.publishCallback(c, notification.KindExpired)
}

func (s *Server) publishCallback(c echo.Context, kind notification.Kind) error {
	var body matchingCallback
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	userID, err := kernel.UUIDFromString(body.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	s.statusBroker.Publish(notification.CourierStatusEvent{
		Kind:   kind,
		UserID: userID,
	})

	return c.NoContent(http.StatusAccepted)
}
