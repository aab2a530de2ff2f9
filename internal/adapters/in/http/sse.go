package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// courierStatusFrame is the SSE data payload of one courier status event.
type courierStatusFrame struct {
	Kind   string `json:"kind"`
	UserID string `json:"user_id"`
}

// CourierStatusStream handles GET /api/v1/users/:user_id/courier-status/stream.
// It holds the connection open and forwards the user's courier status
// events as server-sent events until the client disconnects. Users may
// only stream their own events.
func (s *Server) CourierStatusStream(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	if !claims.UserID().IsEqual(userID) {
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "forbidden",
		})
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	ctx := c.Request().Context()
	events := s.statusBroker.Subscribe(ctx, userID)

	for event := range events {
		payload, marshalErr := json.Marshal(courierStatusFrame{
			Kind:   event.Kind.String(),
			UserID: event.UserID.String(),
		})
		if marshalErr != nil {
			continue
		}

		if _, writeErr := fmt.Fprintf(resp, "data: %s\n\n", payload); writeErr != nil {
			return nil
		}
		resp.Flush()
	}

	return nil
}
