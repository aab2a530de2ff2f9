package http

import (
	"errors"
	"net/http"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Forbidden", services.ErrForbidden, http.StatusForbidden},
		{"EmptyBucket", commands.ErrEmptyBucket, http.StatusConflict},
		{"RatingWindowExpired", commands.ErrRatingWindowExpired, http.StatusConflict},
		{"AlreadyFinished", order.ErrAlreadyFinished, http.StatusConflict},
		{"AlreadyRated", order.ErrAlreadyRated, http.StatusConflict},
		{"CourierServiceUnavailable", ports.ErrCourierServiceUnavailable, http.StatusBadGateway},
		{"NotFound", errs.NewObjectNotFoundError("orderID", "x"), http.StatusNotFound},
		{"ValueInvalid", errs.NewValueIsInvalidError("amount"), http.StatusBadRequest},
		{"ValueRequired", errs.NewValueIsRequiredError("address"), http.StatusBadRequest},
		{"ValueOutOfRange", errs.NewValueIsOutOfRangeError("rating", 9, 1, 5), http.StatusBadRequest},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, statusFromError(tc.err))
		})
	}

	t.Run("WrappedErrorStillMaps", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), services.ErrForbidden)
		assert.Equal(t, http.StatusForbidden, statusFromError(wrapped))
	})
}

func TestErrorJSON(t *testing.T) {
	t.Run("ClientErrorKeepsMessage", func(t *testing.T) {
		code, resp := errorJSON(commands.ErrEmptyBucket)

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Equal(t, commands.ErrEmptyBucket.Error(), resp.Message)
	})

	t.Run("InternalErrorMasksMessage", func(t *testing.T) {
		code, resp := errorJSON(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "internal error", resp.Message)
	})
}
