package http

import (
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrorResponse is the JSON error body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderResponse is the JSON shape of one order.
type OrderResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CourierID string    `json:"courier_id"`
	Rating    *int      `json:"rating,omitempty"`
	Status    string    `json:"status"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItemResponse is the JSON shape of one order line.
type OrderItemResponse struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
}

// BucketItemResponse is the JSON shape of one bucket row.
type BucketItemResponse struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
}

// ProductResponse is the JSON shape of one catalog product. ProductType is
// omitted for roles the field is masked from.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	ProductType *string   `json:"product_type,omitempty"`
	Restaurant  string    `json:"restaurant"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QueueStatusResponse is the JSON shape of a wait-queue poll.
type QueueStatusResponse struct {
	Status         string `json:"status"`
	AvgWaitingTime int    `json:"avg_waiting_time"`
}

func orderFromDomain(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID().String(),
		UserID:    o.UserID().String(),
		CourierID: o.CourierID().String(),
		Rating:    o.Rating(),
		Status:    o.Status().String(),
		Address:   o.Address(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func orderFromReadModel(o queries.OrderResponse) OrderResponse {
	return OrderResponse{
		ID:        o.ID.String(),
		UserID:    o.UserID.String(),
		CourierID: o.CourierID.String(),
		Rating:    o.Rating,
		Status:    o.Status,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func productFromReadModel(p queries.ProductResponse) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Price:       p.Price,
		ProductType: p.ProductType,
		Restaurant:  p.Restaurant,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// statusFromError maps application errors to HTTP status codes per the
// service's error taxonomy. ports.ErrAddedToQueue is not here; checkout
// special-cases it as a 202 answer, not an error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, commands.ErrEmptyBucket),
		errors.Is(err, commands.ErrRatingWindowExpired),
		errors.Is(err, order.ErrAlreadyFinished),
		errors.Is(err, order.ErrAlreadyRated):
		return http.StatusConflict
	case errors.Is(err, ports.ErrCourierServiceUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorJSON writes the standard error body for err.
func errorJSON(err error) (int, ErrorResponse) {
	code := statusFromError(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return code, ErrorResponse{Code: code, Message: message}
}
