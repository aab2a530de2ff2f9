// Package matching implements the outbound client for the external courier
// matching service. The service owns the courier fleet and the wait queue;
// this service only asks it for assignments and reports reputation scores
// back.
package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

const requestTimeout = 5 * time.Second

// Client talks JSON over HTTP to the matching service. Transport failures
// and 5xx answers map to ports.ErrCourierServiceUnavailable; the client
// never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a matching-service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type findCourierRequest struct {
	UserID string `json:"user_id"`
}

type findCourierResponse struct {
	Status         string `json:"status"`
	CourierID      string `json:"courier_id,omitempty"`
	AvgWaitingTime int    `json:"avg_waiting_time,omitempty"`
}

const (
	statusAssigned     = "ASSIGNED"
	statusAddedToQueue = "ADDED_TO_QUEUE"
)

// FindCourier asks the matching service for a free courier. Returns
// ports.ErrAddedToQueue when the service enrolled the user in its wait
// queue instead of assigning.
func (c *Client) FindCourier(ctx context.Context, userID kernel.UUID) (kernel.UUID, error) {
	var result findCourierResponse
	err := c.postJSON(ctx, "/couriers/find", findCourierRequest{UserID: userID.String()}, &result)
	if err != nil {
		return kernel.UUID{}, err
	}

	if result.Status == statusAddedToQueue {
		return kernel.UUID{}, ports.ErrAddedToQueue
	}

	courierID, err := kernel.UUIDFromString(result.CourierID)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: bad courier id in response: %w",
			ports.ErrCourierServiceUnavailable, err)
	}

	return courierID, nil
}

// WaitForCourier polls the user's wait queue state.
func (c *Client) WaitForCourier(ctx context.Context, userID kernel.UUID) (ports.QueueStatus, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/couriers/queue/"+userID.String(),
		nil,
	)
	if err != nil {
		return ports.QueueStatus{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.QueueStatus{}, fmt.Errorf("%w: %w", ports.ErrCourierServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.QueueStatus{}, fmt.Errorf("%w: status %d",
			ports.ErrCourierServiceUnavailable, resp.StatusCode)
	}

	var result findCourierResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ports.QueueStatus{}, fmt.Errorf("%w: decode response: %w",
			ports.ErrCourierServiceUnavailable, err)
	}

	return ports.QueueStatus{
		Status:         result.Status,
		AvgWaitingTime: result.AvgWaitingTime,
	}, nil
}

type updateRatingRequest struct {
	CourierID string  `json:"courier_id"`
	Rating    float64 `json:"rating"`
}

// UpdateCourierRating pushes a recomputed reputation score upstream.
func (c *Client) UpdateCourierRating(ctx context.Context, courierID kernel.UUID, rating float64) error {
	return c.postJSON(ctx, "/couriers/rating", updateRatingRequest{
		CourierID: courierID.String(),
		Rating:    rating,
	}, nil)
}

// postJSON sends a JSON body and optionally decodes a JSON answer into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrCourierServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ports.ErrCourierServiceUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ports.ErrCourierServiceUnavailable, err)
	}

	return nil
}
