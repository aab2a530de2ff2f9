// Package broker provides the in-process notification fan-out used to push
// courier status events to connected clients. Subscriptions are keyed by
// user id; each subscriber owns a bounded channel and slow consumers lose
// events rather than blocking publishers.
package broker

import (
	"context"
	"sync"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/prometheus/client_golang/prometheus"
)

// subscriberBuffer bounds the per-subscriber channel. Publishing to a full
// buffer drops the event for that subscriber only.
const subscriberBuffer = 16

// CourierStatusBroker fans out courier status events to subscribers by
// user id. Safe for concurrent use. Delivery is at-most-once: events
// published while a user has no subscribers, or while a subscriber's
// buffer is full, are dropped.
type CourierStatusBroker struct {
	mu          sync.RWMutex
	subscribers map[kernel.UUID]map[chan notification.CourierStatusEvent]struct{}

	subscriberGauge prometheus.Gauge
}

// NewCourierStatusBroker creates an empty broker. The gauge tracks the
// number of live subscriptions; pass nil to disable the metric.
func NewCourierStatusBroker(subscriberGauge prometheus.Gauge) *CourierStatusBroker {
	return &CourierStatusBroker{
		subscribers:     make(map[kernel.UUID]map[chan notification.CourierStatusEvent]struct{}),
		subscriberGauge: subscriberGauge,
	}
}

// Subscribe registers for the user's events until ctx is canceled. The
// returned channel is closed on cancellation; after that it stops
// receiving events and must not be reused.
func (b *CourierStatusBroker) Subscribe(ctx context.Context, userID kernel.UUID) <-chan notification.CourierStatusEvent {
	ch := make(chan notification.CourierStatusEvent, subscriberBuffer)

	b.mu.Lock()
	if b.subscribers[userID] == nil {
		b.subscribers[userID] = make(map[chan notification.CourierStatusEvent]struct{})
	}
	b.subscribers[userID][ch] = struct{}{}
	b.mu.Unlock()

	if b.subscriberGauge != nil {
		b.subscriberGauge.Inc()
	}

	go func() {
		<-ctx.Done()
		b.unsubscribe(userID, ch)
	}()

	return ch
}

func (b *CourierStatusBroker) unsubscribe(userID kernel.UUID, ch chan notification.CourierStatusEvent) {
	b.mu.Lock()
	set, ok := b.subscribers[userID]
	if ok {
		if _, live := set[ch]; live {
			delete(set, ch)
			close(ch)
			if len(set) == 0 {
				delete(b.subscribers, userID)
			}
			if b.subscriberGauge != nil {
				b.subscriberGauge.Dec()
			}
		}
	}
	b.mu.Unlock()
}

// Publish delivers the event to every current subscriber of its user.
// Never blocks: subscribers whose buffer is full are skipped. Returns the
// number of subscribers that received the event.
func (b *CourierStatusBroker) Publish(event notification.CourierStatusEvent) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for ch := range b.subscribers[event.UserID] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}

	return delivered
}

// SubscriberCount reports how many live subscriptions the user has.
func (b *CourierStatusBroker) SubscriberCount(userID kernel.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[userID])
}
