package websocket

import (
	"sync"

	"charide/internal/general/contracts"
)

// subBuffer is the per-subscriber channel capacity. A slow consumer loses
// updates rather than blocking the broadcast path.
const subBuffer = 16

// Subscription is a handle to a stream of ride status updates. Callers must
// Cancel when done; C is closed afterwards.
type Subscription struct {
	C      <-chan contracts.RideStatusMessage
	cancel func()
}

// Cancel unregisters the subscription and closes C. Safe to call twice.
func (s *Subscription) Cancel() {
	s.cancel()
}

type subscriber struct {
	passengerID string
	driverID    string
	ch          chan contracts.RideStatusMessage
}

func (s *subscriber) wants(msg contracts.RideStatusMessage) bool {
	if s.passengerID != "" {
		return msg.PassengerID == s.passengerID
	}
	if s.driverID != "" {
		return msg.DriverID == s.driverID
	}
	return false
}

// Hub fans ride status updates out to subscribed clients. Each portal service
// runs one Hub fed by its broker queue consumer.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscriber)}
}

// SubscribePassenger registers interest in updates for rides owned by the
// given passenger.
func (h *Hub) SubscribePassenger(passengerID string) *Subscription {
	return h.add(&subscriber{passengerID: passengerID, ch: make(chan contracts.RideStatusMessage, subBuffer)})
}

// SubscribeDriver registers interest in updates for rides assigned to the
// given driver.
func (h *Hub) SubscribeDriver(driverID string) *Subscription {
	return h.add(&subscriber{driverID: driverID, ch: make(chan contracts.RideStatusMessage, subBuffer)})
}

func (h *Hub) add(sub *subscriber) *Subscription {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	return &Subscription{
		C: sub.ch,
		cancel: func() {
			once.Do(func() {
				h.mu.Lock()
				delete(h.subs, id)
				h.mu.Unlock()
				close(sub.ch)
			})
		},
	}
}

// Broadcast delivers the update to every matching subscriber. Never blocks:
// subscribers whose buffer is full miss this update.
func (h *Hub) Broadcast(msg contracts.RideStatusMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if !sub.wants(msg) {
			continue
		}
		select {
		case sub.ch <- msg:
		default:
			// subscriber is not keeping up, drop
		}
	}
}

// Len reports the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
