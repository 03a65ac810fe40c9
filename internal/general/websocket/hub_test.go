package websocket

import (
	"testing"

	"charide/internal/general/contracts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubFiltersByPassenger(t *testing.T) {
	hub := NewHub()
	sub := hub.SubscribePassenger("p1")
	defer sub.Cancel()

	hub.Broadcast(contracts.RideStatusMessage{RideID: "r1", PassengerID: "p1", Status: "accepted"})
	hub.Broadcast(contracts.RideStatusMessage{RideID: "r2", PassengerID: "p2", Status: "accepted"})

	msg := <-sub.C
	assert.Equal(t, "r1", msg.RideID)

	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected message for other passenger: %+v", extra)
	default:
	}
}

func TestHubFiltersByDriver(t *testing.T) {
	hub := NewHub()
	sub := hub.SubscribeDriver("d1")
	defer sub.Cancel()

	hub.Broadcast(contracts.RideStatusMessage{RideID: "r1", PassengerID: "p1", DriverID: "d1", Status: "en_route"})
	hub.Broadcast(contracts.RideStatusMessage{RideID: "r2", PassengerID: "p1", Status: "requested"})

	msg := <-sub.C
	assert.Equal(t, "r1", msg.RideID)
	assert.Equal(t, "en_route", msg.Status)

	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected message without driver: %+v", extra)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.SubscribePassenger("p1")
	require.Equal(t, 1, hub.Len())

	sub.Cancel()
	assert.Equal(t, 0, hub.Len())

	_, ok := <-sub.C
	assert.False(t, ok)

	// second Cancel must not panic
	sub.Cancel()

	// broadcasting after cancel is a no-op
	hub.Broadcast(contracts.RideStatusMessage{RideID: "r1", PassengerID: "p1"})
}

func TestHubSlowSubscriberDropsUpdates(t *testing.T) {
	hub := NewHub()
	sub := hub.SubscribePassenger("p1")
	defer sub.Cancel()

	for i := 0; i < subBuffer+5; i++ {
		hub.Broadcast(contracts.RideStatusMessage{RideID: "r1", PassengerID: "p1", Status: "requested"})
	}

	drained := 0
	for {
		select {
		case <-sub.C:
			drained++
			continue
		default:
		}
		break
	}
	assert.Equal(t, subBuffer, drained)
}
