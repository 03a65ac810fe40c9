// Package contracts defines the wire messages and broker topology names
// shared by the portal services.
package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Envelope carries tracing metadata on every published message.
type Envelope struct {
	CorrelationID string    `json:"correlation_id"`
	Producer      string    `json:"producer"`
	SentAt        time.Time `json:"sent_at"`
}

// NewEnvelope stamps an envelope for the given producer service.
func NewEnvelope(producer string) Envelope {
	return Envelope{
		CorrelationID: uuid.NewString(),
		Producer:      producer,
		SentAt:        time.Now().UTC(),
	}
}

// RideStatusMessage is published after every successful ride mutation.
// Consumers filter on passenger_id/driver_id and forward to clients.
type RideStatusMessage struct {
	RideID      string  `json:"ride_id"`
	PassengerID string  `json:"passenger_id"`
	DriverID    string  `json:"driver_id,omitempty"`
	Status      string  `json:"status"`
	Fare        float64 `json:"fare"`

	Timestamp time.Time `json:"timestamp"`
	Envelope  Envelope  `json:"envelope"`
}
