// Package notify publishes ride status changes to the broker and forwards
// consumed changes into the websocket hub.
package notify

import (
	"context"
	"encoding/json"

	"charide/internal/domain/ride"
	"charide/internal/general/contracts"
	"charide/internal/general/logger"
	"charide/internal/general/rabbitmq"
	"charide/internal/general/websocket"
	"charide/internal/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the broker-facing slice of the RabbitMQ client.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// RideNotifier publishes RideStatusMessage after ride mutations. Failures are
// logged and swallowed: push losses are bounded by client polling.
type RideNotifier struct {
	pub      Publisher
	log      *logger.Logger
	producer string
}

// NewRideNotifier builds a notifier stamped with the producing service name.
func NewRideNotifier(pub Publisher, log *logger.Logger, producer string) *RideNotifier {
	return &RideNotifier{pub: pub, log: log, producer: producer}
}

var _ ports.RideNotifier = (*RideNotifier)(nil)

// RideStatusChanged publishes the ride's current state with routing key
// ride.status.<status>.
func (n *RideNotifier) RideStatusChanged(ctx context.Context, r *ride.Ride) {
	msg := contracts.RideStatusMessage{
		RideID:      r.ID,
		PassengerID: r.PassengerID,
		Status:      r.Status.String(),
		Fare:        r.Fare,
		Envelope:    contracts.NewEnvelope(n.producer),
	}
	if r.DriverID != nil {
		msg.DriverID = *r.DriverID
	}
	msg.Timestamp = msg.Envelope.SentAt

	body, err := json.Marshal(msg)
	if err != nil {
		n.log.Error(ctx, "ride_status_encode_failed", "Failed to encode ride status message", err, map[string]any{
			"ride_id": r.ID,
		})
		return
	}

	routingKey := contracts.RouteRideStatusPrefix + msg.Status
	if err := n.pub.Publish(contracts.ExchangeRideTopic, routingKey, body); err != nil {
		n.log.Error(ctx, "ride_status_publish_failed", "Failed to publish ride status", err, map[string]any{
			"ride_id":     r.ID,
			"routing_key": routingKey,
		})
		return
	}

	n.log.Debug(ctx, "ride_status_published", "Published ride status", map[string]any{
		"ride_id":     r.ID,
		"status":      msg.Status,
		"routing_key": routingKey,
	})
}

// RunHubForwarder consumes the portal's queue and broadcasts each ride status
// message into the websocket hub. Blocks until ctx is cancelled.
func RunHubForwarder(ctx context.Context, client *rabbitmq.Client, queue, consumerTag string, hub *websocket.Hub, log *logger.Logger) error {
	return client.Consume(ctx, queue, consumerTag, 16, func(hCtx context.Context, d amqp.Delivery) error {
		var msg contracts.RideStatusMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Error(hCtx, "ride_status_decode_failed", "Failed to decode ride status message", err, map[string]any{
				"routing_key": d.RoutingKey,
			})
			return err
		}
		hub.Broadcast(msg)
		return nil
	})
}
