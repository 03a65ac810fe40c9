package rabbitmq

import (
	"fmt"

	"charide/internal/general/contracts"

	amqp "github.com/rabbitmq/amqp091-go"
)

// declareTopology declares the ride status fan-out: one topic exchange, one
// durable queue per consuming portal, both bound to every status routing key.
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(contracts.ExchangeRideTopic, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", contracts.ExchangeRideTopic, err)
	}

	queues := []string{
		contracts.QueueRideStatusPassenger,
		contracts.QueueRideStatusDriver,
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
		if err := ch.QueueBind(q, contracts.RouteRideStatusPrefix+"*", contracts.ExchangeRideTopic, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", q, contracts.ExchangeRideTopic, err)
		}
	}

	return nil
}
