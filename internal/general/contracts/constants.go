package contracts

// Exchanges
const (
	ExchangeRideTopic = "ride_topic"
)

// Queues. Each portal service consumes its own copy of the ride status
// stream, so a slow driver consumer never starves passenger notifications.
const (
	QueueRideStatusPassenger = "ride_status_passenger"
	QueueRideStatusDriver    = "ride_status_driver"
)

// Routing patterns
const (
	RouteRideStatusPrefix = "ride.status." // {status}
)
