package ride

import (
	"strings"
	"time"

	"charide/internal/general/errs"
)

// Ride is the domain entity corresponding to the `rides` table.
type Ride struct {
	// Identity & audit
	ID        string
	CreatedAt time.Time // set once at creation, never updated

	// Actors
	PassengerID string
	DriverID    *string // nil until a driver is assigned or claims the ride

	// Locations (free text, as entered by the passenger)
	PickupLocation  string
	DropoffLocation string

	// Core state
	Status Status

	// Money & descriptive fields
	Fare          float64
	Distance      *float64
	VehicleType   *string
	PaymentMethod *string // recorded when the ride is paid
}

// NewRide constructs a ride in its initial state. An empty initialStatus
// defaults to `requested`; a caller-supplied one must be a member of the
// closed status set.
func NewRide(passengerID, pickup, dropoff string, initialStatus Status) (*Ride, error) {
	passengerID = strings.TrimSpace(passengerID)
	if passengerID == "" {
		return nil, errs.Validationf("passenger id is required")
	}
	pickup = strings.TrimSpace(pickup)
	dropoff = strings.TrimSpace(dropoff)
	if pickup == "" || dropoff == "" {
		return nil, errs.Validationf("pickup and dropoff are required")
	}
	if initialStatus == "" {
		initialStatus = StatusRequested
	}
	if !initialStatus.Valid() {
		return nil, errs.Validationf("unknown ride status %q", initialStatus)
	}

	return &Ride{
		CreatedAt:       time.Now().UTC(),
		PassengerID:     passengerID,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		Status:          initialStatus,
		Fare:            0,
	}, nil
}

// Assign records the passenger's preferred driver and moves the ride to
// `assigned`. Rejected once a different driver already holds the ride.
func (ride *Ride) Assign(driverID string) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return errs.Validationf("driver id is required")
	}
	if ride.DriverID != nil && *ride.DriverID != driverID {
		return errs.ErrConflict
	}
	if !ride.Status.CanTransitionTo(StatusAssigned) {
		return errs.Validationf("cannot assign a driver while ride is %s", ride.Status)
	}
	ride.DriverID = &driverID
	ride.Status = StatusAssigned
	return nil
}

// Claim is the driver-side accept: sets the driver exactly once and moves to
// `accepted`. A repeat claim by the same driver is an idempotent no-op; a
// claim on a ride held by someone else is a conflict.
func (ride *Ride) Claim(driverID string) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return errs.Validationf("driver id is required")
	}
	if ride.DriverID != nil && *ride.DriverID != driverID {
		return errs.ErrConflict
	}
	if ride.DriverID != nil && ride.Status == StatusAccepted {
		return nil
	}
	if !ride.Status.CanTransitionTo(StatusAccepted) {
		return errs.Validationf("cannot accept a ride that is %s", ride.Status)
	}
	ride.DriverID = &driverID
	ride.Status = StatusAccepted
	return nil
}

// MarkPaid records fare and payment method and moves the ride to `paid`.
// Payment never completes a ride: completion stays a driver-side action.
func (ride *Ride) MarkPaid(fare float64, method string) error {
	if fare < 0 {
		return errs.Validationf("fare cannot be negative")
	}
	if !ride.Status.CanTransitionTo(StatusPaid) {
		return errs.Validationf("cannot pay for a ride that is %s", ride.Status)
	}
	ride.Fare = fare
	if m := strings.TrimSpace(method); m != "" {
		ride.PaymentMethod = &m
	}
	ride.Status = StatusPaid
	return nil
}

// ApplyStatus moves the ride along the lifecycle graph. Re-applying the
// current status is a no-op.
func (ride *Ride) ApplyStatus(next Status) error {
	if !next.Valid() {
		return errs.Validationf("unknown ride status %q", next)
	}
	if ride.Status == next {
		return nil
	}
	if !ride.Status.CanTransitionTo(next) {
		return errs.Validationf("illegal transition %s -> %s", ride.Status, next)
	}
	ride.Status = next
	return nil
}

// Cancel moves any non-terminal ride to `cancelled`. Cancelling an already
// cancelled ride is a no-op; a completed ride stays completed.
func (ride *Ride) Cancel() error {
	if ride.Status == StatusCancelled {
		return nil
	}
	if ride.Status.Terminal() {
		return errs.Validationf("cannot cancel a ride that is %s", ride.Status)
	}
	ride.Status = StatusCancelled
	return nil
}
