package ports

import (
	"context"

	"charide/internal/domain/driver"
	"charide/internal/domain/message"
	"charide/internal/domain/ride"
	"charide/internal/domain/user"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the methods for managing user data.
type UserRepository interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateProfile(ctx context.Context, u *user.User) error
	UpdateStatus(ctx context.Context, id string, status user.AccountStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status *user.AccountStatus, role *user.Role) ([]*user.User, error)
	Count(ctx context.Context) (int, error)
}

// DriverRepository defines the methods for managing driver data.
type DriverRepository interface {
	CreateDriver(ctx context.Context, d *driver.Driver) error
	GetByUserID(ctx context.Context, userID string) (*driver.Driver, error)
	UserIDForDriver(ctx context.Context, driverID string) (string, error)
	UpdateStatus(ctx context.Context, userID string, upd driver.StatusUpdate) error
	IsOnline(ctx context.Context, userID string) (bool, error)
	ListOnline(ctx context.Context) ([]NearbyDriverRow, error)
	ListAll(ctx context.Context) ([]AdminDriverRow, error)
	Count(ctx context.Context) (int, error)
}

// RideRepository defines the methods for managing ride data.
//
// GetByIDForUpdate locks the row; callers mutate the ride through domain
// methods inside the same transaction and persist with SaveRide. Claim is the
// single-statement conditional accept.
type RideRepository interface {
	CreateRide(ctx context.Context, r *ride.Ride) error
	GetByID(ctx context.Context, id string) (*ride.Ride, error)
	GetByIDForUpdate(ctx context.Context, id string) (*ride.Ride, error)
	SaveRide(ctx context.Context, r *ride.Ride) error
	Claim(ctx context.Context, rideID, driverID string) (*ride.Ride, error)
	ListByPassenger(ctx context.Context, passengerID string) ([]*ride.Ride, error)
	ListRecentByPassenger(ctx context.Context, passengerID string, limit int) ([]RecentRideRow, error)
	ListByDriver(ctx context.Context, driverID string, status *ride.Status) ([]RideFeedRow, error)
	ListOpenRequests(ctx context.Context) ([]RideFeedRow, error)
	ListAll(ctx context.Context, status *ride.Status) ([]*ride.Ride, error)
	DeleteByPassenger(ctx context.Context, passengerID string) error
	PassengerStats(ctx context.Context, passengerID string) (PassengerRideStats, error)
	Count(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

// MessageRepository defines the methods for the driver support inbox.
type MessageRepository interface {
	CreateMessage(ctx context.Context, m *message.Message) error
	ListAll(ctx context.Context) ([]MessageRow, error)
}

// NearbyDriverRow is an online driver joined with the public part of the user row.
type NearbyDriverRow struct {
	DriverID          string
	UserID            string
	FullName          string
	Phone             string
	Rating            float64
	ProfilePictureURL *string
	VehicleType       string
	VehiclePlate      string
	Latitude          *float64
	Longitude         *float64
}

// AdminDriverRow is a driver joined with their full user row for moderation.
type AdminDriverRow struct {
	Driver        driver.Driver
	Email         string
	FullName      string
	Phone         string
	AccountStatus user.AccountStatus
	Rating        float64
	IsActive      bool
}

// RideFeedRow is a ride enriched with passenger details for the driver portal.
type RideFeedRow struct {
	Ride            ride.Ride
	PassengerName   string
	PassengerPhone  string
	PassengerAvatar *string
}

// RecentRideRow is a ride enriched with driver details for the passenger portal.
type RecentRideRow struct {
	Ride         ride.Ride
	DriverName   *string
	DriverAvatar *string
}

// PassengerRideStats aggregates a passenger's ride spend.
type PassengerRideStats struct {
	TotalRides int
	TotalSpent float64
	LastFare   float64
}

// MessageRow is a support message joined with the sender's name.
type MessageRow struct {
	Message    message.Message
	SenderName string
}
