package ports

import (
	"context"
	"time"
)

// ----- Shared views -----

// UserProfile is the public shape of a user row.
type UserProfile struct {
	ID                   string     `json:"id"`
	Email                string     `json:"email"`
	FullName             string     `json:"full_name"`
	Phone                string     `json:"phone"`
	Role                 string     `json:"role"`
	AccountStatus        string     `json:"account_status"`
	Rating               float64    `json:"rating"`
	TotalReviews         int        `json:"total_reviews"`
	PaymentMethod        *string    `json:"payment_method,omitempty"`
	ProfilePictureURL    *string    `json:"profile_picture_url,omitempty"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	IsActive             bool       `json:"is_active"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

// RideView is the public shape of a ride row.
type RideView struct {
	ID              string    `json:"id"`
	PassengerID     string    `json:"passenger_id"`
	DriverID        *string   `json:"driver_id"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	Status          string    `json:"status"`
	Fare            float64   `json:"fare"`
	Distance        *float64  `json:"distance,omitempty"`
	VehicleType     *string   `json:"vehicle_type,omitempty"`
	PaymentMethod   *string   `json:"payment_method,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ----- Auth -----

// SignupInput is the validated input for POST /auth/signup. Vehicle fields are
// required only on the driver portal.
type SignupInput struct {
	Email        string
	Password     string
	FullName     string
	Phone        string
	VehicleType  string
	VehiclePlate string
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// AuthService exposes signup/login/me for one portal role.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Me(ctx context.Context, userID string) (UserProfile, error)
}

// ----- Passenger service -----

// UpdateProfileInput carries the mutable profile fields; nil means unchanged.
type UpdateProfileInput struct {
	FullName             *string
	Phone                *string
	PaymentMethod        *string
	ProfilePictureURL    *string
	NotificationsEnabled *bool
}

// CreateRideInput is the validated input for POST /rides.
type CreateRideInput struct {
	PassengerID     string
	PickupLocation  string
	DropoffLocation string
	Status          string // optional initial status, defaults to requested
	DriverID        *string
	Fare            *float64
	Distance        *float64
	VehicleType     *string
}

// RideStatusInput is the validated input for the ride status update endpoints.
type RideStatusInput struct {
	Status        string
	Fare          *float64
	PaymentMethod *string
}

// NearbyDriverView is an online driver as shown to passengers.
type NearbyDriverView struct {
	DriverID          string   `json:"driver_id"`
	UserID            string   `json:"user_id"`
	FullName          string   `json:"full_name"`
	Phone             string   `json:"phone"`
	Rating            float64  `json:"rating"`
	ProfilePictureURL *string  `json:"profile_picture_url,omitempty"`
	VehicleType       string   `json:"vehicle_type"`
	VehiclePlate      string   `json:"vehicle_plate"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// RecentRideView is a ride with the assigned driver's public details.
type RecentRideView struct {
	RideView
	DriverName   *string `json:"driver_name,omitempty"`
	DriverAvatar *string `json:"driver_avatar,omitempty"`
}

// RideStatsResult aggregates the passenger's spend.
type RideStatsResult struct {
	TotalRides int     `json:"total_rides"`
	TotalSpent float64 `json:"total_spent"`
	LastFare   float64 `json:"last_fare"`
}

// PassengerService exposes the boundary of the passenger portal.
type PassengerService interface {
	GetProfile(ctx context.Context, userID string) (UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (UserProfile, error)
	DeleteProfile(ctx context.Context, userID string) error
	NearbyDrivers(ctx context.Context) ([]NearbyDriverView, error)
	CreateRide(ctx context.Context, in CreateRideInput) (RideView, error)
	AssignDriver(ctx context.Context, passengerID, rideID, driverID string) (RideView, error)
	UpdateRideStatus(ctx context.Context, passengerID, rideID string, in RideStatusInput) (RideView, error)
	RideHistory(ctx context.Context, passengerID string) ([]RideView, error)
	RecentRides(ctx context.Context, passengerID string) ([]RecentRideView, error)
	RideStats(ctx context.Context, passengerID string) (RideStatsResult, error)
}

// ----- Driver service -----

// DriverStatusInput carries the online flag and/or current coordinates.
type DriverStatusInput struct {
	IsOnline  *bool
	Latitude  *float64
	Longitude *float64
}

// DriverStatusResult echoes the stored availability state.
type DriverStatusResult struct {
	DriverID  string   `json:"driver_id"`
	IsOnline  bool     `json:"is_online"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// DriverProfile is a user profile extended with vehicle details.
type DriverProfile struct {
	UserProfile
	VehicleType  string `json:"vehicle_type"`
	VehiclePlate string `json:"vehicle_plate"`
	IsOnline     bool   `json:"is_online"`
}

// DriverRideView is a ride with the passenger's public details.
type DriverRideView struct {
	RideView
	PassengerName   string  `json:"passenger_name"`
	PassengerPhone  string  `json:"passenger_phone,omitempty"`
	PassengerAvatar *string `json:"passenger_avatar,omitempty"`
}

// MessageView is the public shape of a support message.
type MessageView struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// DriverService exposes the boundary of the driver portal.
type DriverService interface {
	GetProfile(ctx context.Context, userID string) (DriverProfile, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (DriverProfile, error)
	SetStatus(ctx context.Context, userID string, in DriverStatusInput) (DriverStatusResult, error)
	MyRides(ctx context.Context, userID string, status string) ([]DriverRideView, error)
	OpenRequests(ctx context.Context, userID string) ([]DriverRideView, error)
	AcceptRide(ctx context.Context, userID, rideID string) (RideView, error)
	UpdateRideStatus(ctx context.Context, userID, rideID string, in RideStatusInput) (RideView, error)
	SendMessage(ctx context.Context, userID, subject, body string) (MessageView, error)
}

// ----- Admin service -----

// AdminDriverView is a driver joined with their user row for moderation.
type AdminDriverView struct {
	DriverID      string   `json:"driver_id"`
	UserID        string   `json:"user_id"`
	Email         string   `json:"email"`
	FullName      string   `json:"full_name"`
	Phone         string   `json:"phone"`
	AccountStatus string   `json:"account_status"`
	Rating        float64  `json:"rating"`
	IsActive      bool     `json:"is_active"`
	VehicleType   string   `json:"vehicle_type"`
	VehiclePlate  string   `json:"vehicle_plate"`
	IsOnline      bool     `json:"is_online"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// AdminStatsResult aggregates platform totals.
type AdminStatsResult struct {
	TotalUsers   int     `json:"total_users"`
	TotalDrivers int     `json:"total_drivers"`
	TotalRides   int     `json:"total_rides"`
	TotalRevenue float64 `json:"total_revenue"`
}

// AdminService exposes the boundary of the admin portal.
type AdminService interface {
	ListUsers(ctx context.Context, status, role string) ([]UserProfile, error)
	SetUserStatus(ctx context.Context, userID, status string) (UserProfile, error)
	ListDrivers(ctx context.Context) ([]AdminDriverView, error)
	SetDriverStatus(ctx context.Context, driverID, status string) (UserProfile, error)
	ListRides(ctx context.Context, status string) ([]RideView, error)
	ForceRideStatus(ctx context.Context, rideID, status string) (RideView, error)
	Stats(ctx context.Context) (AdminStatsResult, error)
	ListMessages(ctx context.Context) ([]MessageView, error)
}
