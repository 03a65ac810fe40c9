package ports

import (
	"context"

	"charide/internal/domain/ride"
	"charide/internal/domain/user"
)

// NewUserProfile maps a user row to its public view.
func NewUserProfile(u *user.User) UserProfile {
	return UserProfile{
		ID:                   u.ID,
		Email:                u.Email,
		FullName:             u.FullName,
		Phone:                u.Phone,
		Role:                 u.Role.String(),
		AccountStatus:        u.Status.String(),
		Rating:               u.Rating,
		TotalReviews:         u.TotalReviews,
		PaymentMethod:        u.PaymentMethod,
		ProfilePictureURL:    u.ProfilePictureURL,
		NotificationsEnabled: u.NotificationsEnabled,
		IsActive:             u.IsActive,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// NewRideView maps a ride row to its public view.
func NewRideView(r *ride.Ride) RideView {
	return RideView{
		ID:              r.ID,
		PassengerID:     r.PassengerID,
		DriverID:        r.DriverID,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		Status:          r.Status.String(),
		Fare:            r.Fare,
		Distance:        r.Distance,
		VehicleType:     r.VehicleType,
		PaymentMethod:   r.PaymentMethod,
		CreatedAt:       r.CreatedAt,
	}
}

// RideNotifier is the outbound seam for ride status fan-out. Implementations
// are best-effort and must never fail the calling operation.
type RideNotifier interface {
	RideStatusChanged(ctx context.Context, r *ride.Ride)
}
