// Package service implements the passenger portal logic: profile, nearby
// drivers, ride booking, payment and history.
package service

import (
	"context"

	"charide/internal/domain/user"
	"charide/internal/general/logger"
	"charide/internal/ports"
)

type passengerService struct {
	uow      ports.UnitOfWork
	users    ports.UserRepository
	drivers  ports.DriverRepository
	rides    ports.RideRepository
	notifier ports.RideNotifier
	logger   *logger.Logger
}

// NewPassengerService creates the passenger portal boundary.
func NewPassengerService(
	uow ports.UnitOfWork,
	users ports.UserRepository,
	drivers ports.DriverRepository,
	rides ports.RideRepository,
	notifier ports.RideNotifier,
	logger *logger.Logger,
) ports.PassengerService {
	return &passengerService{
		uow:      uow,
		users:    users,
		drivers:  drivers,
		rides:    rides,
		notifier: notifier,
		logger:   logger,
	}
}

// GetProfile returns the caller's profile.
func (s *passengerService) GetProfile(ctx context.Context, userID string) (ports.UserProfile, error) {
	var u *user.User
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		u, err = s.users.GetByID(txCtx, userID)
		return err
	})
	if err != nil {
		return ports.UserProfile{}, err
	}
	return ports.NewUserProfile(u), nil
}

// UpdateProfile applies the provided fields to the caller's profile.
func (s *passengerService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (ports.UserProfile, error) {
	var u *user.User
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		u, err = s.users.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		applyProfileUpdate(u, in)
		return s.users.UpdateProfile(txCtx, u)
	})
	if err != nil {
		return ports.UserProfile{}, err
	}

	s.logger.Info(ctx, "profile_updated", "Passenger profile updated", map[string]any{"user_id": userID})
	return ports.NewUserProfile(u), nil
}

// DeleteProfile removes the account and all rides it owns, in one transaction.
func (s *passengerService) DeleteProfile(ctx context.Context, userID string) error {
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.rides.DeleteByPassenger(txCtx, userID); err != nil {
			return err
		}
		return s.users.Delete(txCtx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "profile_deleted", "Passenger account and rides deleted", map[string]any{"user_id": userID})
	return nil
}

// NearbyDrivers lists every driver currently online.
func (s *passengerService) NearbyDrivers(ctx context.Context) ([]ports.NearbyDriverView, error) {
	var rows []ports.NearbyDriverRow
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.drivers.ListOnline(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.NearbyDriverView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ports.NearbyDriverView{
			DriverID:          r.DriverID,
			UserID:            r.UserID,
			FullName:          r.FullName,
			Phone:             r.Phone,
			Rating:            r.Rating,
			ProfilePictureURL: r.ProfilePictureURL,
			VehicleType:       r.VehicleType,
			VehiclePlate:      r.VehiclePlate,
			Latitude:          r.Latitude,
			Longitude:         r.Longitude,
		})
	}
	return out, nil
}

// applyProfileUpdate copies the non-nil fields onto the user row.
func applyProfileUpdate(u *user.User, in ports.UpdateProfileInput) {
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.PaymentMethod != nil {
		u.PaymentMethod = in.PaymentMethod
	}
	if in.ProfilePictureURL != nil {
		u.ProfilePictureURL = in.ProfilePictureURL
	}
	if in.NotificationsEnabled != nil {
		u.NotificationsEnabled = *in.NotificationsEnabled
	}
}
