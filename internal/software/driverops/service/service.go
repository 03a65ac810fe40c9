// Package service implements the driver portal logic: availability, the open
// request feed, accepting rides, progress updates and support messages.
package service

import (
	"context"

	"charide/internal/domain/driver"
	"charide/internal/domain/user"
	"charide/internal/general/errs"
	"charide/internal/general/logger"
	"charide/internal/ports"
)

type driverService struct {
	uow      ports.UnitOfWork
	users    ports.UserRepository
	drivers  ports.DriverRepository
	rides    ports.RideRepository
	messages ports.MessageRepository
	notifier ports.RideNotifier
	logger   *logger.Logger
}

// NewDriverService creates the driver portal boundary.
func NewDriverService(
	uow ports.UnitOfWork,
	users ports.UserRepository,
	drivers ports.DriverRepository,
	rides ports.RideRepository,
	messages ports.MessageRepository,
	notifier ports.RideNotifier,
	logger *logger.Logger,
) ports.DriverService {
	return &driverService{
		uow:      uow,
		users:    users,
		drivers:  drivers,
		rides:    rides,
		messages: messages,
		notifier: notifier,
		logger:   logger,
	}
}

// GetProfile returns the caller's profile with vehicle details.
func (s *driverService) GetProfile(ctx context.Context, userID string) (ports.DriverProfile, error) {
	return s.loadProfile(ctx, userID)
}

// UpdateProfile applies the provided fields to the caller's user row.
func (s *driverService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (ports.DriverProfile, error) {
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		applyProfileUpdate(u, in)
		return s.users.UpdateProfile(txCtx, u)
	})
	if err != nil {
		return ports.DriverProfile{}, err
	}

	s.logger.Info(ctx, "profile_updated", "Driver profile updated", map[string]any{"user_id": userID})
	return s.loadProfile(ctx, userID)
}

// SetStatus writes the availability flag and/or current coordinates.
func (s *driverService) SetStatus(ctx context.Context, userID string, in ports.DriverStatusInput) (ports.DriverStatusResult, error) {
	upd := driver.StatusUpdate{
		IsOnline:  in.IsOnline,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if upd.Empty() {
		return ports.DriverStatusResult{}, errs.Validationf("nothing to update: provide is_online and/or coordinates")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return ports.DriverStatusResult{}, errs.Validationf("latitude and longitude must be provided together")
	}

	var d *driver.Driver
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.drivers.UpdateStatus(txCtx, userID, upd); err != nil {
			return err
		}
		var err error
		d, err = s.drivers.GetByUserID(txCtx, userID)
		return err
	})
	if err != nil {
		return ports.DriverStatusResult{}, err
	}

	s.logger.Info(ctx, "driver_status_updated", "Driver availability updated", map[string]any{
		"user_id":   userID,
		"is_online": d.IsOnline,
	})

	return ports.DriverStatusResult{
		DriverID:  d.ID,
		IsOnline:  d.IsOnline,
		Latitude:  d.CurrentLatitude,
		Longitude: d.CurrentLongitude,
	}, nil
}

// loadProfile joins the user row with the drivers row.
func (s *driverService) loadProfile(ctx context.Context, userID string) (ports.DriverProfile, error) {
	var (
		u *user.User
		d *driver.Driver
	)
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		if u, err = s.users.GetByID(txCtx, userID); err != nil {
			return err
		}
		d, err = s.drivers.GetByUserID(txCtx, userID)
		return err
	})
	if err != nil {
		return ports.DriverProfile{}, err
	}

	return ports.DriverProfile{
		UserProfile:  ports.NewUserProfile(u),
		VehicleType:  d.VehicleType,
		VehiclePlate: d.VehiclePlate,
		IsOnline:     d.IsOnline,
	}, nil
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
