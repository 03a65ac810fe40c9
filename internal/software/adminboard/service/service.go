// Package service implements the admin portal logic: moderation, platform-wide
// ride queries, aggregate stats and the support inbox.
package service

import (
	"context"
	"strings"

	"charide/internal/domain/ride"
	"charide/internal/domain/user"
	"charide/internal/general/logger"
	"charide/internal/ports"
)

type adminService struct {
	uow      ports.UnitOfWork
	users    ports.UserRepository
	drivers  ports.DriverRepository
	rides    ports.RideRepository
	messages ports.MessageRepository
	notifier ports.RideNotifier
	logger   *logger.Logger
}

// NewAdminService creates the admin portal boundary.
func NewAdminService(
	uow ports.UnitOfWork,
	users ports.UserRepository,
	drivers ports.DriverRepository,
	rides ports.RideRepository,
	messages ports.MessageRepository,
	notifier ports.RideNotifier,
	logger *logger.Logger,
) ports.AdminService {
	return &adminService{
		uow:      uow,
		users:    users,
		drivers:  drivers,
		rides:    rides,
		messages: messages,
		notifier: notifier,
		logger:   logger,
	}
}

// ListUsers returns users, optionally filtered by account status and role.
func (s *adminService) ListUsers(ctx context.Context, status, role string) ([]ports.UserProfile, error) {
	var (
		statusFilter *user.AccountStatus
		roleFilter   *user.Role
	)
	if strings.TrimSpace(status) != "" {
		parsed, err := user.ParseAccountStatus(status)
		if err != nil {
			return nil, err
		}
		statusFilter = &parsed
	}
	if strings.TrimSpace(role) != "" {
		parsed, err := user.ParseRole(role)
		if err != nil {
			return nil, err
		}
		roleFilter = &parsed
	}

	var users []*user.User
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		users, err = s.users.List(txCtx, statusFilter, roleFilter)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, ports.NewUserProfile(u))
	}
	return out, nil
}

// SetUserStatus approves or rejects an account.
func (s *adminService) SetUserStatus(ctx context.Context, userID, status string) (ports.UserProfile, error) {
	parsed, err := user.ParseAccountStatus(status)
	if err != nil {
		return ports.UserProfile{}, err
	}

	var u *user.User
	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.users.UpdateStatus(txCtx, userID, parsed); err != nil {
			return err
		}
		var err error
		u, err = s.users.GetByID(txCtx, userID)
		return err
	})
	if err != nil {
		return ports.UserProfile{}, err
	}

	s.logger.Info(ctx, "user_moderated", "Account status changed", map[string]any{
		"user_id": userID,
		"status":  parsed.String(),
	})
	return ports.NewUserProfile(u), nil
}

// ListDrivers returns every driver joined with their user row.
func (s *adminService) ListDrivers(ctx context.Context) ([]ports.AdminDriverView, error) {
	var rows []ports.AdminDriverRow
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.drivers.ListAll(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.AdminDriverView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ports.AdminDriverView{
			DriverID:      r.Driver.ID,
			UserID:        r.Driver.UserID,
			Email:         r.Email,
			FullName:      r.FullName,
			Phone:         r.Phone,
			AccountStatus: r.AccountStatus.String(),
			Rating:        r.Rating,
			IsActive:      r.IsActive,
			VehicleType:   r.Driver.VehicleType,
			VehiclePlate:  r.Driver.VehiclePlate,
			IsOnline:      r.Driver.IsOnline,
			Latitude:      r.Driver.CurrentLatitude,
			Longitude:     r.Driver.CurrentLongitude,
		})
	}
	return out, nil
}

// SetDriverStatus resolves the drivers row to its user and updates the user's
// account status.
func (s *adminService) SetDriverStatus(ctx context.Context, driverID, status string) (ports.UserProfile, error) {
	parsed, err := user.ParseAccountStatus(status)
	if err != nil {
		return ports.UserProfile{}, err
	}

	var u *user.User
	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		userID, err := s.drivers.UserIDForDriver(txCtx, driverID)
		if err != nil {
			return err
		}
		if err := s.users.UpdateStatus(txCtx, userID, parsed); err != nil {
			return err
		}
		u, err = s.users.GetByID(txCtx, userID)
		return err
	})
	if err != nil {
		return ports.UserProfile{}, err
	}

	s.logger.Info(ctx, "driver_moderated", "Driver account status changed", map[string]any{
		"driver_id": driverID,
		"status":    parsed.String(),
	})
	return ports.NewUserProfile(u), nil
}

// ListRides returns every ride, optionally filtered by status.
func (s *adminService) ListRides(ctx context.Context, status string) ([]ports.RideView, error) {
	var filter *ride.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := ride.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &parsed
	}

	var rides []*ride.Ride
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rides, err = s.rides.ListAll(txCtx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.RideView, 0, len(rides))
	for _, r := range rides {
		out = append(out, ports.NewRideView(r))
	}
	return out, nil
}

// ForceRideStatus moves any ride along the lifecycle as an admin override.
// The transition table still applies, so terminal rides stay immutable.
func (s *adminService) ForceRideStatus(ctx context.Context, rideID, status string) (ports.RideView, error) {
	next, err := ride.ParseStatus(status)
	if err != nil {
		return ports.RideView{}, err
	}

	var r *ride.Ride
	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		r, err = s.rides.GetByIDForUpdate(txCtx, rideID)
		if err != nil {
			return err
		}
		if err := r.ApplyStatus(next); err != nil {
			return err
		}
		return s.rides.SaveRide(txCtx, r)
	})
	if err != nil {
		return ports.RideView{}, err
	}

	s.logger.Info(s.logger.WithRideID(ctx, rideID), "ride_status_forced", "Ride status changed by admin", map[string]any{
		"status": r.Status.String(),
	})
	s.notifier.RideStatusChanged(ctx, r)

	return ports.NewRideView(r), nil
}

// Stats aggregates platform totals.
func (s *adminService) Stats(ctx context.Context) (ports.AdminStatsResult, error) {
	var res ports.AdminStatsResult
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		if res.TotalUsers, err = s.users.Count(txCtx); err != nil {
			return err
		}
		if res.TotalDrivers, err = s.drivers.Count(txCtx); err != nil {
			return err
		}
		if res.TotalRides, err = s.rides.Count(txCtx); err != nil {
			return err
		}
		res.TotalRevenue, err = s.rides.TotalRevenue(txCtx)
		return err
	})
	if err != nil {
		return ports.AdminStatsResult{}, err
	}
	return res, nil
}

// ListMessages returns the support inbox, newest first.
func (s *adminService) ListMessages(ctx context.Context) ([]ports.MessageView, error) {
	var rows []ports.MessageRow
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.messages.ListAll(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.MessageView, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.MessageView{
			ID:         row.Message.ID,
			UserID:     row.Message.UserID,
			SenderName: row.SenderName,
			Subject:    row.Message.Subject,
			Message:    row.Message.Body,
			CreatedAt:  row.Message.CreatedAt,
		})
	}
	return out, nil
}
