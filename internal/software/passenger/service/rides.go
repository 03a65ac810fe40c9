package service

import (
	"context"
	"fmt"
	"strings"

	"charide/internal/domain/ride"
	"charide/internal/general/errs"
	"charide/internal/ports"
)

const recentRidesLimit = 5

// CreateRide books a new ride for the passenger.
func (s *passengerService) CreateRide(ctx context.Context, in ports.CreateRideInput) (ports.RideView, error) {
	var initial ride.Status
	if strings.TrimSpace(in.Status) != "" {
		parsed, err := ride.ParseStatus(in.Status)
		if err != nil {
			return ports.RideView{}, err
		}
		initial = parsed
	}

	r, err := ride.NewRide(in.PassengerID, in.PickupLocation, in.DropoffLocation, initial)
	if err != nil {
		return ports.RideView{}, err
	}

	if in.DriverID != nil {
		if id := strings.TrimSpace(*in.DriverID); id != "" {
			r.DriverID = &id
		}
	}
	if in.Fare != nil {
		if *in.Fare < 0 {
			return ports.RideView{}, errs.Validationf("fare cannot be negative")
		}
		r.Fare = *in.Fare
	}
	r.Distance = in.Distance
	if in.VehicleType != nil {
		if vt := strings.TrimSpace(*in.VehicleType); vt != "" {
			r.VehicleType = &vt
		}
	}

	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return s.rides.CreateRide(txCtx, r)
	})
	if err != nil {
		return ports.RideView{}, fmt.Errorf("create ride: %w", err)
	}

	s.logger.Info(s.logger.WithRideID(ctx, r.ID), "ride_created", "Ride booked", map[string]any{
		"passenger_id": r.PassengerID,
		"status":       r.Status.String(),
	})
	s.notifier.RideStatusChanged(ctx, r)

	return ports.NewRideView(r), nil
}

// AssignDriver records the passenger's chosen driver on their own ride.
func (s *passengerService) AssignDriver(ctx context.Context, passengerID, rideID, driverID string) (ports.RideView, error) {
	r, err := s.mutateOwnRide(ctx, passengerID, rideID, func(r *ride.Ride) error {
		return r.Assign(driverID)
	})
	if err != nil {
		return ports.RideView{}, err
	}

	s.logger.Info(s.logger.WithRideID(ctx, rideID), "driver_assigned", "Driver assigned to ride", map[string]any{
		"driver_id": driverID,
	})
	s.notifier.RideStatusChanged(ctx, r)

	return ports.NewRideView(r), nil
}

// UpdateRideStatus moves the passenger's own ride along the lifecycle.
// `paid` is the payment path and records fare and payment method;
// `completed` is reserved for the driver portal.
func (s *passengerService) UpdateRideStatus(ctx context.Context, passengerID, rideID string, in ports.RideStatusInput) (ports.RideView, error) {
	next, err := ride.ParseStatus(in.Status)
	if err != nil {
		return ports.RideView{}, err
	}
	if next == ride.StatusCompleted {
		return ports.RideView{}, fmt.Errorf("%w: only the driver can complete a ride", errs.ErrAuthorization)
	}

	r, err := s.mutateOwnRide(ctx, passengerID, rideID, func(r *ride.Ride) error {
		if next == ride.StatusPaid {
			fare := r.Fare
			if in.Fare != nil {
				fare = *in.Fare
			}
			method := ""
			if in.PaymentMethod != nil {
				method = *in.PaymentMethod
			}
			return r.MarkPaid(fare, method)
		}
		if next == ride.StatusCancelled {
			return r.Cancel()
		}

		if in.Fare != nil {
			if *in.Fare < 0 {
				return errs.Validationf("fare cannot be negative")
			}
			r.Fare = *in.Fare
		}
		return r.ApplyStatus(next)
	})
	if err != nil {
		return ports.RideView{}, err
	}

	s.logger.Info(s.logger.WithRideID(ctx, rideID), "ride_status_updated", "Ride status updated by passenger", map[string]any{
		"status": r.Status.String(),
	})
	s.notifier.RideStatusChanged(ctx, r)

	return ports.NewRideView(r), nil
}

// RideHistory returns all of the passenger's rides, newest first.
func (s *passengerService) RideHistory(ctx context.Context, passengerID string) ([]ports.RideView, error) {
	var rides []*ride.Ride
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rides, err = s.rides.ListByPassenger(txCtx, passengerID)
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

// RecentRides returns the latest rides with the assigned driver's details.
func (s *passengerService) RecentRides(ctx context.Context, passengerID string) ([]ports.RecentRideView, error) {
	var rows []ports.RecentRideRow
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.rides.ListRecentByPassenger(txCtx, passengerID, recentRidesLimit)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.RecentRideView, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.RecentRideView{
			RideView:     ports.NewRideView(&row.Ride),
			DriverName:   row.DriverName,
			DriverAvatar: row.DriverAvatar,
		})
	}
	return out, nil
}

// RideStats aggregates the passenger's spend. Totals are float64 sums.
func (s *passengerService) RideStats(ctx context.Context, passengerID string) (ports.RideStatsResult, error) {
	var stats ports.PassengerRideStats
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		stats, err = s.rides.PassengerStats(txCtx, passengerID)
		return err
	})
	if err != nil {
		return ports.RideStatsResult{}, err
	}

	return ports.RideStatsResult{
		TotalRides: stats.TotalRides,
		TotalSpent: stats.TotalSpent,
		LastFare:   stats.LastFare,
	}, nil
}

// mutateOwnRide loads the ride under a row lock, verifies ownership, applies
// the mutation and saves. Foreign rides resolve to not-found so the endpoint
// does not reveal other passengers' ride ids.
func (s *passengerService) mutateOwnRide(ctx context.Context, passengerID, rideID string, mutate func(*ride.Ride) error) (*ride.Ride, error) {
	var out *ride.Ride
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		r, err := s.rides.GetByIDForUpdate(txCtx, rideID)
		if err != nil {
			return err
		}
		if r.PassengerID != passengerID {
			return errs.NotFoundf("ride %s", rideID)
		}
		if err := mutate(r); err != nil {
			return err
		}
		if err := s.rides.SaveRide(txCtx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
