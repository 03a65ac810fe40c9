package service

import (
	"context"
	"strings"

	"charide/internal/domain/message"
	"charide/internal/domain/ride"
	"charide/internal/general/errs"
	"charide/internal/ports"
)

// MyRides returns rides assigned to the driver, optionally filtered by status.
func (s *driverService) MyRides(ctx context.Context, userID string, status string) ([]ports.DriverRideView, error) {
	var filter *ride.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := ride.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &parsed
	}

	var rows []ports.RideFeedRow
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.rides.ListByDriver(txCtx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	return feedViews(rows), nil
}

// OpenRequests returns unassigned rides waiting for a driver. An offline
// driver always sees an empty feed.
func (s *driverService) OpenRequests(ctx context.Context, userID string) ([]ports.DriverRideView, error) {
	var rows []ports.RideFeedRow
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		online, err := s.drivers.IsOnline(txCtx, userID)
		if err != nil {
			return err
		}
		if !online {
			return nil
		}
		rows, err = s.rides.ListOpenRequests(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return feedViews(rows), nil
}

// AcceptRide claims the ride for the driver. The store-level conditional
// update guarantees a single winner under concurrent accepts.
func (s *driverService) AcceptRide(ctx context.Context, userID, rideID string) (ports.RideView, error) {
	var r *ride.Ride
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		r, err = s.rides.Claim(txCtx, rideID, userID)
		return err
	})
	if err != nil {
		return ports.RideView{}, err
	}

	s.logger.Info(s.logger.WithRideID(ctx, rideID), "ride_accepted", "Ride accepted by driver", map[string]any{
		"driver_id": userID,
	})
	s.notifier.RideStatusChanged(ctx, r)

	return ports.NewRideView(r), nil
}

// UpdateRideStatus moves one of the driver's own rides along the lifecycle.
// This is the only path that may write `completed`.
func (s *driverService) UpdateRideStatus(ctx context.Context, userID, rideID string, in ports.RideStatusInput) (ports.RideView, error) {
	next, err := ride.ParseStatus(in.Status)
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
		if r.DriverID == nil || *r.DriverID != userID {
			return errs.NotFoundf("ride %s", rideID)
		}

		if next == ride.StatusPaid {
			fare := r.Fare
			if in.Fare != nil {
				fare = *in.Fare
			}
			method := ""
			if in.PaymentMethod != nil {
				method = *in.PaymentMethod
			}
			if err := r.MarkPaid(fare, method); err != nil {
				return err
			}
		} else if next == ride.StatusCancelled {
			if err := r.Cancel(); err != nil {
				return err
			}
		} else {
			if in.Fare != nil {
				if *in.Fare < 0 {
					return errs.Validationf("fare cannot be negative")
				}
				r.Fare = *in.Fare
			}
			if err := r.ApplyStatus(next); err != nil {
				return err
			}
		}

		return s.rides.SaveRide(txCtx, r)
	})
	if err != nil {
		return ports.RideView{}, err
	}

	s.logger.Info(s.logger.WithRideID(ctx, rideID), "ride_status_updated", "Ride status updated by driver", map[string]any{
		"driver_id": userID,
		"status":    r.Status.String(),
	})
	s.notifier.RideStatusChanged(ctx, r)

	return ports.NewRideView(r), nil
}

// SendMessage files a support message to the admin inbox.
func (s *driverService) SendMessage(ctx context.Context, userID, subject, body string) (ports.MessageView, error) {
	m, err := message.NewMessage(userID, subject, body)
	if err != nil {
		return ports.MessageView{}, err
	}

	var senderName string
	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		senderName = u.FullName
		return s.messages.CreateMessage(txCtx, m)
	})
	if err != nil {
		return ports.MessageView{}, err
	}

	s.logger.Info(ctx, "support_message_sent", "Driver support message stored", map[string]any{
		"user_id": userID,
	})

	return ports.MessageView{
		ID:         m.ID,
		UserID:     m.UserID,
		SenderName: senderName,
		Subject:    m.Subject,
		Message:    m.Body,
		CreatedAt:  m.CreatedAt,
	}, nil
}

// feedViews maps enriched ride rows to their public views.
func feedViews(rows []ports.RideFeedRow) []ports.DriverRideView {
	out := make([]ports.DriverRideView, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.DriverRideView{
			RideView:        ports.NewRideView(&row.Ride),
			PassengerName:   row.PassengerName,
			PassengerPhone:  row.PassengerPhone,
			PassengerAvatar: row.PassengerAvatar,
		})
	}
	return out
}
