package postgres

import (
	"context"
	"errors"
	"fmt"

	"charide/internal/domain/ride"
	"charide/internal/general/errs"
	"charide/internal/ports"

	"github.com/jackc/pgx/v5"
)

// RideRepo persists rides using pgx and plain SQL.
type RideRepo struct{}

// NewRideRepo constructs a new RideRepo.
func NewRideRepo() ports.RideRepository {
	return &RideRepo{}
}

const rideColumns = `
	id, created_at, passenger_id, driver_id, pickup_location, dropoff_location,
	status, fare, distance, vehicle_type, payment_method`

// CreateRide inserts a new ride row and fills the generated fields.
func (repo *RideRepo) CreateRide(ctx context.Context, r *ride.Ride) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO rides (
			passenger_id, driver_id, pickup_location, dropoff_location,
			status, fare, distance, vehicle_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		r.PassengerID,
		r.DriverID,
		r.PickupLocation,
		r.DropoffLocation,
		r.Status.String(),
		r.Fare,
		r.Distance,
		r.VehicleType,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return mapErr(err)
	}

	return nil
}

// GetByID fetches a ride by primary key.
func (repo *RideRepo) GetByID(ctx context.Context, id string) (*ride.Ride, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT`+rideColumns+` FROM rides WHERE id = $1`, id)
	return scanRide(row)
}

// GetByIDForUpdate fetches a ride and locks the row for the rest of the
// transaction. Status transitions go through this path so that concurrent
// writers serialize on the row.
func (repo *RideRepo) GetByIDForUpdate(ctx context.Context, id string) (*ride.Ride, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT`+rideColumns+` FROM rides WHERE id = $1 FOR UPDATE`, id)
	return scanRide(row)
}

// SaveRide writes the mutable ride columns back.
func (repo *RideRepo) SaveRide(ctx context.Context, r *ride.Ride) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE rides
		SET driver_id = $1,
		    status = $2,
		    fare = $3,
		    distance = $4,
		    vehicle_type = $5,
		    payment_method = $6
		WHERE id = $7
	`,
		r.DriverID,
		r.Status.String(),
		r.Fare,
		r.Distance,
		r.VehicleType,
		r.PaymentMethod,
		r.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundf("ride %s", r.ID)
	}

	return nil
}

// Claim atomically assigns the ride to the driver. The guard makes the accept
// race safe: two drivers hitting the same ride resolve to one winner and one
// conflict, never a silent overwrite. Re-claiming an own ride is idempotent.
func (repo *RideRepo) Claim(ctx context.Context, rideID, driverID string) (*ride.Ride, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE rides
		SET driver_id = $1,
		    status = 'accepted'
		WHERE id = $2
		  AND (driver_id IS NULL OR driver_id = $1)
		  AND status = ANY($3)
		RETURNING`+rideColumns,
		driverID, rideID, ride.ClaimableStatuses(),
	)

	out, err := scanRide(row)
	if err == nil {
		return out, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	// zero rows: re-read the ride and replay the claim on the loaded state to
	// say why it was refused
	current, getErr := repo.GetByID(ctx, rideID)
	if getErr != nil {
		return nil, getErr
	}
	if claimErr := current.Claim(driverID); claimErr != nil {
		if errors.Is(claimErr, errs.ErrConflict) {
			return nil, errs.Conflictf("ride %s already assigned to another driver", rideID)
		}
		return nil, claimErr
	}
	// claimable on re-read means the guard lost a race with a concurrent writer
	return nil, errs.Conflictf("ride %s was claimed concurrently", rideID)
}

// ListByPassenger returns all rides owned by a passenger, newest first.
func (repo *RideRepo) ListByPassenger(ctx context.Context, passengerID string) ([]*ride.Ride, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT`+rideColumns+`
		FROM rides
		WHERE passenger_id = $1
		ORDER BY created_at DESC
	`, passengerID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	return collectRides(rows)
}

// ListRecentByPassenger returns the passenger's latest rides enriched with the
// assigned driver's public details.
func (repo *RideRepo) ListRecentByPassenger(ctx context.Context, passengerID string, limit int) ([]ports.RecentRideRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT r.id, r.created_at, r.passenger_id, r.driver_id,
		       r.pickup_location, r.dropoff_location, r.status, r.fare,
		       r.distance, r.vehicle_type, r.payment_method,
		       u.full_name, u.profile_picture_url
		FROM rides r
		LEFT JOIN users u ON u.id = r.driver_id
		WHERE r.passenger_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2
	`, passengerID, limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []ports.RecentRideRow
	for rows.Next() {
		var (
			row        ports.RecentRideRow
			statusText string
		)
		err := rows.Scan(
			&row.Ride.ID, &row.Ride.CreatedAt, &row.Ride.PassengerID,
			&row.Ride.DriverID, &row.Ride.PickupLocation, &row.Ride.DropoffLocation,
			&statusText, &row.Ride.Fare, &row.Ride.Distance,
			&row.Ride.VehicleType, &row.Ride.PaymentMethod,
			&row.DriverName, &row.DriverAvatar,
		)
		if err != nil {
			return nil, mapErr(err)
		}
		row.Ride.Status = ride.Status(statusText)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	return out, nil
}

// ListByDriver returns rides assigned to the driver, optionally filtered by
// status, enriched with the passenger's public details.
func (repo *RideRepo) ListByDriver(ctx context.Context, driverID string, status *ride.Status) ([]ports.RideFeedRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := feedQuery + ` WHERE r.driver_id = $1`
	args := []any{driverID}
	if status != nil {
		args = append(args, status.String())
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	return collectFeedRows(rows)
}

// ListOpenRequests returns unassigned rides still waiting for a driver.
func (repo *RideRepo) ListOpenRequests(ctx context.Context) ([]ports.RideFeedRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, feedQuery+`
		WHERE r.driver_id IS NULL AND r.status IN ('requested', 'pending')
		ORDER BY r.created_at ASC
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	return collectFeedRows(rows)
}

// ListAll returns every ride, optionally filtered by status, newest first.
func (repo *RideRepo) ListAll(ctx context.Context, status *ride.Status) ([]*ride.Ride, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT` + rideColumns + ` FROM rides`
	args := []any{}
	if status != nil {
		args = append(args, status.String())
		query += ` WHERE status = $1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	return collectRides(rows)
}

// DeleteByPassenger removes all rides owned by a passenger. Runs inside the
// profile-deletion transaction.
func (repo *RideRepo) DeleteByPassenger(ctx context.Context, passengerID string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM rides WHERE passenger_id = $1`, passengerID); err != nil {
		return mapErr(err)
	}
	return nil
}

// PassengerStats aggregates the passenger's ride spend.
func (repo *RideRepo) PassengerStats(ctx context.Context, passengerID string) (ports.PassengerRideStats, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return ports.PassengerRideStats{}, err
	}

	var out ports.PassengerRideStats
	err = tx.QueryRow(ctx, `
		SELECT count(*), COALESCE(sum(fare), 0)
		FROM rides
		WHERE passenger_id = $1
	`, passengerID).Scan(&out.TotalRides, &out.TotalSpent)
	if err != nil {
		return ports.PassengerRideStats{}, mapErr(err)
	}

	err = tx.QueryRow(ctx, `
		SELECT fare
		FROM rides
		WHERE passenger_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, passengerID).Scan(&out.LastFare)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return ports.PassengerRideStats{}, mapErr(err)
	}

	return out, nil
}

// Count returns the total number of rides.
func (repo *RideRepo) Count(ctx context.Context) (int, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var n int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM rides`).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

// TotalRevenue sums the fares of rides that reached payment.
func (repo *RideRepo) TotalRevenue(ctx context.Context) (float64, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(sum(fare), 0)
		FROM rides
		WHERE status IN ('paid', 'completed')
	`).Scan(&total)
	if err != nil {
		return 0, mapErr(err)
	}
	return total, nil
}

// --- helpers ---

const feedQuery = `
	SELECT r.id, r.created_at, r.passenger_id, r.driver_id,
	       r.pickup_location, r.dropoff_location, r.status, r.fare,
	       r.distance, r.vehicle_type, r.payment_method,
	       u.full_name, u.phone, u.profile_picture_url
	FROM rides r
	JOIN users u ON u.id = r.passenger_id`

func scanRide(row rowScanner) (*ride.Ride, error) {
	var (
		out        ride.Ride
		statusText string
	)

	err := row.Scan(
		&out.ID, &out.CreatedAt, &out.PassengerID, &out.DriverID,
		&out.PickupLocation, &out.DropoffLocation, &statusText,
		&out.Fare, &out.Distance, &out.VehicleType, &out.PaymentMethod,
	)
	if err != nil {
		return nil, mapErr(err)
	}

	out.Status = ride.Status(statusText)
	return &out, nil
}

func collectRides(rows pgx.Rows) ([]*ride.Ride, error) {
	var out []*ride.Ride
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func collectFeedRows(rows pgx.Rows) ([]ports.RideFeedRow, error) {
	var out []ports.RideFeedRow
	for rows.Next() {
		var (
			row        ports.RideFeedRow
			statusText string
		)
		err := rows.Scan(
			&row.Ride.ID, &row.Ride.CreatedAt, &row.Ride.PassengerID,
			&row.Ride.DriverID, &row.Ride.PickupLocation, &row.Ride.DropoffLocation,
			&statusText, &row.Ride.Fare, &row.Ride.Distance,
			&row.Ride.VehicleType, &row.Ride.PaymentMethod,
			&row.PassengerName, &row.PassengerPhone, &row.PassengerAvatar,
		)
		if err != nil {
			return nil, mapErr(err)
		}
		row.Ride.Status = ride.Status(statusText)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
