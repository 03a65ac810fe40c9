package postgres

import (
	"context"

	"charide/internal/domain/driver"
	"charide/internal/domain/user"
	"charide/internal/general/errs"
	"charide/internal/ports"
)

// DriverRepo persists driver vehicle/availability rows using pgx and plain SQL.
type DriverRepo struct{}

// NewDriverRepo constructs a new DriverRepo.
func NewDriverRepo() ports.DriverRepository {
	return &DriverRepo{}
}

// CreateDriver inserts the drivers row for a freshly signed-up driver.
func (repo *DriverRepo) CreateDriver(ctx context.Context, d *driver.Driver) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO drivers (user_id, vehicle_type, vehicle_plate, is_online)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		d.UserID,
		d.VehicleType,
		d.VehiclePlate,
		d.IsOnline,
	).Scan(&d.ID)
	if err != nil {
		return mapErr(err)
	}

	return nil
}

// GetByUserID returns the drivers row owned by the given user.
func (repo *DriverRepo) GetByUserID(ctx context.Context, userID string) (*driver.Driver, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out driver.Driver
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, vehicle_type, vehicle_plate, is_online,
		       current_latitude, current_longitude
		FROM drivers
		WHERE user_id = $1
	`, userID).Scan(
		&out.ID, &out.UserID, &out.VehicleType, &out.VehiclePlate,
		&out.IsOnline, &out.CurrentLatitude, &out.CurrentLongitude,
	)
	if err != nil {
		return nil, mapErr(err)
	}

	return &out, nil
}

// UserIDForDriver resolves a drivers row id to the owning user id.
func (repo *DriverRepo) UserIDForDriver(ctx context.Context, driverID string) (string, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return "", err
	}

	var userID string
	if err := tx.QueryRow(ctx, `SELECT user_id FROM drivers WHERE id = $1`, driverID).Scan(&userID); err != nil {
		return "", mapErr(err)
	}
	return userID, nil
}

// UpdateStatus writes the availability flag and/or current coordinates.
// Untouched fields keep their stored values.
func (repo *DriverRepo) UpdateStatus(ctx context.Context, userID string, upd driver.StatusUpdate) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE drivers
		SET is_online = COALESCE($1, is_online),
		    current_latitude = COALESCE($2, current_latitude),
		    current_longitude = COALESCE($3, current_longitude)
		WHERE user_id = $4
	`, upd.IsOnline, upd.Latitude, upd.Longitude, userID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundf("driver for user %s", userID)
	}

	return nil
}

// IsOnline reports the availability flag for the given driver user.
func (repo *DriverRepo) IsOnline(ctx context.Context, userID string) (bool, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return false, err
	}

	var online bool
	if err := tx.QueryRow(ctx, `SELECT is_online FROM drivers WHERE user_id = $1`, userID).Scan(&online); err != nil {
		return false, mapErr(err)
	}
	return online, nil
}

// ListOnline returns online drivers joined with the public part of the user row.
func (repo *DriverRepo) ListOnline(ctx context.Context) ([]ports.NearbyDriverRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT d.id, d.user_id, u.full_name, u.phone, u.rating,
		       u.profile_picture_url, d.vehicle_type, d.vehicle_plate,
		       d.current_latitude, d.current_longitude
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.is_online = TRUE AND u.is_active = TRUE
		ORDER BY u.rating DESC
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []ports.NearbyDriverRow
	for rows.Next() {
		var r ports.NearbyDriverRow
		err := rows.Scan(
			&r.DriverID, &r.UserID, &r.FullName, &r.Phone, &r.Rating,
			&r.ProfilePictureURL, &r.VehicleType, &r.VehiclePlate,
			&r.Latitude, &r.Longitude,
		)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	return out, nil
}

// ListAll returns every driver joined with their user row for moderation.
func (repo *DriverRepo) ListAll(ctx context.Context) ([]ports.AdminDriverRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT d.id, d.user_id, d.vehicle_type, d.vehicle_plate, d.is_online,
		       d.current_latitude, d.current_longitude,
		       u.email, u.full_name, u.phone, u.account_status, u.rating, u.is_active
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []ports.AdminDriverRow
	for rows.Next() {
		var (
			r          ports.AdminDriverRow
			statusText string
		)
		err := rows.Scan(
			&r.Driver.ID, &r.Driver.UserID, &r.Driver.VehicleType,
			&r.Driver.VehiclePlate, &r.Driver.IsOnline,
			&r.Driver.CurrentLatitude, &r.Driver.CurrentLongitude,
			&r.Email, &r.FullName, &r.Phone, &statusText, &r.Rating, &r.IsActive,
		)
		if err != nil {
			return nil, mapErr(err)
		}
		r.AccountStatus = user.AccountStatus(statusText)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	return out, nil
}

// Count returns the total number of drivers.
func (repo *DriverRepo) Count(ctx context.Context) (int, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var n int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM drivers`).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}
