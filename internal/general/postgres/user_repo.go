package postgres

import (
	"context"
	"fmt"

	"charide/internal/domain/user"
	"charide/internal/general/errs"
	"charide/internal/ports"
)

// UserRepo persists users using pgx and plain SQL.
type UserRepo struct{}

// NewUserRepo constructs a new UserRepo.
func NewUserRepo() ports.UserRepository {
	return &UserRepo{}
}

const userColumns = `
	id, created_at, updated_at, email, full_name, phone, role, account_status,
	rating, total_reviews, payment_method, profile_picture_url,
	notifications_enabled, is_active, password_hash`

// CreateUser inserts a new user row and fills the generated fields.
func (repo *UserRepo) CreateUser(ctx context.Context, u *user.User) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (
			email, full_name, phone, role, account_status, rating, total_reviews,
			notifications_enabled, is_active, password_hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`,
		u.Email,
		u.FullName,
		u.Phone,
		u.Role.String(),
		u.Status.String(),
		u.Rating,
		u.TotalReviews,
		u.NotificationsEnabled,
		u.IsActive,
		u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return mapErr(err)
	}

	return nil
}

// GetByID returns one user by id.
func (repo *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns one user by email (login path).
func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateProfile writes the mutable profile columns and stamps updated_at.
func (repo *UserRepo) UpdateProfile(ctx context.Context, u *user.User) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET full_name = $1,
		    phone = $2,
		    payment_method = $3,
		    profile_picture_url = $4,
		    notifications_enabled = $5,
		    updated_at = now()
		WHERE id = $6
	`,
		u.FullName,
		u.Phone,
		u.PaymentMethod,
		u.ProfilePictureURL,
		u.NotificationsEnabled,
		u.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errNoUser(u.ID)
	}

	return nil
}

// UpdateStatus sets the moderation status (approve/reject).
func (repo *UserRepo) UpdateStatus(ctx context.Context, id string, status user.AccountStatus) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET account_status = $1,
		    updated_at = now()
		WHERE id = $2
	`, status.String(), id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errNoUser(id)
	}

	return nil
}

// Delete removes the user row. Rides and the drivers row are removed by the
// caller within the same transaction.
func (repo *UserRepo) Delete(ctx context.Context, id string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errNoUser(id)
	}

	return nil
}

// List returns users filtered by status and/or role, newest first. Nil filters
// match everything.
func (repo *UserRepo) List(ctx context.Context, status *user.AccountStatus, role *user.Role) ([]*user.User, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT` + userColumns + ` FROM users WHERE 1=1`
	args := []any{}
	if status != nil {
		args = append(args, status.String())
		query += fmt.Sprintf(" AND account_status = $%d", len(args))
	}
	if role != nil {
		args = append(args, role.String())
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	return out, nil
}

// Count returns the total number of users.
func (repo *UserRepo) Count(ctx context.Context) (int, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var n int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		out        user.User
		roleText   string
		statusText string
	)

	err := row.Scan(
		&out.ID, &out.CreatedAt, &out.UpdatedAt, &out.Email, &out.FullName,
		&out.Phone, &roleText, &statusText, &out.Rating, &out.TotalReviews,
		&out.PaymentMethod, &out.ProfilePictureURL, &out.NotificationsEnabled,
		&out.IsActive, &out.PasswordHash,
	)
	if err != nil {
		return nil, mapErr(err)
	}

	out.Role = user.Role(roleText)
	out.Status = user.AccountStatus(statusText)

	return &out, nil
}

func errNoUser(id string) error {
	return errs.NotFoundf("user %s", id)
}
