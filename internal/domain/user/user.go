package user

import (
	"net/mail"
	"strings"
	"time"

	"charide/internal/general/errs"
)

// User is the domain entity corresponding to the `users` table.
type User struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt *time.Time

	Email    string
	FullName string
	Phone    string
	Role     Role
	Status   AccountStatus

	Rating       float64
	TotalReviews int

	PaymentMethod        *string
	ProfilePictureURL    *string
	NotificationsEnabled bool
	IsActive             bool

	PasswordHash string
}

// NewUser constructs a user with signup defaults: rating 5.0, active,
// notifications on, moderation status by role.
func NewUser(email, fullName, phone string, role Role, passwordHash string) (*User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errs.Validationf("invalid email address")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, errs.Validationf("full name is required")
	}
	if !role.Valid() {
		return nil, errs.Validationf("unknown role %q", role)
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, errs.Validationf("password hash cannot be empty")
	}

	status := AccountApproved
	if role.IsDriver() {
		status = AccountPending
	}

	return &User{
		CreatedAt:            time.Now().UTC(),
		Email:                email,
		FullName:             fullName,
		Phone:                strings.TrimSpace(phone),
		Role:                 role,
		Status:               status,
		Rating:               5.0,
		TotalReviews:         0,
		NotificationsEnabled: true,
		IsActive:             true,
		PasswordHash:         passwordHash,
	}, nil
}

// SetStatus applies a moderation decision and stamps UpdatedAt.
func (user *User) SetStatus(status AccountStatus) error {
	if !status.Valid() {
		return errs.Validationf("unknown account status %q", status)
	}
	user.Status = status
	user.touch()
	return nil
}

func (user *User) touch() {
	now := time.Now().UTC()
	user.UpdatedAt = &now
}
