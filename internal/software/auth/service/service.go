// Package service implements signup, login and token introspection for one
// portal role. Each portal binary constructs its own instance.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charide/internal/domain/driver"
	"charide/internal/domain/user"
	"charide/internal/general/errs"
	"charide/internal/general/jwt"
	"charide/internal/general/logger"
	"charide/internal/ports"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type authService struct {
	role    user.Role
	uow     ports.UnitOfWork
	users   ports.UserRepository
	drivers ports.DriverRepository // set only on the driver portal
	jwtMgr  *jwt.Manager
	logger  *logger.Logger
}

// NewAuthService creates the auth boundary for the given portal role.
// drivers may be nil on portals that never create driver rows.
func NewAuthService(
	role user.Role,
	uow ports.UnitOfWork,
	users ports.UserRepository,
	drivers ports.DriverRepository,
	jwtMgr *jwt.Manager,
	logger *logger.Logger,
) ports.AuthService {
	return &authService{
		role:    role,
		uow:     uow,
		users:   users,
		drivers: drivers,
		jwtMgr:  jwtMgr,
		logger:  logger,
	}
}

// Signup registers a new account with the portal's role.
func (s *authService) Signup(ctx context.Context, in ports.SignupInput) (ports.AuthResult, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return ports.AuthResult{}, errs.Validationf("email, password and full_name are required")
	}
	if len(in.Password) < minPasswordLen {
		return ports.AuthResult{}, errs.Validationf("password must be at least %d characters", minPasswordLen)
	}
	if s.role.IsDriver() {
		if strings.TrimSpace(in.VehicleType) == "" || strings.TrimSpace(in.VehiclePlate) == "" {
			return ports.AuthResult{}, errs.Validationf("vehicle_type and vehicle_plate are required")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := user.NewUser(in.Email, in.FullName, in.Phone, s.role, string(hash))
	if err != nil {
		return ports.AuthResult{}, err
	}

	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.users.CreateUser(txCtx, u); err != nil {
			return err
		}
		if s.role.IsDriver() {
			d, err := driver.NewDriver(u.ID, in.VehicleType, in.VehiclePlate)
			if err != nil {
				return err
			}
			if err := s.drivers.CreateDriver(txCtx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return ports.AuthResult{}, errs.Conflictf("email %s is already registered", in.Email)
		}
		return ports.AuthResult{}, err
	}

	token, _, err := s.jwtMgr.IssueUserToken(u.ID, u.Role)
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info(ctx, "user_signed_up", "New account registered", map[string]any{
		"user_id": u.ID,
		"role":    u.Role.String(),
	})

	return ports.AuthResult{Token: token, User: ports.NewUserProfile(u)}, nil
}

// Login verifies credentials and issues a token for the portal's role.
func (s *authService) Login(ctx context.Context, email, password string) (ports.AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return ports.AuthResult{}, errs.Validationf("email and password are required")
	}

	var u *user.User
	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		u, err = s.users.GetByEmail(txCtx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ports.AuthResult{}, fmt.Errorf("%w: unknown email or wrong password", errs.ErrAuthentication)
		}
		return ports.AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ports.AuthResult{}, fmt.Errorf("%w: unknown email or wrong password", errs.ErrAuthentication)
	}

	if u.Role != s.role {
		return ports.AuthResult{}, fmt.Errorf("%w: account role %s cannot use this portal", errs.ErrAuthorization, u.Role)
	}
	if !u.IsActive {
		return ports.AuthResult{}, fmt.Errorf("%w: account is deactivated", errs.ErrAuthorization)
	}

	token, _, err := s.jwtMgr.IssueUserToken(u.ID, u.Role)
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info(ctx, "user_logged_in", "Login succeeded", map[string]any{
		"user_id": u.ID,
		"role":    u.Role.String(),
	})

	return ports.AuthResult{Token: token, User: ports.NewUserProfile(u)}, nil
}

// Me returns the profile behind a validated token subject.
func (s *authService) Me(ctx context.Context, userID string) (ports.UserProfile, error) {
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
