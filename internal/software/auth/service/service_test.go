package service

import (
	"context"
	"testing"
	"time"

	"charide/internal/domain/driver"
	"charide/internal/domain/user"
	"charide/internal/general/errs"
	"charide/internal/general/jwt"
	"charide/internal/general/logger"
	"charide/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ----- fakes -----

type fakeUOW struct{}

func (fakeUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	ports.UserRepository
	createUser func(ctx context.Context, u *user.User) error
	getByEmail func(ctx context.Context, email string) (*user.User, error)
	getByID    func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUsers) CreateUser(ctx context.Context, u *user.User) error {
	return f.createUser(ctx, u)
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.getByEmail(ctx, email)
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	return f.getByID(ctx, id)
}

type fakeDrivers struct {
	ports.DriverRepository
	created []*driver.Driver
}

func (f *fakeDrivers) CreateDriver(ctx context.Context, d *driver.Driver) error {
	f.created = append(f.created, d)
	return nil
}

func testManager() *jwt.Manager {
	return jwt.NewManager("auth-test-secret", time.Hour)
}

func storedUser(t *testing.T, email, password string, role user.Role) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := user.NewUser(email, "Test User", "123", role, string(hash))
	require.NoError(t, err)
	u.ID = "user-1"
	return u
}

func newService(role user.Role, users *fakeUsers, drivers *fakeDrivers) ports.AuthService {
	return NewAuthService(role, fakeUOW{}, users, drivers, testManager(), logger.New("auth-test"))
}

// ----- tests -----

func TestSignupPassenger(t *testing.T) {
	users := &fakeUsers{
		createUser: func(ctx context.Context, u *user.User) error {
			u.ID = "user-1"
			return nil
		},
	}
	svc := newService(user.RolePassenger, users, nil)

	res, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:    "  Ann@Example.com ",
		Password: "hunter22",
		FullName: "Ann",
		Phone:    "123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ann@example.com", res.User.Email)
	assert.Equal(t, "passenger", res.User.Role)
	assert.Equal(t, "approved", res.User.AccountStatus)

	claims, err := testManager().ParseAndValidate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, user.RolePassenger, claims.Role)
}

func TestSignupDriverCreatesDriverRow(t *testing.T) {
	users := &fakeUsers{
		createUser: func(ctx context.Context, u *user.User) error {
			u.ID = "user-1"
			return nil
		},
	}
	drivers := &fakeDrivers{}
	svc := newService(user.RoleDriver, users, drivers)

	res, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:        "bob@example.com",
		Password:     "hunter22",
		FullName:     "Bob",
		VehicleType:  "sedan",
		VehiclePlate: "B-XY 123",
	})
	require.NoError(t, err)
	// drivers start in moderation
	assert.Equal(t, "pending", res.User.AccountStatus)
	require.Len(t, drivers.created, 1)
	assert.Equal(t, "user-1", drivers.created[0].UserID)
	assert.Equal(t, "sedan", drivers.created[0].VehicleType)
}

func TestSignupValidation(t *testing.T) {
	svc := newService(user.RolePassenger, &fakeUsers{}, nil)

	_, err := svc.Signup(context.Background(), ports.SignupInput{Email: "a@b.com", Password: "hunter22"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Signup(context.Background(), ports.SignupInput{Email: "a@b.com", Password: "short", FullName: "A"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Signup(context.Background(), ports.SignupInput{Email: "not-an-email", Password: "hunter22", FullName: "A"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// driver portal requires vehicle details
	dsvc := newService(user.RoleDriver, &fakeUsers{}, &fakeDrivers{})
	_, err = dsvc.Signup(context.Background(), ports.SignupInput{Email: "a@b.com", Password: "hunter22", FullName: "A"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := &fakeUsers{
		createUser: func(ctx context.Context, u *user.User) error {
			return errs.Conflictf("duplicate key")
		},
	}
	svc := newService(user.RolePassenger, users, nil)

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		Email: "ann@example.com", Password: "hunter22", FullName: "Ann",
	})
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLogin(t *testing.T) {
	stored := storedUser(t, "ann@example.com", "hunter22", user.RolePassenger)
	users := &fakeUsers{
		getByEmail: func(ctx context.Context, email string) (*user.User, error) {
			require.Equal(t, "ann@example.com", email)
			return stored, nil
		},
	}
	svc := newService(user.RolePassenger, users, nil)

	res, err := svc.Login(context.Background(), "ANN@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "user-1", res.User.ID)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	stored := storedUser(t, "ann@example.com", "hunter22", user.RolePassenger)
	users := &fakeUsers{
		getByEmail: func(ctx context.Context, email string) (*user.User, error) {
			if email == "ann@example.com" {
				return stored, nil
			}
			return nil, errs.NotFoundf("user %s", email)
		},
	}
	svc := newService(user.RolePassenger, users, nil)

	_, errWrongPw := svc.Login(context.Background(), "ann@example.com", "nope")
	_, errUnknown := svc.Login(context.Background(), "ghost@example.com", "hunter22")

	require.ErrorIs(t, errWrongPw, errs.ErrAuthentication)
	require.ErrorIs(t, errUnknown, errs.ErrAuthentication)
	// identical messages so the endpoint does not reveal which emails exist
	assert.Equal(t, errWrongPw.Error(), errUnknown.Error())
}

func TestLoginRoleMismatch(t *testing.T) {
	stored := storedUser(t, "bob@example.com", "hunter22", user.RoleDriver)
	users := &fakeUsers{
		getByEmail: func(ctx context.Context, email string) (*user.User, error) { return stored, nil },
	}
	svc := newService(user.RolePassenger, users, nil)

	_, err := svc.Login(context.Background(), "bob@example.com", "hunter22")
	assert.ErrorIs(t, err, errs.ErrAuthorization)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	stored := storedUser(t, "ann@example.com", "hunter22", user.RolePassenger)
	stored.IsActive = false
	users := &fakeUsers{
		getByEmail: func(ctx context.Context, email string) (*user.User, error) { return stored, nil },
	}
	svc := newService(user.RolePassenger, users, nil)

	_, err := svc.Login(context.Background(), "ann@example.com", "hunter22")
	assert.ErrorIs(t, err, errs.ErrAuthorization)
}

func TestMe(t *testing.T) {
	stored := storedUser(t, "ann@example.com", "hunter22", user.RolePassenger)
	users := &fakeUsers{
		getByID: func(ctx context.Context, id string) (*user.User, error) {
			require.Equal(t, "user-1", id)
			return stored, nil
		},
	}
	svc := newService(user.RolePassenger, users, nil)

	profile, err := svc.Me(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", profile.Email)
}
