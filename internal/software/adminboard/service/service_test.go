package service

import (
	"context"
	"testing"

	"charide/internal/domain/driver"
	"charide/internal/domain/message"
	"charide/internal/domain/ride"
	"charide/internal/domain/user"
	"charide/internal/general/errs"
	"charide/internal/general/logger"
	"charide/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----- fakes -----

type fakeUOW struct{}

func (fakeUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	ports.UserRepository
	list         func(ctx context.Context, status *user.AccountStatus, role *user.Role) ([]*user.User, error)
	updateStatus func(ctx context.Context, id string, status user.AccountStatus) error
	getByID      func(ctx context.Context, id string) (*user.User, error)
	count        int
}

func (f *fakeUsers) List(ctx context.Context, status *user.AccountStatus, role *user.Role) ([]*user.User, error) {
	return f.list(ctx, status, role)
}

func (f *fakeUsers) UpdateStatus(ctx context.Context, id string, status user.AccountStatus) error {
	return f.updateStatus(ctx, id, status)
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUsers) Count(ctx context.Context) (int, error) { return f.count, nil }

type fakeDrivers struct {
	ports.DriverRepository
	listAll         func(ctx context.Context) ([]ports.AdminDriverRow, error)
	userIDForDriver func(ctx context.Context, driverID string) (string, error)
	count           int
}

func (f *fakeDrivers) ListAll(ctx context.Context) ([]ports.AdminDriverRow, error) {
	return f.listAll(ctx)
}

func (f *fakeDrivers) UserIDForDriver(ctx context.Context, driverID string) (string, error) {
	return f.userIDForDriver(ctx, driverID)
}

func (f *fakeDrivers) Count(ctx context.Context) (int, error) { return f.count, nil }

type fakeRides struct {
	ports.RideRepository
	listAll          func(ctx context.Context, status *ride.Status) ([]*ride.Ride, error)
	getByIDForUpdate func(ctx context.Context, id string) (*ride.Ride, error)
	saved            []*ride.Ride
	count            int
	revenue          float64
}

func (f *fakeRides) ListAll(ctx context.Context, status *ride.Status) ([]*ride.Ride, error) {
	return f.listAll(ctx, status)
}

func (f *fakeRides) GetByIDForUpdate(ctx context.Context, id string) (*ride.Ride, error) {
	return f.getByIDForUpdate(ctx, id)
}

func (f *fakeRides) SaveRide(ctx context.Context, r *ride.Ride) error {
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRides) Count(ctx context.Context) (int, error) { return f.count, nil }

func (f *fakeRides) TotalRevenue(ctx context.Context) (float64, error) { return f.revenue, nil }

type fakeMessages struct {
	ports.MessageRepository
	rows []ports.MessageRow
}

func (f *fakeMessages) ListAll(ctx context.Context) ([]ports.MessageRow, error) {
	return f.rows, nil
}

type fakeNotifier struct {
	events []*ride.Ride
}

func (f *fakeNotifier) RideStatusChanged(ctx context.Context, r *ride.Ride) {
	f.events = append(f.events, r)
}

func approvedUser(t *testing.T, id string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(id+"@example.com", "User "+id, "123", role, "hash")
	require.NoError(t, err)
	u.ID = id
	return u
}

func newService(users *fakeUsers, drivers *fakeDrivers, rides *fakeRides, messages *fakeMessages, notifier *fakeNotifier) ports.AdminService {
	return NewAdminService(fakeUOW{}, users, drivers, rides, messages, notifier, logger.New("admin-service-test"))
}

// ----- tests -----

func TestListUsersFilters(t *testing.T) {
	var gotStatus *user.AccountStatus
	var gotRole *user.Role
	users := &fakeUsers{
		list: func(ctx context.Context, status *user.AccountStatus, role *user.Role) ([]*user.User, error) {
			gotStatus, gotRole = status, role
			return []*user.User{approvedUser(t, "u1", user.RoleDriver)}, nil
		},
	}
	svc := newService(users, nil, nil, nil, &fakeNotifier{})

	profiles, err := svc.ListUsers(context.Background(), "pending", "driver")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.NotNil(t, gotStatus)
	assert.Equal(t, user.AccountPending, *gotStatus)
	require.NotNil(t, gotRole)
	assert.Equal(t, user.RoleDriver, *gotRole)
}

func TestListUsersRejectsUnknownFilters(t *testing.T) {
	svc := newService(&fakeUsers{}, nil, nil, nil, &fakeNotifier{})

	_, err := svc.ListUsers(context.Background(), "frozen", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.ListUsers(context.Background(), "", "superuser")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestSetUserStatus(t *testing.T) {
	var updated user.AccountStatus
	users := &fakeUsers{
		updateStatus: func(ctx context.Context, id string, status user.AccountStatus) error {
			updated = status
			return nil
		},
		getByID: func(ctx context.Context, id string) (*user.User, error) {
			u := approvedUser(t, id, user.RoleDriver)
			u.Status = user.AccountApproved
			return u, nil
		},
	}
	svc := newService(users, nil, nil, nil, &fakeNotifier{})

	profile, err := svc.SetUserStatus(context.Background(), "u1", "approved")
	require.NoError(t, err)
	assert.Equal(t, user.AccountApproved, updated)
	assert.Equal(t, "approved", profile.AccountStatus)

	_, err = svc.SetUserStatus(context.Background(), "u1", "banned-ish")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestSetDriverStatusResolvesUser(t *testing.T) {
	var moderated string
	drivers := &fakeDrivers{
		userIDForDriver: func(ctx context.Context, driverID string) (string, error) {
			require.Equal(t, "drv-1", driverID)
			return "u7", nil
		},
	}
	users := &fakeUsers{
		updateStatus: func(ctx context.Context, id string, status user.AccountStatus) error {
			moderated = id
			return nil
		},
		getByID: func(ctx context.Context, id string) (*user.User, error) {
			return approvedUser(t, id, user.RoleDriver), nil
		},
	}
	svc := newService(users, drivers, nil, nil, &fakeNotifier{})

	profile, err := svc.SetDriverStatus(context.Background(), "drv-1", "rejected")
	require.NoError(t, err)
	assert.Equal(t, "u7", moderated)
	assert.Equal(t, "u7", profile.ID)
}

func TestListDrivers(t *testing.T) {
	lat := 52.52
	drivers := &fakeDrivers{
		listAll: func(ctx context.Context) ([]ports.AdminDriverRow, error) {
			return []ports.AdminDriverRow{{
				Driver: driver.Driver{
					ID: "drv-1", UserID: "u1", VehicleType: "sedan", VehiclePlate: "B-XY 1",
					IsOnline: true, CurrentLatitude: &lat,
				},
				Email: "d@example.com", FullName: "Dora", AccountStatus: user.AccountApproved,
				Rating: 4.9, IsActive: true,
			}}, nil
		},
	}
	svc := newService(nil, drivers, nil, nil, &fakeNotifier{})

	views, err := svc.ListDrivers(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "drv-1", views[0].DriverID)
	assert.Equal(t, "approved", views[0].AccountStatus)
	assert.True(t, views[0].IsOnline)
}

func TestForceRideStatus(t *testing.T) {
	r, err := ride.NewRide("p1", "A", "B", ride.StatusAccepted)
	require.NoError(t, err)
	r.ID = "ride-1"

	rides := &fakeRides{
		getByIDForUpdate: func(ctx context.Context, id string) (*ride.Ride, error) { return r, nil },
	}
	notifier := &fakeNotifier{}
	svc := newService(nil, nil, rides, nil, notifier)

	view, err := svc.ForceRideStatus(context.Background(), "ride-1", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", view.Status)
	require.Len(t, rides.saved, 1)
	require.Len(t, notifier.events, 1)
}

func TestForceRideStatusTerminalStaysImmutable(t *testing.T) {
	r, err := ride.NewRide("p1", "A", "B", ride.StatusCompleted)
	require.NoError(t, err)
	r.ID = "ride-1"

	rides := &fakeRides{
		getByIDForUpdate: func(ctx context.Context, id string) (*ride.Ride, error) { return r, nil },
	}
	svc := newService(nil, nil, rides, nil, &fakeNotifier{})

	_, err = svc.ForceRideStatus(context.Background(), "ride-1", "en_route")
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, rides.saved)
}

func TestStats(t *testing.T) {
	svc := newService(
		&fakeUsers{count: 40},
		&fakeDrivers{count: 12},
		&fakeRides{count: 230, revenue: 4521.75},
		nil, &fakeNotifier{},
	)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, stats.TotalUsers)
	assert.Equal(t, 12, stats.TotalDrivers)
	assert.Equal(t, 230, stats.TotalRides)
	assert.Equal(t, 4521.75, stats.TotalRevenue)
}

func TestListMessages(t *testing.T) {
	m, err := message.NewMessage("u1", "Payout", "When is the weekly payout?")
	require.NoError(t, err)
	m.ID = "msg-1"

	svc := newService(nil, nil, nil, &fakeMessages{
		rows: []ports.MessageRow{{Message: *m, SenderName: "Bob"}},
	}, &fakeNotifier{})

	views, err := svc.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "msg-1", views[0].ID)
	assert.Equal(t, "Bob", views[0].SenderName)
	assert.Equal(t, "Payout", views[0].Subject)
}
