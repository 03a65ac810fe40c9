package service

import (
	"context"
	"testing"

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
	getByID func(ctx context.Context, id string) (*user.User, error)
	update  func(ctx context.Context, u *user.User) error
	deleted []string
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, u *user.User) error {
	return f.update(ctx, u)
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDrivers struct {
	ports.DriverRepository
	listOnline func(ctx context.Context) ([]ports.NearbyDriverRow, error)
}

func (f *fakeDrivers) ListOnline(ctx context.Context) ([]ports.NearbyDriverRow, error) {
	return f.listOnline(ctx)
}

type fakeRides struct {
	ports.RideRepository
	created           []*ride.Ride
	saved             []*ride.Ride
	getByIDForUpdate  func(ctx context.Context, id string) (*ride.Ride, error)
	listByPassenger   func(ctx context.Context, passengerID string) ([]*ride.Ride, error)
	passengerStats    func(ctx context.Context, passengerID string) (ports.PassengerRideStats, error)
	deletedPassengers []string
}

func (f *fakeRides) CreateRide(ctx context.Context, r *ride.Ride) error {
	r.ID = "ride-1"
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRides) GetByIDForUpdate(ctx context.Context, id string) (*ride.Ride, error) {
	return f.getByIDForUpdate(ctx, id)
}

func (f *fakeRides) SaveRide(ctx context.Context, r *ride.Ride) error {
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRides) ListByPassenger(ctx context.Context, passengerID string) ([]*ride.Ride, error) {
	return f.listByPassenger(ctx, passengerID)
}

func (f *fakeRides) PassengerStats(ctx context.Context, passengerID string) (ports.PassengerRideStats, error) {
	return f.passengerStats(ctx, passengerID)
}

func (f *fakeRides) DeleteByPassenger(ctx context.Context, passengerID string) error {
	f.deletedPassengers = append(f.deletedPassengers, passengerID)
	return nil
}

type fakeNotifier struct {
	events []*ride.Ride
}

func (f *fakeNotifier) RideStatusChanged(ctx context.Context, r *ride.Ride) {
	f.events = append(f.events, r)
}

func ownRide(t *testing.T, status ride.Status) *ride.Ride {
	t.Helper()
	r, err := ride.NewRide("passenger-1", "Central Station", "Airport T2", status)
	require.NoError(t, err)
	r.ID = "ride-1"
	return r
}

func newService(rides *fakeRides, drivers *fakeDrivers, users *fakeUsers, notifier *fakeNotifier) ports.PassengerService {
	return NewPassengerService(fakeUOW{}, users, drivers, rides, notifier, logger.New("passenger-service-test"))
}

// ----- tests -----

func TestCreateRide(t *testing.T) {
	rides := &fakeRides{}
	notifier := &fakeNotifier{}
	svc := newService(rides, nil, nil, notifier)

	view, err := svc.CreateRide(context.Background(), ports.CreateRideInput{
		PassengerID:     "passenger-1",
		PickupLocation:  "Central Station",
		DropoffLocation: "Airport T2",
	})
	require.NoError(t, err)
	assert.Equal(t, "requested", view.Status)
	assert.Equal(t, "passenger-1", view.PassengerID)
	require.Len(t, rides.created, 1)
	require.Len(t, notifier.events, 1)
}

func TestCreateRideWithPreselectedDriverAndFare(t *testing.T) {
	rides := &fakeRides{}
	driverID := "driver-9"
	fare := 12.50
	vt := "sedan"
	svc := newService(rides, nil, nil, &fakeNotifier{})

	view, err := svc.CreateRide(context.Background(), ports.CreateRideInput{
		PassengerID:     "passenger-1",
		PickupLocation:  "A",
		DropoffLocation: "B",
		Status:          "pending",
		DriverID:        &driverID,
		Fare:            &fare,
		VehicleType:     &vt,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", view.Status)
	require.NotNil(t, view.DriverID)
	assert.Equal(t, driverID, *view.DriverID)
	assert.Equal(t, fare, view.Fare)
	require.NotNil(t, view.VehicleType)
	assert.Equal(t, "sedan", *view.VehicleType)
}

func TestCreateRideValidation(t *testing.T) {
	svc := newService(&fakeRides{}, nil, nil, &fakeNotifier{})

	_, err := svc.CreateRide(context.Background(), ports.CreateRideInput{
		PassengerID: "passenger-1", PickupLocation: " ", DropoffLocation: "B",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.CreateRide(context.Background(), ports.CreateRideInput{
		PassengerID: "passenger-1", PickupLocation: "A", DropoffLocation: "B", Status: "flying",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	negative := -3.0
	_, err = svc.CreateRide(context.Background(), ports.CreateRideInput{
		PassengerID: "passenger-1", PickupLocation: "A", DropoffLocation: "B", Fare: &negative,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestAssignDriver(t *testing.T) {
	rides := &fakeRides{
		getByIDForUpdate: func(ctx context.Context, id string) (*ride.Ride, error) {
			return ownRide(t, ride.StatusRequested), nil
		},
	}
	notifier := &fakeNotifier{}
	svc := newService(rides, nil, nil, notifier)

	view, err := svc.AssignDriver(context.Background(), "passenger-1", "ride-1", "driver-2")
	require.NoError(t, err)
	assert.Equal(t, "assigned", view.Status)
	require.NotNil(t, view.DriverID)
	assert.Equal(t, "driver-2", *view.DriverID)
	require.Len(t, rides.saved, 1)
	require.Len(t, notifier.events, 1)
}

func TestForeignRideResolvesToNotFound(t *testing.T) {
	rides := &fakeRides{
		getByIDForUpdate: func(ctx context.Context, id string) (*ride.Ride, error) {
			return ownRide(t, ride.StatusRequested), nil
		},
	}
	svc := newService(rides, nil, nil, &fakeNotifier{})

	_, err := svc.AssignDriver(context.Background(), "passenger-2", "ride-1", "driver-2")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Empty(t, rides.saved)
}

func TestUpdateRideStatusRejectsCompleted(t *testing.T) {
	rides := &fakeRides{
		getByIDForUpdate: func(ctx context.Context, id string) (*ride.Ride, error) {
			t.Fatal("ride must not be loaded when completed is rejected up front")
			return nil, nil
		},
	}
	svc := newService(rides, nil, nil, &fakeNotifier{})

	_, err := svc.UpdateRideStatus(context.Background(), "passenger-1", "ride-1", ports.RideStatusInput{Status: "completed"})
	assert.ErrorIs(t, err, errs.ErrAuthorization)
}

func TestUpdateRideStatusPaidNeverCompletes(t *testing.T) {
	rides := &fakeRides{
		getByIDForUpdate: func(ctx context.Context, id string) (*ride.Ride, error) {
			return ownRide(t, ride.StatusArrived), nil
		},
	}
	fare := 30.0
	method := "card"
	notifier := &fakeNotifier{}
	svc := newService(rides, nil, nil, notifier)

	view, err := svc.UpdateRideStatus(context.Background(), "passenger-1", "ride-1", ports.RideStatusInput{
		Status: "paid", Fare: &fare, PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", view.Status)
	assert.Equal(t, fare, view.Fare)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, ride.StatusPaid, notifier.events[0].Status)
}

func TestUpdateRideStatusCancel(t *testing.T) {
	rides := &fakeRides{
		getByIDForUpdate: func(ctx context.Context, id string) (*ride.Ride, error) {
			return ownRide(t, ride.StatusAccepted), nil
		},
	}
	svc := newService(rides, nil, nil, &fakeNotifier{})

	view, err := svc.UpdateRideStatus(context.Background(), "passenger-1", "ride-1", ports.RideStatusInput{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", view.Status)

	// re-cancelling an already cancelled ride stays a no-op
	rides.getByIDForUpdate = func(ctx context.Context, id string) (*ride.Ride, error) {
		return ownRide(t, ride.StatusCancelled), nil
	}
	view, err = svc.UpdateRideStatus(context.Background(), "passenger-1", "ride-1", ports.RideStatusInput{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", view.Status)
}

func TestRideHistory(t *testing.T) {
	rides := &fakeRides{
		listByPassenger: func(ctx context.Context, passengerID string) ([]*ride.Ride, error) {
			return []*ride.Ride{ownRide(t, ride.StatusCompleted), ownRide(t, ride.StatusCancelled)}, nil
		},
	}
	svc := newService(rides, nil, nil, &fakeNotifier{})

	views, err := svc.RideHistory(context.Background(), "passenger-1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "completed", views[0].Status)
}

func TestRideStats(t *testing.T) {
	rides := &fakeRides{
		passengerStats: func(ctx context.Context, passengerID string) (ports.PassengerRideStats, error) {
			return ports.PassengerRideStats{TotalRides: 7, TotalSpent: 123.40, LastFare: 18.50}, nil
		},
	}
	svc := newService(rides, nil, nil, &fakeNotifier{})

	stats, err := svc.RideStats(context.Background(), "passenger-1")
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalRides)
	assert.Equal(t, 123.40, stats.TotalSpent)
	assert.Equal(t, 18.50, stats.LastFare)
}

func TestDeleteProfileCascadesRides(t *testing.T) {
	rides := &fakeRides{}
	users := &fakeUsers{}
	svc := newService(rides, nil, users, &fakeNotifier{})

	require.NoError(t, svc.DeleteProfile(context.Background(), "passenger-1"))
	assert.Equal(t, []string{"passenger-1"}, rides.deletedPassengers)
	assert.Equal(t, []string{"passenger-1"}, users.deleted)
}

func TestNearbyDrivers(t *testing.T) {
	lat, lng := 52.52, 13.40
	drivers := &fakeDrivers{
		listOnline: func(ctx context.Context) ([]ports.NearbyDriverRow, error) {
			return []ports.NearbyDriverRow{{
				DriverID: "drv-1", UserID: "user-5", FullName: "Dora", Rating: 4.8,
				VehicleType: "sedan", VehiclePlate: "B-XY 123", Latitude: &lat, Longitude: &lng,
			}}, nil
		},
	}
	svc := newService(nil, drivers, nil, &fakeNotifier{})

	views, err := svc.NearbyDrivers(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Dora", views[0].FullName)
	require.NotNil(t, views[0].Latitude)
	assert.Equal(t, lat, *views[0].Latitude)
}

func TestUpdateProfile(t *testing.T) {
	stored, err := user.NewUser("ann@example.com", "Ann", "123", user.RolePassenger, "hash")
	require.NoError(t, err)
	stored.ID = "passenger-1"

	var savedName string
	users := &fakeUsers{
		getByID: func(ctx context.Context, id string) (*user.User, error) { return stored, nil },
		update: func(ctx context.Context, u *user.User) error {
			savedName = u.FullName
			return nil
		},
	}
	svc := newService(nil, nil, users, &fakeNotifier{})

	name := "Ann Smith"
	profile, err := svc.UpdateProfile(context.Background(), "passenger-1", ports.UpdateProfileInput{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", profile.FullName)
	assert.Equal(t, "Ann Smith", savedName)
}
