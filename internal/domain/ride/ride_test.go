package ride

import (
	"testing"

	"charide/internal/general/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRide(t *testing.T, status Status) *Ride {
	t.Helper()
	r, err := NewRide("passenger-1", "Central Station", "Airport T2", status)
	require.NoError(t, err)
	r.ID = "ride-1"
	return r
}

func TestNewRideValidation(t *testing.T) {
	_, err := NewRide("", "a", "b", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = NewRide("p1", "  ", "b", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = NewRide("p1", "a", "", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = NewRide("p1", "a", "b", Status("weird"))
	assert.ErrorIs(t, err, errs.ErrValidation)

	r, err := NewRide("p1", "a", "b", "")
	require.NoError(t, err)
	assert.Equal(t, StatusRequested, r.Status)
	assert.Nil(t, r.DriverID)
	assert.Zero(t, r.Fare)

	r, err = NewRide("p1", "a", "b", StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, r.Status)
}

func TestAssign(t *testing.T) {
	r := newTestRide(t, StatusRequested)
	require.NoError(t, r.Assign("driver-1"))
	assert.Equal(t, StatusAssigned, r.Status)
	require.NotNil(t, r.DriverID)
	assert.Equal(t, "driver-1", *r.DriverID)

	// another driver cannot take over
	assert.ErrorIs(t, r.Assign("driver-2"), errs.ErrConflict)

	// assignment after driver progress started is illegal
	r2 := newTestRide(t, StatusEnRoute)
	assert.ErrorIs(t, r2.Assign("driver-1"), errs.ErrValidation)

	r3 := newTestRide(t, StatusRequested)
	assert.ErrorIs(t, r3.Assign("  "), errs.ErrValidation)
}

func TestClaim(t *testing.T) {
	r := newTestRide(t, StatusPending)
	require.NoError(t, r.Claim("driver-1"))
	assert.Equal(t, StatusAccepted, r.Status)
	require.NotNil(t, r.DriverID)
	assert.Equal(t, "driver-1", *r.DriverID)

	// repeat claim by the holder is a no-op
	require.NoError(t, r.Claim("driver-1"))
	assert.Equal(t, StatusAccepted, r.Status)

	// claim by anyone else is a conflict and changes nothing
	err := r.Claim("driver-2")
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, "driver-1", *r.DriverID)
	assert.Equal(t, StatusAccepted, r.Status)
}

func TestClaimAfterPassengerAssignment(t *testing.T) {
	r := newTestRide(t, StatusRequested)
	require.NoError(t, r.Assign("driver-1"))

	// the preselected driver confirms
	require.NoError(t, r.Claim("driver-1"))
	assert.Equal(t, StatusAccepted, r.Status)

	// a different driver cannot claim a preselected ride
	r2 := newTestRide(t, StatusRequested)
	require.NoError(t, r2.Assign("driver-1"))
	assert.ErrorIs(t, r2.Claim("driver-2"), errs.ErrConflict)
}

func TestClaimRejectedOnceInProgress(t *testing.T) {
	for _, status := range []Status{StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled} {
		r := newTestRide(t, status)
		assert.ErrorIs(t, r.Claim("driver-1"), errs.ErrValidation, "claim from %s", status)
	}
}

func TestMarkPaid(t *testing.T) {
	r := newTestRide(t, StatusArrived)
	require.NoError(t, r.MarkPaid(18.50, "card"))
	assert.Equal(t, StatusPaid, r.Status)
	assert.Equal(t, 18.50, r.Fare)
	require.NotNil(t, r.PaymentMethod)
	assert.Equal(t, "card", *r.PaymentMethod)

	// payment never completes the ride
	assert.NotEqual(t, StatusCompleted, r.Status)

	assert.ErrorIs(t, newTestRide(t, StatusRequested).MarkPaid(-1, "card"), errs.ErrValidation)
	assert.ErrorIs(t, newTestRide(t, StatusCompleted).MarkPaid(10, "card"), errs.ErrValidation)
	assert.ErrorIs(t, newTestRide(t, StatusCancelled).MarkPaid(10, "card"), errs.ErrValidation)
}

func TestMarkPaidKeepsMethodOptional(t *testing.T) {
	r := newTestRide(t, StatusAccepted)
	require.NoError(t, r.MarkPaid(9.90, "  "))
	assert.Nil(t, r.PaymentMethod)
}

func TestApplyStatus(t *testing.T) {
	r := newTestRide(t, StatusAccepted)

	require.NoError(t, r.ApplyStatus(StatusEnRoute))
	require.NoError(t, r.ApplyStatus(StatusEnRoute)) // idempotent
	require.NoError(t, r.ApplyStatus(StatusArrived))
	require.NoError(t, r.ApplyStatus(StatusCompleted))

	assert.ErrorIs(t, r.ApplyStatus(StatusEnRoute), errs.ErrValidation)
	assert.ErrorIs(t, r.ApplyStatus(Status("weird")), errs.ErrValidation)
}

func TestCancel(t *testing.T) {
	r := newTestRide(t, StatusEnRoute)
	require.NoError(t, r.Cancel())
	assert.Equal(t, StatusCancelled, r.Status)

	assert.ErrorIs(t, newTestRide(t, StatusCompleted).Cancel(), errs.ErrValidation)

	cancelled := newTestRide(t, StatusCancelled)
	require.NoError(t, cancelled.Cancel())
	assert.Equal(t, StatusCancelled, cancelled.Status)
}
