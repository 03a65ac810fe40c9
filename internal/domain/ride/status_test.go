package ride

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("  EN_ROUTE ")
	require.NoError(t, err)
	assert.Equal(t, StatusEnRoute, s)

	s, err = ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseStatus("driving")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusRequested.Terminal())
	assert.False(t, StatusPaid.Terminal())
	assert.False(t, StatusArrived.Terminal())
}

func TestTransitionsNeverLeaveTerminalStates(t *testing.T) {
	all := []Status{
		StatusRequested, StatusPending, StatusPaid, StatusAssigned,
		StatusAccepted, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled,
	}
	for _, next := range all {
		assert.False(t, StatusCompleted.CanTransitionTo(next), "completed -> %s", next)
		assert.False(t, StatusCancelled.CanTransitionTo(next), "cancelled -> %s", next)
	}
}

func TestTransitionsForwardOnly(t *testing.T) {
	// driver progress can move forward and skip steps
	assert.True(t, StatusAccepted.CanTransitionTo(StatusEnRoute))
	assert.True(t, StatusAccepted.CanTransitionTo(StatusArrived))
	assert.True(t, StatusAccepted.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusEnRoute.CanTransitionTo(StatusArrived))
	assert.True(t, StatusEnRoute.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusArrived.CanTransitionTo(StatusCompleted))

	// but never backward
	assert.False(t, StatusArrived.CanTransitionTo(StatusEnRoute))
	assert.False(t, StatusEnRoute.CanTransitionTo(StatusAccepted))
	assert.False(t, StatusAccepted.CanTransitionTo(StatusAssigned))
	assert.False(t, StatusAssigned.CanTransitionTo(StatusPending))
	assert.False(t, StatusPaid.CanTransitionTo(StatusPending))
	assert.False(t, StatusPending.CanTransitionTo(StatusRequested))
}

func TestPaidReachability(t *testing.T) {
	for _, from := range []Status{
		StatusRequested, StatusPending,
		StatusAccepted, StatusEnRoute, StatusArrived,
	} {
		assert.True(t, from.CanTransitionTo(StatusPaid), "%s -> paid", from)
	}

	// an assigned ride waits for the driver's accept before payment
	assert.False(t, StatusAssigned.CanTransitionTo(StatusPaid))

	assert.False(t, StatusCompleted.CanTransitionTo(StatusPaid))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPaid))
}

func TestCancelEscapeFromEveryNonTerminalState(t *testing.T) {
	for _, from := range []Status{
		StatusRequested, StatusPending, StatusPaid, StatusAssigned,
		StatusAccepted, StatusEnRoute, StatusArrived,
	} {
		assert.True(t, from.CanTransitionTo(StatusCancelled), "%s -> cancelled", from)
	}
}

func TestSameStatusIsIdempotentUnlessTerminal(t *testing.T) {
	assert.True(t, StatusEnRoute.CanTransitionTo(StatusEnRoute))
	assert.True(t, StatusRequested.CanTransitionTo(StatusRequested))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))
}

func TestClaimable(t *testing.T) {
	for _, from := range []Status{StatusRequested, StatusPending, StatusPaid, StatusAssigned} {
		assert.True(t, from.Claimable(), "%s should be claimable", from)
	}
	for _, from := range []Status{StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled} {
		assert.False(t, from.Claimable(), "%s should not be claimable", from)
	}
}

func TestClaimableStatuses(t *testing.T) {
	assert.Equal(t,
		[]string{"requested", "pending", "paid", "assigned", "accepted"},
		ClaimableStatuses(),
	)
}
