package ride

import (
	"strings"

	"charide/internal/general/errs"
)

// Status is a ride lifecycle status as stored in the `rides.status` column.
// Values are lowercase on the wire and in storage.
type Status string

const (
	StatusRequested Status = "requested"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusAssigned  Status = "assigned"
	StatusAccepted  Status = "accepted"
	StatusEnRoute   Status = "en_route"
	StatusArrived   Status = "arrived"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus normalizes (lowercases+trims) and validates a status string.
func ParseStatus(in string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", errs.Validationf("unknown ride status %q", in)
}

// Valid reports whether status is one of the allowed status constants.
func (status Status) Valid() bool {
	switch status {
	case StatusRequested, StatusPending, StatusPaid, StatusAssigned,
		StatusAccepted, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}

// Terminal indicates a final state no transition can leave.
func (status Status) Terminal() bool {
	return status == StatusCompleted || status == StatusCancelled
}

// transitions is the closed lifecycle graph. `paid` is reachable from every
// non-terminal state except `assigned`: payment may precede assignment (book,
// pay, then pick a driver) or follow the trip (pay during the ride, before the
// driver confirms completion), but an assigned ride first waits for the
// driver's accept. Driver progress statuses permit forward skips; backward
// moves are never legal.
var transitions = map[Status][]Status{
	StatusRequested: {StatusPending, StatusPaid, StatusAssigned, StatusAccepted, StatusCancelled},
	StatusPending:   {StatusPaid, StatusAssigned, StatusAccepted, StatusCancelled},
	StatusPaid:      {StatusAssigned, StatusAccepted, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled},
	StatusAssigned:  {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusPaid, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled},
	StatusEnRoute:   {StatusPaid, StatusArrived, StatusCompleted, StatusCancelled},
	StatusArrived:   {StatusPaid, StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// CanTransitionTo reports whether moving from status to next is legal.
// Writing the current status again is treated as an idempotent no-op.
func (status Status) CanTransitionTo(next Status) bool {
	if !status.Valid() || !next.Valid() {
		return false
	}
	if status == next {
		return !status.Terminal()
	}
	for _, allowed := range transitions[status] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Claimable reports whether an unassigned ride in this status may still be
// claimed by a driver.
func (status Status) Claimable() bool {
	return status.CanTransitionTo(StatusAccepted)
}

// ClaimableStatuses returns every status a driver may still claim from, in
// lifecycle order. Stores use it to build their claim guards so the guard and
// Claimable never drift apart.
func ClaimableStatuses() []string {
	all := []Status{
		StatusRequested, StatusPending, StatusPaid, StatusAssigned,
		StatusAccepted, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled,
	}

	var out []string
	for _, status := range all {
		if status.Claimable() {
			out = append(out, status.String())
		}
	}
	return out
}
