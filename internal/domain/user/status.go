package user

import (
	"strings"

	"charide/internal/general/errs"
)

// AccountStatus is the moderation state of an account as stored in the
// `users.status` column. Drivers start pending and are approved or rejected
// by an admin; passengers and admins start approved.
type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
)

// ParseAccountStatus normalizes and validates an account status string.
func ParseAccountStatus(in string) (AccountStatus, error) {
	status := AccountStatus(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", errs.Validationf("unknown account status %q", in)
}

// Valid reports whether status is one of the allowed account statuses.
func (status AccountStatus) Valid() bool {
	switch status {
	case AccountPending, AccountApproved, AccountRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the AccountStatus.
func (status AccountStatus) String() string {
	return string(status)
}
