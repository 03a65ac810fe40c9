// Package driver holds the vehicle/availability profile that accompanies a
// user with the driver role. The row lives in the `drivers` table and is
// consumed read-mostly; the online flag and coordinates are the only fields
// the driver portal mutates after signup.
package driver

import (
	"strings"

	"charide/internal/general/errs"
)

// Driver is the domain entity corresponding to the `drivers` table.
type Driver struct {
	ID     string
	UserID string

	VehicleType  string
	VehiclePlate string

	IsOnline         bool
	CurrentLatitude  *float64
	CurrentLongitude *float64
}

// NewDriver creates a driver profile for a freshly signed-up user.
// Drivers always start offline.
func NewDriver(userID, vehicleType, vehiclePlate string) (*Driver, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errs.Validationf("user id is required")
	}
	vehicleType = strings.TrimSpace(vehicleType)
	vehiclePlate = strings.TrimSpace(vehiclePlate)
	if vehicleType == "" || vehiclePlate == "" {
		return nil, errs.Validationf("vehicle type and plate are required")
	}

	return &Driver{
		UserID:       userID,
		VehicleType:  vehicleType,
		VehiclePlate: vehiclePlate,
		IsOnline:     false,
	}, nil
}

// StatusUpdate is a partial update of the driver's operational state.
// Nil fields are left untouched.
type StatusUpdate struct {
	IsOnline  *bool
	Latitude  *float64
	Longitude *float64
}

// Empty reports whether the update carries no changes.
func (upd StatusUpdate) Empty() bool {
	return upd.IsOnline == nil && upd.Latitude == nil && upd.Longitude == nil
}
