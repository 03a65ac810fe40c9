package handler

import (
	"context"
	"net/http"

	"charide/internal/general/httpx"
	"charide/internal/general/jwt"
	"charide/internal/ports"
)

// --- Handler: POST /rides ---

func (handler *PassengerHTTPHandler) handleCreateRide(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	var body struct {
		PickupLocation  string   `json:"pickup_location"`
		DropoffLocation string   `json:"dropoff_location"`
		Status          string   `json:"status"`
		DriverID        *string  `json:"driver_id"`
		Fare            *float64 `json:"fare"`
		Distance        *float64 `json:"distance"`
		VehicleType     *string  `json:"vehicle_type"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	view, err := handler.svc.CreateRide(ctxWithTimeout, ports.CreateRideInput{
		PassengerID:     cl.Subject,
		PickupLocation:  body.PickupLocation,
		DropoffLocation: body.DropoffLocation,
		Status:          body.Status,
		DriverID:        body.DriverID,
		Fare:            body.Fare,
		Distance:        body.Distance,
		VehicleType:     body.VehicleType,
	})
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusCreated, view)
}

// --- Handler: PUT /rides/{id}/assign ---

func (handler *PassengerHTTPHandler) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)
	rideID := r.PathValue("id")

	var body struct {
		DriverID string `json:"driver_id"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	view, err := handler.svc.AssignDriver(ctxWithTimeout, cl.Subject, rideID, body.DriverID)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, view)
}

// --- Handler: PUT /rides/{id}/status ---

func (handler *PassengerHTTPHandler) handleUpdateRideStatus(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)
	rideID := r.PathValue("id")

	var body struct {
		Status        string   `json:"status"`
		Fare          *float64 `json:"fare"`
		PaymentMethod *string  `json:"payment_method"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	view, err := handler.svc.UpdateRideStatus(ctxWithTimeout, cl.Subject, rideID, ports.RideStatusInput{
		Status:        body.Status,
		Fare:          body.Fare,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, view)
}

// --- Handler: GET /rides/history ---

func (handler *PassengerHTTPHandler) handleRideHistory(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	rides, err := handler.svc.RideHistory(ctxWithTimeout, cl.Subject)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"rides": rides,
	})
}

// --- Handler: GET /rides/recent ---

func (handler *PassengerHTTPHandler) handleRecentRides(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	rides, err := handler.svc.RecentRides(ctxWithTimeout, cl.Subject)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"rides": rides,
	})
}

// --- Handler: GET /rides/stats ---

func (handler *PassengerHTTPHandler) handleRideStats(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	stats, err := handler.svc.RideStats(ctxWithTimeout, cl.Subject)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, stats)
}
