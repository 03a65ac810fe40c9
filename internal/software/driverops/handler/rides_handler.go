package handler

import (
	"context"
	"net/http"

	"charide/internal/general/httpx"
	"charide/internal/general/jwt"
	"charide/internal/ports"
)

// --- Handler: GET /driver/rides ---

func (handler *DriverHTTPHandler) handleMyRides(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	rides, err := handler.svc.MyRides(ctxWithTimeout, cl.Subject, r.URL.Query().Get("status"))
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"rides": rides,
	})
}

// --- Handler: GET /driver/requests ---

func (handler *DriverHTTPHandler) handleOpenRequests(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	requests, err := handler.svc.OpenRequests(ctxWithTimeout, cl.Subject)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"requests": requests,
	})
}

// --- Handler: PUT /driver/rides/{id}/accept ---

func (handler *DriverHTTPHandler) handleAcceptRide(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)
	rideID := r.PathValue("id")

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	view, err := handler.svc.AcceptRide(ctxWithTimeout, cl.Subject, rideID)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, view)
}

// --- Handler: PUT /driver/rides/{id}/status ---

func (handler *DriverHTTPHandler) handleUpdateRideStatus(w http.ResponseWriter, r *http.Request) {
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
