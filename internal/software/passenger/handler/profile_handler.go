package handler

import (
	"context"
	"net/http"

	"charide/internal/general/httpx"
	"charide/internal/general/jwt"
	"charide/internal/ports"
)

// --- Handler: GET /profile ---

func (handler *PassengerHTTPHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	profile, err := handler.svc.GetProfile(ctxWithTimeout, cl.Subject)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, profile)
}

// --- Handler: PUT /profile ---

func (handler *PassengerHTTPHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	var body struct {
		FullName             *string `json:"full_name"`
		Phone                *string `json:"phone"`
		PaymentMethod        *string `json:"payment_method"`
		ProfilePictureURL    *string `json:"profile_picture_url"`
		NotificationsEnabled *bool   `json:"notifications_enabled"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	profile, err := handler.svc.UpdateProfile(ctxWithTimeout, cl.Subject, ports.UpdateProfileInput{
		FullName:             body.FullName,
		Phone:                body.Phone,
		PaymentMethod:        body.PaymentMethod,
		ProfilePictureURL:    body.ProfilePictureURL,
		NotificationsEnabled: body.NotificationsEnabled,
	})
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, profile)
}

// --- Handler: DELETE /profile ---

func (handler *PassengerHTTPHandler) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	if err := handler.svc.DeleteProfile(ctxWithTimeout, cl.Subject); err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"deleted": true,
	})
}

// --- Handler: GET /drivers/nearby ---

func (handler *PassengerHTTPHandler) handleNearbyDrivers(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	drivers, err := handler.svc.NearbyDrivers(ctxWithTimeout)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"drivers": drivers,
	})
}
