package handler

import (
	"context"
	"net/http"

	"charide/internal/general/httpx"
	"charide/internal/general/jwt"
	"charide/internal/ports"
)

// --- Handler: GET /profile ---

func (handler *DriverHTTPHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
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

func (handler *DriverHTTPHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
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

// --- Handler: PUT /driver/status ---

func (handler *DriverHTTPHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	var body struct {
		IsOnline  *bool    `json:"is_online"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	res, err := handler.svc.SetStatus(ctxWithTimeout, cl.Subject, ports.DriverStatusInput{
		IsOnline:  body.IsOnline,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	})
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, res)
}

// --- Handler: POST /messages ---

func (handler *DriverHTTPHandler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	cl := jwt.RequireClaims(r)

	var body struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	msg, err := handler.svc.SendMessage(ctxWithTimeout, cl.Subject, body.Subject, body.Message)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusCreated, msg)
}
