package handler

import (
	"context"
	"net/http"

	"charide/internal/general/httpx"
)

// --- Handler: GET /admin/users ---

func (handler *AdminHTTPHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	q := r.URL.Query()
	users, err := handler.svc.ListUsers(ctxWithTimeout, q.Get("status"), q.Get("role"))
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"users": users,
	})
}

// --- Handler: PUT /admin/users/{id}/status ---

func (handler *AdminHTTPHandler) handleSetUserStatus(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	userID := r.PathValue("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	profile, err := handler.svc.SetUserStatus(ctxWithTimeout, userID, body.Status)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, profile)
}

// --- Handler: GET /admin/drivers ---

func (handler *AdminHTTPHandler) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	drivers, err := handler.svc.ListDrivers(ctxWithTimeout)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"drivers": drivers,
	})
}

// --- Handler: PUT /admin/drivers/{id}/status ---

func (handler *AdminHTTPHandler) handleSetDriverStatus(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	driverID := r.PathValue("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	profile, err := handler.svc.SetDriverStatus(ctxWithTimeout, driverID, body.Status)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, profile)
}

// --- Handler: GET /admin/rides ---

func (handler *AdminHTTPHandler) handleListRides(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	rides, err := handler.svc.ListRides(ctxWithTimeout, r.URL.Query().Get("status"))
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"rides": rides,
	})
}

// --- Handler: PUT /admin/rides/{id}/status ---

func (handler *AdminHTTPHandler) handleForceRideStatus(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)
	rideID := r.PathValue("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	view, err := handler.svc.ForceRideStatus(ctxWithTimeout, rideID, body.Status)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, view)
}

// --- Handler: GET /admin/stats ---

func (handler *AdminHTTPHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	stats, err := handler.svc.Stats(ctxWithTimeout)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, stats)
}

// --- Handler: GET /admin/messages ---

func (handler *AdminHTTPHandler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	messages, err := handler.svc.ListMessages(ctxWithTimeout)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, map[string]any{
		"messages": messages,
	})
}
