// Package handler adapts HTTP requests to the driver portal service.
package handler

import (
	"net/http"
	"time"

	"charide/internal/domain/user"
	"charide/internal/general/jwt"
	"charide/internal/general/logger"
	"charide/internal/ports"
)

const svcTimeout = 5 * time.Second

// DriverHTTPHandler adapts HTTP requests to the DriverService.
type DriverHTTPHandler struct {
	svc    ports.DriverService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewDriverHTTPHandler wires an HTTP handler around the DriverService.
func NewDriverHTTPHandler(svc ports.DriverService, logger *logger.Logger, auth *jwt.Manager) *DriverHTTPHandler {
	return &DriverHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts the driver endpoints on the provided mux.
func (handler *DriverHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	guard := jwt.AuthMiddlewareFunc(handler.auth, user.RoleDriver)

	mux.HandleFunc("GET /health", handler.handleHealth)

	mux.HandleFunc("GET /profile", guard(handler.handleGetProfile))
	mux.HandleFunc("PUT /profile", guard(handler.handleUpdateProfile))

	mux.HandleFunc("PUT /driver/status", guard(handler.handleSetStatus))
	mux.HandleFunc("GET /driver/rides", guard(handler.handleMyRides))
	mux.HandleFunc("GET /driver/requests", guard(handler.handleOpenRequests))
	mux.HandleFunc("PUT /driver/rides/{id}/accept", guard(handler.handleAcceptRide))
	mux.HandleFunc("PUT /driver/rides/{id}/status", guard(handler.handleUpdateRideStatus))

	mux.HandleFunc("POST /messages", guard(handler.handleSendMessage))
}
