// Package handler adapts HTTP requests to the passenger portal service.
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

// PassengerHTTPHandler adapts HTTP requests to the PassengerService.
type PassengerHTTPHandler struct {
	svc    ports.PassengerService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewPassengerHTTPHandler wires an HTTP handler around the PassengerService.
func NewPassengerHTTPHandler(svc ports.PassengerService, logger *logger.Logger, auth *jwt.Manager) *PassengerHTTPHandler {
	return &PassengerHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts the passenger endpoints on the provided mux.
func (handler *PassengerHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	guard := jwt.AuthMiddlewareFunc(handler.auth, user.RolePassenger)

	mux.HandleFunc("GET /health", handler.handleHealth)

	mux.HandleFunc("GET /profile", guard(handler.handleGetProfile))
	mux.HandleFunc("PUT /profile", guard(handler.handleUpdateProfile))
	mux.HandleFunc("DELETE /profile", guard(handler.handleDeleteProfile))

	mux.HandleFunc("GET /drivers/nearby", guard(handler.handleNearbyDrivers))

	mux.HandleFunc("POST /rides", guard(handler.handleCreateRide))
	mux.HandleFunc("PUT /rides/{id}/assign", guard(handler.handleAssignDriver))
	mux.HandleFunc("PUT /rides/{id}/status", guard(handler.handleUpdateRideStatus))
	mux.HandleFunc("GET /rides/history", guard(handler.handleRideHistory))
	mux.HandleFunc("GET /rides/recent", guard(handler.handleRecentRides))
	mux.HandleFunc("GET /rides/stats", guard(handler.handleRideStats))
}
