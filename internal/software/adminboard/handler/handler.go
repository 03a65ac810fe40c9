// Package handler adapts HTTP requests to the admin portal service.
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

// AdminHTTPHandler adapts HTTP requests to the AdminService.
type AdminHTTPHandler struct {
	svc    ports.AdminService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewAdminHTTPHandler wires an HTTP handler around the AdminService.
func NewAdminHTTPHandler(svc ports.AdminService, logger *logger.Logger, auth *jwt.Manager) *AdminHTTPHandler {
	return &AdminHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts the admin endpoints on the provided mux.
func (handler *AdminHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	guard := jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin)

	mux.HandleFunc("GET /health", handler.handleHealth)

	mux.HandleFunc("GET /admin/users", guard(handler.handleListUsers))
	mux.HandleFunc("PUT /admin/users/{id}/status", guard(handler.handleSetUserStatus))
	mux.HandleFunc("GET /admin/drivers", guard(handler.handleListDrivers))
	mux.HandleFunc("PUT /admin/drivers/{id}/status", guard(handler.handleSetDriverStatus))
	mux.HandleFunc("GET /admin/rides", guard(handler.handleListRides))
	mux.HandleFunc("PUT /admin/rides/{id}/status", guard(handler.handleForceRideStatus))
	mux.HandleFunc("GET /admin/stats", guard(handler.handleStats))
	mux.HandleFunc("GET /admin/messages", guard(handler.handleListMessages))
}
