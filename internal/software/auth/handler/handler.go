// Package handler adapts the auth endpoints shared by all three portals.
package handler

import (
	"context"
	"net/http"
	"time"

	"charide/internal/domain/user"
	"charide/internal/general/httpx"
	"charide/internal/general/jwt"
	"charide/internal/general/logger"
	"charide/internal/ports"
)

const svcTimeout = 5 * time.Second

// AuthHTTPHandler adapts HTTP requests to the AuthService.
type AuthHTTPHandler struct {
	svc    ports.AuthService
	logger *logger.Logger
	auth   *jwt.Manager
	role   user.Role
}

// NewAuthHTTPHandler wires an HTTP handler around the AuthService for one
// portal role.
func NewAuthHTTPHandler(svc ports.AuthService, logger *logger.Logger, auth *jwt.Manager, role user.Role) *AuthHTTPHandler {
	return &AuthHTTPHandler{svc: svc, logger: logger, auth: auth, role: role}
}

// RegisterRoutes mounts the auth endpoints on the provided mux.
func (handler *AuthHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/signup", handler.handleSignup)
	mux.HandleFunc("POST /auth/login", handler.handleLogin)
	mux.HandleFunc("GET /auth/me",
		jwt.AuthMiddlewareFunc(handler.auth, handler.role)(handler.handleMe),
	)
}

// --- Handler: POST /auth/signup ---

func (handler *AuthHTTPHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	var body struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		FullName     string `json:"full_name"`
		Phone        string `json:"phone"`
		VehicleType  string `json:"vehicle_type"`
		VehiclePlate string `json:"vehicle_plate"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	res, err := handler.svc.Signup(ctxWithTimeout, ports.SignupInput{
		Email:        body.Email,
		Password:     body.Password,
		FullName:     body.FullName,
		Phone:        body.Phone,
		VehicleType:  body.VehicleType,
		VehiclePlate: body.VehiclePlate,
	})
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusCreated, res)
}

// --- Handler: POST /auth/login ---

func (handler *AuthHTTPHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.Error(ctx, handler.logger, w, err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	res, err := handler.svc.Login(ctxWithTimeout, body.Email, body.Password)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, res)
}

// --- Handler: GET /auth/me ---

func (handler *AuthHTTPHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.WithReqID(handler.logger, r)

	cl := jwt.RequireClaims(r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, svcTimeout)
	defer cancel()

	profile, err := handler.svc.Me(ctxWithTimeout, cl.Subject)
	if err != nil {
		httpx.Error(ctxWithTimeout, handler.logger, w, err)
		return
	}

	httpx.RespondJSON(ctxWithTimeout, handler.logger, w, http.StatusOK, profile)
}
