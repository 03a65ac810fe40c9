package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"charide/internal/general/jwt"
	"charide/internal/general/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	h := NewDriverHTTPHandler(nil, logger.New("driver-test"), jwt.NewManager("health-test-secret", time.Hour))

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// no Authorization header: health stays reachable without a token
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
