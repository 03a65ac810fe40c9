// Package httpx holds the HTTP plumbing shared by the portal handlers:
// request-ID propagation, strict JSON decoding and the error-to-status
// mapping.
package httpx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"charide/internal/general/errs"
	"charide/internal/general/logger"
)

// MaxBodyBytes caps request bodies; every portal payload is small JSON.
const MaxBodyBytes = 1 << 20 // 1 MiB

// WithReqID extracts or generates a request ID and adds it to the context.
func WithReqID(log *logger.Logger, r *http.Request) context.Context {
	reqID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
	if reqID == "" {
		reqID = randID()
	}
	return log.WithRequestID(r.Context(), reqID)
}

// RespondJSON encodes data and writes it with the given status. Encoding is
// buffered first so a marshal failure can still change the status line.
func RespondJSON(ctx context.Context, log *logger.Logger, w http.ResponseWriter, status int, data any) {
	buf := []byte("{}")
	if data != nil {
		var err error
		buf, err = json.Marshal(data)
		if err != nil {
			log.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// Error maps a taxonomy error to its HTTP status and writes a JSON error body.
// Messages of 5xx errors are not leaked to the client.
func Error(ctx context.Context, log *logger.Logger, w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)

	action := "request_failed"
	switch {
	case status >= 500:
		action = "http_internal_error"
	case status == http.StatusBadRequest:
		action = "validation_failed"
	}
	log.Error(ctx, action, "Request failed", err, map[string]any{"status": status})

	msg := err.Error()
	if status >= 500 {
		msg = "internal server error"
	}

	type errBody struct {
		Error string `json:"error"`
	}
	RespondJSON(ctx, log, w, status, errBody{Error: msg})
}

// DecodeJSON reads a bounded request body into dst with strict field checking.
// All failures come back as ErrValidation.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.Validationf("request body exceeds %d bytes", maxErr.Limit)
		}
		return errs.Validationf("invalid JSON body: %v", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errs.Validationf("request body must contain a single JSON object")
	}
	return nil
}

// WithConcurrencyLimit wraps an http.Handler with a semaphore-based limiter.
// It controls how many HTTP requests can be in-progress at the same time.
func WithConcurrencyLimit(n int, next http.Handler) http.Handler {
	if n <= 0 {
		return next
	}
	sem := make(chan struct{}, n)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}: // acquire
			defer func() { <-sem }() // release
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
			// client canceled or server is shutting down
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	})
}

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
