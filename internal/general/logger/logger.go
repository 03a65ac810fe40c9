// Package logger emits single-line JSON logs to stdout, one entry per call.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// ErrorObject is attached only to error-level entries.
type ErrorObject struct {
	Msg   string `json:"msg"`
	Stack string `json:"stack"`
}

// LogEntry is the wire format of a single log line.
type LogEntry struct {
	Timestamp string       `json:"timestamp"`            // ISO 8601
	Level     string       `json:"level"`                // DEBUG | INFO | ERROR
	Service   string       `json:"service"`              // e.g. passenger-service
	Action    string       `json:"action"`               // event name, e.g. ride_created
	Message   string       `json:"message"`              // human-readable description
	Hostname  string       `json:"hostname"`             // service hostname
	RequestID string       `json:"request_id,omitempty"` // correlation ID for tracing
	RideID    string       `json:"ride_id,omitempty"`    // ride identifier (when applicable)
	Details   any          `json:"details,omitempty"`    // extra fields (map or struct)
	Error     *ErrorObject `json:"error,omitempty"`
}

// Logger writes structured entries for one named service.
type Logger struct {
	service  string
	hostname string
	mu       sync.Mutex
}

// New creates a structured logger for the given service.
func New(service string) *Logger {
	hn, err := os.Hostname()
	if err != nil || strings.TrimSpace(hn) == "" {
		hn = "unknown-hostname"
	}
	if strings.TrimSpace(service) == "" {
		service = "unknown-service"
	}
	return &Logger{service: service, hostname: hn}
}

// emit marshals and prints a single JSON line to stdout.
func (l *Logger) emit(e LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := json.Marshal(e)
	if err == nil {
		fmt.Println(string(b))
		return
	}

	// retry once without Details (common source of marshal errors)
	e.Details = nil
	if b, err2 := json.Marshal(e); err2 == nil {
		fmt.Println(string(b))
		return
	}

	fmt.Fprintf(os.Stderr, "log marshal failed: %v\n", err)
}

// Debug writes a DEBUG line with optional details.
func (l *Logger) Debug(ctx context.Context, action, msg string, details any) {
	l.emit(l.entry(ctx, "DEBUG", action, msg, details, nil))
}

// Info writes an INFO line with optional details.
func (l *Logger) Info(ctx context.Context, action, msg string, details any) {
	l.emit(l.entry(ctx, "INFO", action, msg, details, nil))
}

// Error writes an ERROR line and attaches the error with a stack trace.
func (l *Logger) Error(ctx context.Context, action, msg string, err error, details any) {
	if err == nil {
		err = fmt.Errorf("unknown error")
	}
	l.emit(l.entry(ctx, "ERROR", action, msg, details, &ErrorObject{
		Msg:   strings.TrimSpace(err.Error()),
		Stack: string(debug.Stack()),
	}))
}

func (l *Logger) entry(ctx context.Context, level, action, msg string, details any, errObj *ErrorObject) LogEntry {
	action = strings.TrimSpace(action)
	if action == "" {
		action = "unspecified"
	}
	return LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Service:   l.service,
		Action:    action,
		Message:   strings.TrimSpace(msg),
		Hostname:  l.hostname,
		RequestID: requestID(ctx),
		RideID:    rideID(ctx),
		Details:   details,
		Error:     errObj,
	}
}

// ------------ Context helpers -------------

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "charide_request_id"
	ctxKeyRideID    ctxKey = "charide_ride_id"
)

// WithRequestID returns a new context carrying request_id.
func (l *Logger) WithRequestID(ctx context.Context, reqID string) context.Context {
	if strings.TrimSpace(reqID) == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyRequestID, reqID)
}

// WithRideID returns a new context carrying ride_id.
func (l *Logger) WithRideID(ctx context.Context, rideID string) context.Context {
	if strings.TrimSpace(rideID) == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyRideID, rideID)
}

func requestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return s
	}
	return ""
}

func rideID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(ctxKeyRideID).(string); ok {
		return s
	}
	return ""
}
