// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/middleware"
	"go.uber.org/zap"
)

// body is the JSON shape of every error response.
type body struct {
	Error string `json:"error"`
}

// ErrorLogger writes classified errors as JSON and logs them.
// Internal errors are logged at error level and answered with a generic
// message; client errors are logged at debug level.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Write answers r with err.
func (e *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("kind", kind.String()),
		zap.Error(err),
	}
	if kind == apperr.Internal {
		e.Log.Error("request failed", fields...)
	} else {
		e.Log.Debug("request rejected", fields...)
	}
	jsonio.Write(w, kind.Status(), body{Error: apperr.Message(err)})
}

// NotFound answers unknown routes.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonio.Write(w, http.StatusNotFound, body{Error: "route not found"})
}

// MethodNotAllowed answers known routes called with the wrong method.
func (e *ErrorLogger) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonio.Write(w, http.StatusMethodNotAllowed, body{Error: "method not allowed"})
}
