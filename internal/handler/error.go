package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freshlaundry/website/internal/domain"
)

// ErrorResponse writes an error response to the client. It maps domain
// error codes to HTTP status codes; the message shown is the domain error's
// message, never the wrapped internal error.
func ErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	op := domain.ErrorOp(err)

	status := ErrorCodeToHTTPStatus(code)

	logError(logger, r, err, code, op, status)

	http.Error(w, message, status)
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests // 429
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// ValidationErrorResponse writes field-level validation errors. The modal
// endpoints re-render their step with inline errors instead of calling this;
// it covers plain form posts like the contact form fallback path.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		ErrorResponse(w, r, logger, err)
		return
	}

	logger.Info("validation error",
		"op", ve.Op,
		"field_count", len(ve.Fields),
		"path", r.URL.Path,
	)

	http.Error(w, "Validation failed. Please check your input and try again.", http.StatusBadRequest)
}

// NotFoundResponse writes the 404 for unmatched routes.
func NotFoundResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	err := &domain.Error{
		Code:    domain.ENOTFOUND,
		Message: "The page you requested does not exist.",
	}
	ErrorResponse(w, r, logger, err)
}

// InternalErrorResponse is a convenience wrapper for 500 errors.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	wrapped := domain.Internal(err, "", "Something went wrong. Please try again.")
	ErrorResponse(w, r, logger, wrapped)
}

// logError logs an error with request context at a level matching severity.
func logError(logger *slog.Logger, r *http.Request, err error, code, op string, status int) {
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
	}
	if op != "" {
		attrs = append(attrs, "op", op)
	}

	if status >= 500 {
		logger.Error("request failed", attrs...)
		return
	}
	logger.Warn("request rejected", attrs...)
}
