package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/logirate/backend/internal/domain"
)

// respondError maps a service/repo error to an HTTP response.
// Sentinel errors from the domain package become 4xx responses with a
// human-readable message; anything else is a 500 with a generic body —
// internal error detail goes to the log, never to the client.
//
// Handlers that want a resource-specific 404 message (e.g. "vendor not
// found") check domain.ErrNotFound themselves before calling this.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, clientMessage(err))
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "you are not allowed to perform this action")
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicateReview):
		writeMessage(w, http.StatusConflict, "you have already reviewed this target")
	case errors.Is(err, domain.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, domain.ErrEmailTaken.Error())
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// notFound writes a 404 with a resource-specific message.
func notFound(w http.ResponseWriter, message string) {
	writeMessage(w, http.StatusNotFound, message)
}

// clientMessage extracts the human-readable part of a wrapped validation
// error, e.g. "service.ReviewService.Update: validation error: rating must
// be between 1 and 5" → "rating must be between 1 and 5".
func clientMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
