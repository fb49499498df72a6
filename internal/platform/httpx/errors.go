package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors wrapped by domain error values so every handler shares
// one status mapping.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusOf returns the HTTP status RespondError writes for err.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps a domain error onto the failure envelope. Duplicate
// keys surface as 400, not 409. Unrecognized errors become an opaque 500.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		Fail(w, status, "internal error")
		return
	}
	Fail(w, status, err.Error())
}
