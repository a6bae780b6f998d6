package api

import (
	"errors"
	"net/http"

	"github.com/thurmanmarka/horizon"
)

// ErrBadRequest marks a request the client must fix.
var ErrBadRequest = errors.New("bad request")

// statusFor maps an error to the HTTP status the API answers with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, horizon.ErrInvalidInput),
		errors.Is(err, horizon.ErrUnknownBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
