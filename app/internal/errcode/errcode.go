// Package errcode defines the error taxonomy surfaced over HTTP. Each
// class maps to one status code; anything unclassified reports as an
// internal failure.
package errcode

import (
	"net/http"

	"github.com/zeebo/errs"
)

var (
	ErrUnauthorized  = errs.Class("unauthorized")
	ErrForbidden     = errs.Class("forbidden")
	ErrNotFound      = errs.Class("not found")
	ErrConflict      = errs.Class("conflict")
	ErrInvalidParams = errs.Class("invalid params")
)

// HTTPStatus maps err to the response status for its class.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case ErrUnauthorized.Has(err):
		return http.StatusUnauthorized
	case ErrForbidden.Has(err):
		return http.StatusForbidden
	case ErrNotFound.Has(err):
		return http.StatusNotFound
	case ErrConflict.Has(err):
		return http.StatusConflict
	case ErrInvalidParams.Has(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
