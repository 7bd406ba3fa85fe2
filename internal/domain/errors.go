package domain

import "errors"

// Sentinel errors for the service layer. Transports map these to their own
// status codes with errors.Is; services wrap them with context via fmt.Errorf.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal error")
)
