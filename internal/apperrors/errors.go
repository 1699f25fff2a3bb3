package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoSubject    = errors.New("no subject found")
	ErrUpstream     = errors.New("upstream service failed")
)
