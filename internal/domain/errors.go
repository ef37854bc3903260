package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound            = errors.New("domain: not found")
	ErrConflict            = errors.New("domain: conflict")
	ErrUnauthorized        = errors.New("domain: unauthorized")
	ErrInvalidSessionState = errors.New("domain: invalid session state")
	ErrInterruptPending    = errors.New("domain: interrupt already pending")
	ErrNoInterruptPending  = errors.New("domain: no interrupt pending")
	ErrInvalidDecision     = errors.New("domain: invalid resume decision")
)
