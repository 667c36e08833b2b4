package services

import "errors"

// Standard errors returned by the service layer.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrUnknownStep = errors.New("unknown wizard step")
	ErrInvalidName = errors.New("invalid configuration name")
)
