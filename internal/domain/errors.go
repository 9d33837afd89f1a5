package domain

import "errors"

var (
	ErrNotFound     = errors.New("hotel api: not found")
	ErrUnauthorized = errors.New("hotel api: unauthorized")
	ErrForbidden    = errors.New("hotel api: forbidden")

	ErrReferenceData = errors.New("reference data: load failed")
)
