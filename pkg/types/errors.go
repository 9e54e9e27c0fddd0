package types

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category is referenced by existing needs")

	ErrCategoryRequired = errors.New("categorySlug is required for question 1")
	ErrInvalidCategory  = errors.New("invalid categorySlug")
)
