package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductConflict = errors.New("product id already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrHomeNotFound    = errors.New("home not found")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
	ErrValidation      = errors.New("validation failed")
)
