package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid account or password")
	ErrInactive           = errors.New("account is disabled")
)
