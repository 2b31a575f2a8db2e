package course

import "errors"

var (
	ErrInvalidIdx    = errors.New("invalid course id")
	ErrNotFound      = errors.New("course not found")
	ErrGroupNotFound = errors.New("group not found")
)
