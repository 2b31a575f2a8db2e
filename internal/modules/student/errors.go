package student

import "errors"

var (
	ErrInvalidIdx    = errors.New("invalid student id")
	ErrNotFound      = errors.New("student not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrDuplicate     = errors.New("account already exists")
)
