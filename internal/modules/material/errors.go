package material

import "errors"

var (
	ErrInvalidIdx     = errors.New("invalid id")
	ErrCourseNotFound = errors.New("course not found")
	ErrNotFound       = errors.New("material not found")
	ErrNoFile         = errors.New("no file uploaded")
)
