package userinfo

import "errors"

var (
	ErrInvalidIdx    = errors.New("invalid user id")
	ErrNotFound      = errors.New("user not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrVisitor       = errors.New("the visitor account cannot modify its profile")
	ErrNoFile        = errors.New("an image file is required")
)
