package paper

import "errors"

var (
	ErrInvalidIdx = errors.New("invalid record id")
	ErrNotFound   = errors.New("record not found")
	ErrEmptyName  = errors.New("record name is required")
	ErrNotCreator = errors.New("not the record creator")
)
