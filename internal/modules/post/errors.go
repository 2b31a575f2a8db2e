package post

import "errors"

var (
	ErrInvalidIdx         = errors.New("invalid post id")
	ErrNotFound           = errors.New("post not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrEmptyPost          = errors.New("a post needs content or at least one image")
	ErrNotCreator         = errors.New("only the creator can modify this post")
	ErrInvalidFingerprint = errors.New("invalid comment fingerprint")
)
