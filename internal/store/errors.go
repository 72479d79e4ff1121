package store

import "errors"

// Sentinel errors shared by both storage backends.
var (
	ErrItemNotFound    = errors.New("registry item not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrTipNotFound     = errors.New("tip not found")
	ErrUpdateNotFound  = errors.New("update not found")
	ErrCommentNotFound = errors.New("comment not found")
)
