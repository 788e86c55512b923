package types

import "errors"

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Association operation errors.
var (
	ErrNotFound     = errors.New("association not found")
	ErrInvalidKey   = errors.New("invalid association key")
	ErrInvalidData  = errors.New("invalid association data")
	ErrInvalidTable = errors.New("table name must not be empty")
)
