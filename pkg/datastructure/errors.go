package datastructure

import "errors"

var (
	ErrVertexNotFound = errors.New("vertex not found")
	ErrInvalidSplice  = errors.New("invalid splice")
)
