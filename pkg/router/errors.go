package router

import (
	"errors"

	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
)

var (
	ErrProfileUnsupported = errors.New("profile not supported by this graph")
	ErrNoRouteFound       = errors.New("no route found")
	ErrResolutionFailed   = errors.New("no traversable road within search radius")
	ErrVertexNotFound     = da.ErrVertexNotFound
	ErrInvalidSplice      = da.ErrInvalidSplice
)
