package bvh

import "errors"

var (
	ErrEmptyInput    = errors.New("bvh: cannot build over an empty primitive collection")
	ErrInvalidOption = errors.New("bvh: invalid build option")
	ErrInvalidRay    = errors.New("bvh: invalid ray definition")
)
