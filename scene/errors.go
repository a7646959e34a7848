package scene

import "errors"

var (
	ErrAlreadyCommitted       = errors.New("scene: scene has already been committed")
	ErrNotCommitted           = errors.New("scene: scene has not been committed")
	ErrClassAlreadyRegistered = errors.New("scene: primitive class already registered")
	ErrLengthMismatch         = errors.New("scene: centers and radii lengths differ")
	ErrEmptyInput             = errors.New("scene: no primitives supplied")
)
