package grid

import "errors"

var (
	ErrEmptyName         = errors.New("axis name is empty")
	ErrDuplicateTarget   = errors.New("target already exists")
	ErrDuplicateField    = errors.New("field already exists")
	ErrTargetNotFound    = errors.New("target not found")
	ErrFieldNotFound     = errors.New("field not found")
	ErrInvalidTransition = errors.New("invalid cell transition")
	ErrStaleAttempt      = errors.New("attempt is no longer current")
)
