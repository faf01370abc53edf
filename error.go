package cstruct

import (
	"errors"

	"github.com/pwnedgod/cstruct/errs"
)

type Error = errs.Error

var (
	ErrSchema = errs.ErrSchema
	ErrSize   = errs.ErrSize
	ErrBounds = errs.ErrBounds
	ErrValue  = errs.ErrValue
)

// IsSchemaError reports an unknown or malformed token or Model node.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsSizeError reports a static bound overflow, a count not fitting its kind
// or a zero-length byte region.
func IsSizeError(err error) bool {
	return errors.Is(err, ErrSize)
}

// IsBoundsError reports an access past the extent of a buffer.
func IsBoundsError(err error) bool {
	return errors.Is(err, ErrBounds)
}

func IsValueError(err error) bool {
	return errors.Is(err, ErrValue)
}
