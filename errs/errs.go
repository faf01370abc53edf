// Package errs holds the error taxonomy shared by every layer of the codec.
//
// All categories are fatal for the call that raised them. Callers match a
// category with errors.Is against the package sentinels.
package errs

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

type Category string

const (
	CategorySchema Category = "schema"
	CategorySize   Category = "size"
	CategoryBounds Category = "bounds"
	CategoryValue  Category = "value"
)

var (
	ErrSchema = stderrors.New("cstruct: schema error")
	ErrSize   = stderrors.New("cstruct: size error")
	ErrBounds = stderrors.New("cstruct: bounds error")
	ErrValue  = stderrors.New("cstruct: value error")
)

type Error struct {
	category    Category
	path        string
	message     string
	previousErr error
}

func newError(category Category, path string, previousErr error, format string, args ...any) error {
	return errors.WithStack(&Error{
		category:    category,
		path:        path,
		message:     fmt.Sprintf(format, args...),
		previousErr: previousErr,
	})
}

// Schema reports an unknown or malformed type token or Model node.
func Schema(path string, format string, args ...any) error {
	return newError(CategorySchema, path, nil, format, args...)
}

// Size reports a static bound overflow or a zero-length byte region.
func Size(path string, format string, args ...any) error {
	return newError(CategorySize, path, nil, format, args...)
}

// Bounds reports an access past the extent of a buffer.
func Bounds(path string, format string, args ...any) error {
	return newError(CategoryBounds, path, nil, format, args...)
}

// Value reports a value that cannot feed the Model node it is bound to.
func Value(path string, format string, args ...any) error {
	return newError(CategoryValue, path, nil, format, args...)
}

// WrapValue is Value with an underlying cause, typically a transcoder failure.
func WrapValue(path string, previousErr error, format string, args ...any) error {
	return newError(CategoryValue, path, previousErr, format, args...)
}

func (e *Error) Error() string {
	msg := e.message
	if e.path != "" {
		msg = e.path + ": " + msg
	}
	msg = fmt.Sprintf("cstruct: %s error: %s", e.category, msg)
	if e.previousErr != nil {
		msg = fmt.Sprintf("%s (%s)", msg, e.previousErr.Error())
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.previousErr
}

func (e *Error) Is(target error) bool {
	return target == sentinel(e.category)
}

func (e *Error) Category() Category {
	return e.category
}

func (e *Error) Path() string {
	return e.path
}

// WithPath returns a copy of err located at path when err is an *Error
// without a path yet. Other errors are returned unchanged.
func WithPath(err error, path string) error {
	var e *Error
	if !stderrors.As(err, &e) || e.path != "" {
		return err
	}
	return newError(e.category, path, e.previousErr, "%s", e.message)
}

// CategoryOf returns the category of err, or "" for foreign errors.
func CategoryOf(err error) Category {
	var e *Error
	if stderrors.As(err, &e) {
		return e.category
	}
	return ""
}

func sentinel(c Category) error {
	switch c {
	case CategorySchema:
		return ErrSchema
	case CategorySize:
		return ErrSize
	case CategoryBounds:
		return ErrBounds
	case CategoryValue:
		return ErrValue
	default:
		return nil
	}
}
