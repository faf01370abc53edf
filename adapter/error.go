package adapter

import "errors"

var (
	ErrNotFound     = errors.New("cstruct: record not found")
	ErrFailedLock   = errors.New("cstruct: failed lock")
	ErrFailedUnlock = errors.New("cstruct: failed unlock")
)
