package store

import "fmt"

const (
	CategoryKey    = "key"
	CategoryGet    = "get"
	CategorySet    = "set"
	CategoryDelete = "delete"
	CategoryLock   = "lock"
	CategoryDecode = "decode"
	CategoryEncode = "encode"
	CategoryUpdate = "update"
)

type storeError struct {
	category    string
	message     string
	previousErr error
}

func newError(category string, message string, previousErr error) *storeError {
	return &storeError{
		category:    category,
		message:     message,
		previousErr: previousErr,
	}
}

func (e storeError) Error() string {
	if e.previousErr == nil {
		return e.message
	}
	return fmt.Sprintf("%s (%s)", e.message, e.previousErr.Error())
}

func (e storeError) Unwrap() error {
	return e.previousErr
}

// Category names the step of the store operation that failed.
func (e storeError) Category() string {
	return e.category
}
