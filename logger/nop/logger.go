package nop

import "github.com/pwnedgod/cstruct/logger"

type nopLogger struct {
}

func NewLogger() logger.Logger {
	return nopLogger{}
}

func (nopLogger) Info(...any)  {}
func (nopLogger) Debug(...any) {}
func (nopLogger) Error(...any) {}
