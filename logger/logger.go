// Package logger is the logging seam of the codec. Drivers and the record
// store only log through this interface.
package logger

type Logger interface {
	Info(...any)
	Debug(...any)
	Error(...any)
}
