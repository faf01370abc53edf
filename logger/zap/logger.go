package zap

import (
	"github.com/pwnedgod/cstruct/logger"
	"go.uber.org/zap"
)

type zapLogger struct {
	s *zap.SugaredLogger
}

func NewLogger(l *zap.Logger) logger.Logger {
	return &zapLogger{s: l.Sugar()}
}

func (l zapLogger) Info(args ...any) {
	l.s.Info(args...)
}

func (l zapLogger) Debug(args ...any) {
	l.s.Debug(args...)
}

func (l zapLogger) Error(args ...any) {
	l.s.Error(args...)
}
