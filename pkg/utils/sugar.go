package utils

import "go.uber.org/zap"

// Sugar adapts a zap logger to the keysAndValues logging interface the
// application layer depends on.
type Sugar struct {
	s *zap.SugaredLogger
}

// NewSugar wraps a zap logger
func NewSugar(logger *zap.Logger) *Sugar {
	return &Sugar{s: logger.Sugar()}
}

// Info logs at info level with alternating keys and values
func (l *Sugar) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

// Error logs at error level with alternating keys and values
func (l *Sugar) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
