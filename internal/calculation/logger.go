package calculation

import "github.com/sirupsen/logrus"

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// LogrusLogger routes engine logs to a logrus entry.
type LogrusLogger struct {
	Entry *logrus.Entry
}

// NewLogrusLogger wraps l, tagging every line with component=calculation.
func NewLogrusLogger(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{Entry: l.WithField("component", "calculation")}
}

func (l LogrusLogger) Debugf(format string, args ...any) { l.Entry.Debugf(format, args...) }
func (l LogrusLogger) Infof(format string, args ...any)  { l.Entry.Infof(format, args...) }
func (l LogrusLogger) Warnf(format string, args ...any)  { l.Entry.Warnf(format, args...) }
func (l LogrusLogger) Errorf(format string, args ...any) { l.Entry.Errorf(format, args...) }
