package logging

// NullLogger discards all output. Used when no log file is configured.
type NullLogger struct{}

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Debug does nothing
func (l *NullLogger) Debug(msg string, fields Fields) {}

// Info does nothing
func (l *NullLogger) Info(msg string, fields Fields) {}

// Warn does nothing
func (l *NullLogger) Warn(msg string, fields Fields) {}

// Error does nothing
func (l *NullLogger) Error(msg string, err error, fields Fields) {}

// Close does nothing
func (l *NullLogger) Close() error {
	return nil
}
