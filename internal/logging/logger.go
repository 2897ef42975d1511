// Package logging is the structured logging interface shared by the parser,
// the processor and the commands. Production code logs through logrus;
// tests record entries with MockLogger.
package logging

// Logger is a leveled, structured logger. The With* methods return a child
// logger carrying extra context and leave the receiver unchanged.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is one key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}
