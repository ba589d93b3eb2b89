package logger

// Leveled adapts a Logger to the key/value logging interface expected by
// HTTP client libraries such as go-retryablehttp.
type Leveled struct {
	l *Logger
}

// NewLeveled wraps l. A nil l wraps the default logger.
func NewLeveled(l *Logger) Leveled {
	if l == nil {
		l = Default
	}
	return Leveled{l: l}
}

func (a Leveled) Debug(msg string, keysAndValues ...interface{}) {
	a.l.fields(LevelDebug, msg, keysAndValues...)
}

func (a Leveled) Info(msg string, keysAndValues ...interface{}) {
	a.l.fields(LevelInfo, msg, keysAndValues...)
}

func (a Leveled) Warn(msg string, keysAndValues ...interface{}) {
	a.l.fields(LevelWarn, msg, keysAndValues...)
}

func (a Leveled) Error(msg string, keysAndValues ...interface{}) {
	a.l.fields(LevelError, msg, keysAndValues...)
}
