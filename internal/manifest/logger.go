package manifest

// Logger receives operator-facing diagnostics from the loader, such
// as skipped sources. Implementations must be safe for concurrent
// use. Commands install a stderr logger; library callers that pass
// nil get a no-op one.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

func orNopLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
