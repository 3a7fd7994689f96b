// File: flight-configuration/diagnostic.go
package configuration

import "fmt"

// Level classifies a diagnostic record.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}

// Record is one diagnostic event accumulated during a load.
type Record struct {
	Level   Level
	Message string
}

// Log is the append-only diagnostics sink for one load: file-loaded and
// file-not-found events at debug/info, unrecognized keys at warn, coercion
// failures at error. The embedding application drains it into its own
// logger after Load returns.
//
// A load is single-threaded, so Log carries no locking; if the embedder
// shares one Log across goroutines it must synchronize access itself.
type Log struct {
	records []Record
}

func (l *Log) logf(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.records = append(l.records, Record{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *Log) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Log) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Log) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Log) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// Records returns the accumulated records in append order.
func (l *Log) Records() []Record {
	if l == nil {
		return nil
	}
	return l.records
}

// Drain returns the accumulated records and resets the log.
func (l *Log) Drain() []Record {
	if l == nil {
		return nil
	}
	out := l.records
	l.records = nil
	return out
}
