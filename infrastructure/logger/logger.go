package logger

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// backendLog is the logging backend used to create all subsystem loggers.
var backendLog = NewBackend()

var (
	subsystemLoggers      = make(map[string]*Logger)
	subsystemLoggersMutex sync.Mutex
)

// RegisterSubSystem returns the logger for the given subsystem, creating it
// on the backend if this is the first time the subsystem is seen.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	log, ok := subsystemLoggers[subsystem]
	if !ok {
		log = backendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = log
	}
	return log
}

// BackendLog returns the backend all subsystem loggers write into
func BackendLog() *Backend {
	return backendLog
}

// SetLogLevels sets the logging level for all of the registered subsystems
func SetLogLevels(level Level) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	for _, log := range subsystemLoggers {
		log.SetLevel(level)
	}
}

// SetLogLevel sets the logging level of the given subsystem. Returns false if
// the subsystem was never registered.
func SetLogLevel(subsystem string, level Level) bool {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	log, ok := subsystemLoggers[subsystem]
	if !ok {
		return false
	}
	log.SetLevel(level)
	return true
}

// Logger is a subsystem logger. All messages are tagged with the subsystem
// and dispatched through the shared backend.
type Logger struct {
	level     Level // atomic
	tag       string
	backend   *Backend
	writeChan chan<- logEntry
}

// Level returns the current logging level of this logger
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.level)))
}

// SetLevel changes the logging level of this logger
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.level), uint32(level))
}

// Backend returns the backend this logger writes into
func (l *Logger) Backend() *Backend {
	return l.backend
}

// Tracef formats message according to format specifier and writes to the log
// with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.printf(LevelTrace, format, args...)
}

// Debugf formats message according to format specifier and writes to the log
// with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

// Infof formats message according to format specifier and writes to the log
// with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Warnf formats message according to format specifier and writes to the log
// with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

// Errorf formats message according to format specifier and writes to the log
// with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

// Criticalf formats message according to format specifier and writes to the
// log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.printf(LevelCritical, format, args...)
}

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}
	// Messages logged before the backend runs are discarded rather than
	// blocking the caller on the unbuffered write channel.
	if !l.backend.IsRunning() {
		return
	}
	l.writeChan <- logEntry{
		log:   l.formatEntry(level, fmt.Sprintf(format, args...)),
		level: level,
	}
}

func (l *Logger) formatEntry(level Level, message string) []byte {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	callsite := l.callsite()
	if callsite != "" {
		return []byte(fmt.Sprintf("%s [%s] %s %s: %s\n", timestamp, level, l.tag, callsite, message))
	}
	return []byte(fmt.Sprintf("%s [%s] %s: %s\n", timestamp, level, l.tag, message))
}

// callsite returns the file and line of the logging call, formatted per the
// backend's flags, or an empty string if callsite logging is disabled.
func (l *Logger) callsite() string {
	if l.backend.flag&(LogFlagShortFile|LogFlagLongFile) == 0 {
		return ""
	}
	// Skip runtime.Callers, callsite, formatEntry's caller and the
	// exported log method.
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return ""
	}
	if l.backend.flag&LogFlagShortFile != 0 {
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				file = file[i+1:]
				break
			}
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}
