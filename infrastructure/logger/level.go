package logger

import "strings"

// Level gates the messages a logger emits. Messages sent below the configured
// level are dropped before they are formatted.
type Level uint32

// Level constants, in ascending severity order.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelTags are the three-letter tags prefixed to log lines, indexed by level.
var levelTags = [...]string{
	LevelTrace:    "TRC",
	LevelDebug:    "DBG",
	LevelInfo:     "INF",
	LevelWarn:     "WRN",
	LevelError:    "ERR",
	LevelCritical: "CRT",
	LevelOff:      "OFF",
}

var levelNames = map[string]Level{
	"trace":    LevelTrace,
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warn":     LevelWarn,
	"error":    LevelError,
	"critical": LevelCritical,
	"off":      LevelOff,
}

// LevelFromString parses a level from its lowercase name or its line tag.
// When s names no known level, LevelInfo and false are returned.
func LevelFromString(s string) (Level, bool) {
	s = strings.ToLower(s)
	if level, ok := levelNames[s]; ok {
		return level, true
	}
	for level, tag := range levelTags {
		if s == strings.ToLower(tag) {
			return Level(level), true
		}
	}
	return LevelInfo, false
}

// SupportedLevels returns the parseable level names in ascending severity
// order, for use in usage and error messages.
func SupportedLevels() []string {
	return []string{"trace", "debug", "info", "warn", "error", "critical", "off"}
}

// String returns the tag written to log lines at this level, or "OFF" for
// any level that produces no output.
func (l Level) String() string {
	if int(l) >= len(levelTags) {
		return "OFF"
	}
	return levelTags[l]
}
