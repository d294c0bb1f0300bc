package types

import "time"

// Level classifies a log entry
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelSuccess Level = "SUCCESS"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// ParseLevel maps a level tag from the log file to a known Level
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelInfo, LevelSuccess, LevelWarning, LevelError:
		return Level(s), true
	}
	return "", false
}

// LogEntry represents a single line of the tool's log file
type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Message   string
}
