package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stratusctl/stratus/pkg/types"
)

func levelStyle(level types.Level) lipgloss.Style {
	switch level {
	case types.LevelSuccess:
		return RunningStyle
	case types.LevelWarning:
		return PendingStyle
	case types.LevelError:
		return ErrorStyle
	default:
		return IPStyle
	}
}

// RenderLogEntry renders one parsed log line with its level colorized
func RenderLogEntry(e types.LogEntry) string {
	ts := e.Timestamp.Format("2006-01-02 15:04:05")
	tag := fmt.Sprintf("[%s]", e.Level)
	return fmt.Sprintf("%s %s %s",
		MutedStyle.Render("["+ts+"]"),
		levelStyle(e.Level).Render(padRight(tag, 9)),
		e.Message)
}

// RenderLogEntries renders parsed log lines, oldest first
func RenderLogEntries(entries []types.LogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(RenderLogEntry(e))
		sb.WriteString("\n")
	}
	return sb.String()
}
