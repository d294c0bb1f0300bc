package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/stratusctl/stratus/pkg/types"
)

// Single-line box drawing set shared by every boxed view.
const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	lineH    = "─"
	lineV    = "│"
	teeL     = "├"
	teeR     = "┤"
	teeT     = "┬"
	teeB     = "┴"
	cross    = "┼"
)

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// 256-color styles shared across tables, pickers and the menu.
var (
	BorderStyle  = fg("240")
	HeaderStyle  = fg("252").Bold(true)
	IDStyle      = fg("214")
	NameStyle    = fg("81")
	IPStyle      = fg("252")
	TypeStyle    = fg("252")
	AZStyle      = fg("252")
	KeyStyle     = fg("81")
	SizeStyle    = fg("252")
	RunningStyle = fg("82")
	StoppedStyle = fg("245")
	PendingStyle = fg("214")
	ErrorStyle   = fg("196")
	MutedStyle   = fg("240")
	HintStyle    = fg("245")

	// Menu chrome
	ChoiceStyle = fg("214").Bold(true)
	PromptStyle = fg("81").Bold(true)
)

// padRight pads a string to the given display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

// padToWidth pads or truncates a full line to an exact display width
func padToWidth(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

// formatOptional substitutes a dash for values the API left empty
func formatOptional(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// stateIndicator returns the dot marker shown next to an instance state
func stateIndicator(state types.InstanceState) string {
	switch state {
	case types.StateRunning:
		return "●"
	case types.StatePending, types.StateStopping, types.StateShuttingDown:
		return "◐"
	default:
		return "○"
	}
}

// stateLabel is the indicator-plus-name text rendered in state cells
func stateLabel(state types.InstanceState) string {
	return stateIndicator(state) + " " + string(state)
}

func stateStyle(state types.InstanceState) lipgloss.Style {
	switch state {
	case types.StateRunning:
		return RunningStyle
	case types.StatePending, types.StateStopping, types.StateShuttingDown:
		return PendingStyle
	case types.StateTerminated:
		return ErrorStyle
	default:
		return StoppedStyle
	}
}
