package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const menuWidth = 52

// RenderMenu renders the numbered operation menu inside a box, with the
// active profile and region shown in the title area. Items are numbered
// from 1 in the order given.
func RenderMenu(profile, region string, items []string) string {
	var sb strings.Builder
	w := menuWidth

	// Widen the box if an item would not fit: number(5) + label + pad(1)
	for _, item := range items {
		if lw := 5 + runewidth.StringWidth(item) + 1; lw > w {
			w = lw
		}
	}

	// Top border
	sb.WriteString(BorderStyle.Render(cornerTL))
	sb.WriteString(BorderStyle.Render(strings.Repeat(lineH, w)))
	sb.WriteString(BorderStyle.Render(cornerTR))
	sb.WriteString("\n")

	// Title
	sb.WriteString(BorderStyle.Render(lineV))
	sb.WriteString(HeaderStyle.Render(padToWidth(" stratus", w)))
	sb.WriteString(BorderStyle.Render(lineV))
	sb.WriteString("\n")

	// Profile and region line
	ctxLine := fmt.Sprintf(" profile: %s   region: %s", formatOptional(profile), formatOptional(region))
	sb.WriteString(BorderStyle.Render(lineV))
	sb.WriteString(HintStyle.Render(padToWidth(ctxLine, w)))
	sb.WriteString(BorderStyle.Render(lineV))
	sb.WriteString("\n")

	// Separator
	sb.WriteString(BorderStyle.Render(teeL))
	sb.WriteString(BorderStyle.Render(strings.Repeat(lineH, w)))
	sb.WriteString(BorderStyle.Render(teeR))
	sb.WriteString("\n")

	// Numbered items
	for i, item := range items {
		number := fmt.Sprintf("  %d. ", i+1)
		sb.WriteString(BorderStyle.Render(lineV))

		var line strings.Builder
		line.WriteString(ChoiceStyle.Render(number))
		label := padRight(item, w-runewidth.StringWidth(number))
		line.WriteString(NameStyle.Render(label))

		sb.WriteString(line.String())
		sb.WriteString(BorderStyle.Render(lineV))
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(cornerBL))
	sb.WriteString(BorderStyle.Render(strings.Repeat(lineH, w)))
	sb.WriteString(BorderStyle.Render(cornerBR))
	sb.WriteString("\n")

	return sb.String()
}

// RenderPrompt renders an input prompt label
func RenderPrompt(label string) string {
	return PromptStyle.Render(label+":") + " "
}
