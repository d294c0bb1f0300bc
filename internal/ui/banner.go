package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("25")).
			PaddingLeft(2).
			PaddingRight(2)

	taglineStyle = HintStyle.PaddingLeft(1)
)

// RenderBanner renders the startup banner shown above the menu
func RenderBanner(version string) string {
	title := "stratus"
	if version != "" {
		title += " " + version
	}
	return bannerStyle.Render(title) + "\n" + taglineStyle.Render("S3 and EC2 operations console") + "\n"
}
