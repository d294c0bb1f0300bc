package ui

import (
	"fmt"

	"github.com/stratusctl/stratus/pkg/types"
)

// RenderProfileTable renders AWS profiles as a styled box table. The
// active profile is marked with a dot and highlighted.
func RenderProfileTable(profiles []types.AWSProfile, active string) string {
	t := newBoxTable(
		col{title: "", width: 1},
		col{title: "Name"},
		col{title: "Region", width: 18},
		col{title: "Source", width: 12},
	)

	for _, p := range profiles {
		marker := cell{"", MutedStyle}
		name := cell{p.Name, NameStyle}
		if p.Name == active {
			marker = cell{"●", RunningStyle}
			name.style = RunningStyle
		}
		t.addRow(
			marker,
			name,
			cell{formatOptional(p.Region), MutedStyle},
			cell{p.Source, HintStyle},
		)
	}

	return t.render() + fmt.Sprintf("  %d profiles\n", len(profiles))
}

// PrintProfileTable prints AWS profiles in a styled box table
func PrintProfileTable(profiles []types.AWSProfile, active string) {
	fmt.Print(RenderProfileTable(profiles, active))
}
