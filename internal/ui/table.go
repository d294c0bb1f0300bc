package ui

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/stratusctl/stratus/pkg/types"
)

// RenderInstanceTable renders instances as a styled box table with a
// trailing summary line.
func RenderInstanceTable(instances []types.Instance) string {
	t := newBoxTable(
		col{title: "ID", width: 21},
		col{title: "Name", maxWidth: 28},
		col{title: "Private IP", width: 16},
		col{title: "State", width: 15},
		col{title: "Type", width: 13},
		col{title: "AZ", width: 16},
		col{title: "Launched", width: 16},
	)

	for _, inst := range instances {
		launched := "-"
		if !inst.LaunchTime.IsZero() {
			launched = humanize.Time(inst.LaunchTime)
		}
		t.addRow(
			cell{inst.ID, IDStyle},
			cell{inst.Name, NameStyle},
			cell{formatOptional(inst.PrivateIP), IPStyle},
			cell{stateLabel(inst.State), stateStyle(inst.State)},
			cell{inst.Type, TypeStyle},
			cell{inst.AZ, AZStyle},
			cell{launched, MutedStyle},
		)
	}

	return t.render() + instanceSummary(instances)
}

// PrintInstanceTable prints instances in a styled box table
func PrintInstanceTable(instances []types.Instance) {
	fmt.Print(RenderInstanceTable(instances))
}

// instanceSummary is the per-state count line under the table.
func instanceSummary(instances []types.Instance) string {
	counts := make(map[types.InstanceState]int)
	for _, inst := range instances {
		counts[inst.State]++
	}

	var parts []string
	if c := counts[types.StateRunning]; c > 0 {
		parts = append(parts, RunningStyle.Render(fmt.Sprintf("%d running", c)))
	}
	if c := counts[types.StateStopped]; c > 0 {
		parts = append(parts, StoppedStyle.Render(fmt.Sprintf("%d stopped", c)))
	}
	if c := counts[types.StatePending]; c > 0 {
		parts = append(parts, PendingStyle.Render(fmt.Sprintf("%d pending", c)))
	}
	if c := counts[types.StateStopping]; c > 0 {
		parts = append(parts, PendingStyle.Render(fmt.Sprintf("%d stopping", c)))
	}

	summary := fmt.Sprintf("  %d instances", len(instances))
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	return summary + "\n"
}
