package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stratusctl/stratus/pkg/types"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"shorter than width", "web-1", 8, "web-1   "},
		{"exactly width", "web-1", 5, "web-1"},
		{"truncated with ellipsis", "very-long-instance-name", 10, "very-lo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, padRight(tt.in, tt.width))
		})
	}
}

func TestBoxTableAutoWidth(t *testing.T) {
	// Auto columns grow to the widest cell and respect the cap.
	bt := newBoxTable(
		col{title: "Name"},
		col{title: "Key", maxWidth: 10},
	)
	bt.addRow(
		cell{"a-rather-long-bucket-name", NameStyle},
		cell{"reports/2024/january.csv", KeyStyle},
	)

	ws := bt.widths()
	assert.Equal(t, 25, ws[0])
	assert.Equal(t, 10, ws[1])
}

func TestBoxTableTitleIsWidthFloor(t *testing.T) {
	bt := newBoxTable(col{title: "Region"})
	bt.addRow(cell{"eu", MutedStyle})

	assert.Equal(t, []int{6}, bt.widths())
}

func TestRenderInstanceTable(t *testing.T) {
	instances := []types.Instance{
		{
			ID:         "i-0123456789abcdef0",
			Name:       "web-1",
			State:      types.StateRunning,
			Type:       "t3.micro",
			AZ:         "us-east-1a",
			PrivateIP:  "10.0.1.10",
			LaunchTime: time.Now().Add(-48 * time.Hour),
		},
		{
			ID:    "i-0fedcba9876543210",
			Name:  "batch-1",
			State: types.StateStopped,
			Type:  "t3.small",
			AZ:    "us-east-1b",
		},
	}

	out := RenderInstanceTable(instances)

	assert.Contains(t, out, "i-0123456789abcdef0")
	assert.Contains(t, out, "web-1")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "stopped")
	assert.Contains(t, out, "2 instances")
	assert.Contains(t, out, "1 running")
	assert.Contains(t, out, "1 stopped")
}

func TestRenderBucketTable(t *testing.T) {
	buckets := []types.Bucket{
		{Name: "app-assets", Region: "us-east-1", CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{Name: "app-backups"},
	}

	out := RenderBucketTable(buckets)

	assert.Contains(t, out, "app-assets")
	assert.Contains(t, out, "app-backups")
	assert.Contains(t, out, "2024-03-01 12:00:00")
	assert.Contains(t, out, "2 buckets")
}

func TestRenderObjectTable(t *testing.T) {
	objects := []types.Object{
		{Key: "reports/2024.csv", Size: 2048, StorageClass: "STANDARD"},
		{Key: "logo.png", Size: 512},
	}

	out := RenderObjectTable(objects)

	assert.Contains(t, out, "reports/2024.csv")
	assert.Contains(t, out, "logo.png")
	assert.Contains(t, out, "STANDARD")
	assert.Contains(t, out, "2 objects")
}

func TestRenderProfileTable(t *testing.T) {
	profiles := []types.AWSProfile{
		{Name: "default", Region: "us-east-1", Source: "credentials"},
		{Name: "prod", Region: "eu-west-1", Source: "config"},
	}

	out := RenderProfileTable(profiles, "prod")

	assert.Contains(t, out, "default")
	assert.Contains(t, out, "prod")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "2 profiles")
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "● running", stateLabel(types.StateRunning))
	assert.Equal(t, "○ stopped", stateLabel(types.StateStopped))
	assert.Equal(t, "◐ stopping", stateLabel(types.StateStopping))
	assert.Equal(t, "○ terminated", stateLabel(types.StateTerminated))
}
