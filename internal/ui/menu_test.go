package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stratusctl/stratus/pkg/types"
)

func TestRenderMenu(t *testing.T) {
	items := []string{
		"List S3 buckets",
		"Upload a file to S3",
		"Download a file from S3",
		"List EC2 instances",
		"Start, stop or reboot an instance",
		"View recent logs",
		"Exit",
	}

	out := RenderMenu("staging", "eu-west-1", items)

	assert.Contains(t, out, "profile: staging")
	assert.Contains(t, out, "region: eu-west-1")
	for i, item := range items {
		assert.Contains(t, out, fmt.Sprintf("%d. ", i+1))
		assert.Contains(t, out, item)
	}
}

func TestRenderMenuEmptyContext(t *testing.T) {
	out := RenderMenu("", "", []string{"Exit"})

	assert.Contains(t, out, "profile: -")
	assert.Contains(t, out, "region: -")
}

func TestRenderLogEntry(t *testing.T) {
	e := types.LogEntry{
		Timestamp: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Level:     types.LevelWarning,
		Message:   "no buckets found",
	}

	out := RenderLogEntry(e)

	assert.Contains(t, out, "[2024-05-01 09:30:00]")
	assert.Contains(t, out, "[WARNING]")
	assert.Contains(t, out, "no buckets found")
}
