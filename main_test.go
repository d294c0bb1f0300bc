package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stratusctl/stratus/internal/menu"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: 0},
		{name: "interrupted", err: menu.ErrInterrupted, want: 130},
		{name: "wrapped interrupted", err: fmt.Errorf("menu: %w", menu.ErrInterrupted), want: 130},
		{name: "context cancelled", err: context.Canceled, want: 130},
		{name: "ordinary failure", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
