package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/pkg/types"
)

// setupSeams points runSetup's collaborators at test doubles and gives the
// run a throwaway HOME and log file. Returns the log file path.
func setupSeams(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	prevLog, prevLook, prevProbe, prevConfirm := logFile, lookPath, probeCredentials, confirmConfigure
	t.Cleanup(func() {
		logFile, lookPath, probeCredentials, confirmConfigure = prevLog, prevLook, prevProbe, prevConfirm
	})

	logFile = filepath.Join(t.TempDir(), "stratus.log")
	return logFile
}

func newTestCommand() *cobra.Command {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}

func TestSetupDeclinedConfigureExitsClean(t *testing.T) {
	logPath := setupSeams(t)
	lookPath = func(string) (string, error) { return "/usr/local/bin/aws", nil }
	probeCredentials = func(context.Context) error { return errors.New("no credentials configured") }
	confirmConfigure = func() (bool, error) { return false, nil }

	require.NoError(t, runSetup(newTestCommand(), nil))

	entries, err := logging.Tail(logPath, 0)
	require.NoError(t, err)
	var warned bool
	for _, e := range entries {
		if e.Level == types.LevelWarning && strings.Contains(e.Message, "unconfigured") {
			warned = true
		}
	}
	assert.True(t, warned, "declining should leave a warning in the log")
}

func TestSetupConfirmAbortReadsAsDecline(t *testing.T) {
	setupSeams(t)
	lookPath = func(string) (string, error) { return "/usr/local/bin/aws", nil }
	probeCredentials = func(context.Context) error { return errors.New("no credentials configured") }
	confirmConfigure = func() (bool, error) { return false, huh.ErrUserAborted }

	assert.NoError(t, runSetup(newTestCommand(), nil))
}

func TestSetupMissingCLIFails(t *testing.T) {
	setupSeams(t)
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	credChecks := 0
	probeCredentials = func(context.Context) error { credChecks++; return nil }
	confirmConfigure = func() (bool, error) { return true, nil }

	err := runSetup(newTestCommand(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aws cli missing")
	assert.Zero(t, credChecks)
}
