package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/stratusctl/stratus/internal/aws"
	"github.com/stratusctl/stratus/internal/config"
	"github.com/stratusctl/stratus/internal/ui"
)

// lookPath is swappable in tests.
var lookPath = exec.LookPath

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Verify and configure prerequisites",
	Long: `Prepare the environment for stratus: create the data directories,
verify the AWS CLI is installed, and walk through credential setup
when none are configured.

Examples:
  stratus setup
  stratus setup -p prod`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	switch runtime.GOOS {
	case "linux", "darwin":
	default:
		return fmt.Errorf("unsupported platform %s: setup supports linux and darwin", runtime.GOOS)
	}

	if err := config.EnsureTree(); err != nil {
		return err
	}
	fmt.Printf("%s data directory %s\n", ui.RunningStyle.Render("✓"), config.Dir())

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	// AWS CLI on PATH
	cliPath, err := lookPath("aws")
	if err != nil {
		log.Warningf("aws executable not found on PATH")
		printCLIInstructions()
		return fmt.Errorf("setup incomplete: aws cli missing")
	}
	fmt.Printf("%s aws cli %s\n", ui.RunningStyle.Render("✓"), cliPath)

	// Credential probe
	if probeCredentials(ctx) == nil {
		log.Successf("setup complete, credentials verified")
		return nil
	}

	log.Warningf("credentials are not configured or not working")

	configure, err := confirmConfigure()
	if err != nil && !errors.Is(err, huh.ErrUserAborted) {
		return err
	}
	if !configure {
		// Declining the walkthrough is a clean exit.
		log.Warningf("credentials left unconfigured")
		fmt.Println("Skipped. Configure credentials later with 'aws configure'.")
		return nil
	}

	if err := runAWSConfigure(ctx); err != nil {
		return fmt.Errorf("aws configure failed: %w", err)
	}

	if err := probeCredentials(ctx); err != nil {
		log.Errorf("credentials still failing: %v", err)
		return fmt.Errorf("setup incomplete: credentials not working")
	}

	log.Successf("setup complete, credentials verified")
	return nil
}

// probeCredentials builds a fresh client and runs the identity check so
// newly written credentials are picked up. Swappable in tests.
var probeCredentials = func(ctx context.Context) error {
	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	ident, err := aws.NewIdentityProvider(client).WhoAmI(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s credentials for account %s\n", ui.RunningStyle.Render("✓"), ident.Account)
	return nil
}

// confirmConfigure asks whether to run the interactive credential
// walkthrough. Swappable in tests.
var confirmConfigure = func() (bool, error) {
	var configure bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Run 'aws configure' now?").
				Value(&configure),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return configure, nil
}

func printCLIInstructions() {
	fmt.Println("To install the AWS CLI:")
	switch runtime.GOOS {
	case "darwin":
		fmt.Println("  brew install awscli")
	default:
		fmt.Println(`  curl "https://awscli.amazonaws.com/awscli-exe-linux-x86_64.zip" -o awscliv2.zip`)
		fmt.Println("  unzip awscliv2.zip && sudo ./aws/install")
	}
	fmt.Println("Then re-run 'stratus setup'.")
}

func runAWSConfigure(ctx context.Context) error {
	cfgArgs := []string{"configure"}
	if p := GetProfile(); p != "" {
		cfgArgs = append(cfgArgs, "--profile", p)
	}

	c := exec.CommandContext(ctx, "aws", cfgArgs...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	return c.Run()
}
