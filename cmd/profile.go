package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratusctl/stratus/internal/aws"
	"github.com/stratusctl/stratus/internal/config"
	"github.com/stratusctl/stratus/internal/ui"
	"github.com/stratusctl/stratus/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and switch AWS profiles",
	Long: `Work with the AWS profiles defined in ~/.aws/credentials and
~/.aws/config. Without a subcommand an interactive picker opens; the
chosen profile is remembered for future runs.

Examples:
  stratus profile              # Pick a profile interactively
  stratus profile ls           # Show every profile
  stratus profile set prod     # Switch without the picker`,
	RunE: runProfilePick,
}

var profileLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List AWS profiles",
	Long: `List the profiles found in the shared AWS config files, marking the
one stratus currently resolves to.

Examples:
  stratus profile ls`,
	RunE: runProfileList,
}

var profileSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Switch to a named AWS profile",
	Long: `Persist <name> as the profile for future stratus runs. The name must
exist in ~/.aws/credentials or ~/.aws/config.

Examples:
  stratus profile set prod`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSet,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileLsCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func runProfilePick(cmd *cobra.Command, args []string) error {
	profiles, err := loadProfiles()
	if err != nil || profiles == nil {
		return err
	}

	selected, err := ui.SelectProfile(profiles, GetProfile())
	if errors.Is(err, ui.ErrSelectionCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	return switchProfile(selected.Name)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	profiles, err := loadProfiles()
	if err != nil || profiles == nil {
		return err
	}

	ui.PrintProfileTable(profiles, GetProfile())
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !aws.ValidateProfile(name) {
		return fmt.Errorf("profile %q not found in the shared AWS config files", name)
	}
	return switchProfile(name)
}

// loadProfiles reads the shared AWS config files. A nil slice with a
// nil error means there was nothing to show and a hint was printed.
func loadProfiles() ([]types.AWSProfile, error) {
	profiles, err := aws.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	if len(profiles) == 0 {
		fmt.Println("No AWS profiles found.")
		fmt.Println("Define one in ~/.aws/credentials or ~/.aws/config, or run 'stratus setup'.")
		return nil, nil
	}
	return profiles, nil
}

// switchProfile persists the selection and tells the user how to
// mirror it in the current shell.
func switchProfile(name string) error {
	if err := config.RememberProfile(name); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	fmt.Printf("Switched to profile %s (saved in %s)\n", name, config.Path())
	fmt.Printf("For the current shell: export AWS_PROFILE=%s\n", name)
	return nil
}
