package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/stratusctl/stratus/internal/aws"
	"github.com/stratusctl/stratus/internal/config"
	"github.com/stratusctl/stratus/internal/demo"
	"github.com/stratusctl/stratus/internal/logging"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Create and remove throwaway demo resources",
	Long: `Create S3 buckets for trying stratus out, and remove them again.

Demo buckets carry a recognizable name prefix and a timestamp, so
cleanup only ever touches buckets this tool created.

Examples:
  stratus demo setup             # Create one demo bucket
  stratus demo setup --count 3   # Create three
  stratus demo cleanup           # Remove them all (asks first)
  stratus demo cleanup --yes     # Remove without asking`,
}

var demoSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create demo buckets seeded with a small object",
	RunE:  runDemoSetup,
}

var demoCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete every demo bucket and its contents",
	RunE:  runDemoCleanup,
}

var (
	demoCount int
	demoYes   bool
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.AddCommand(demoSetupCmd)
	demoCmd.AddCommand(demoCleanupCmd)

	demoSetupCmd.Flags().IntVar(&demoCount, "count", 1, "Number of demo buckets to create")
	demoCleanupCmd.Flags().BoolVarP(&demoYes, "yes", "y", false, "Skip the confirmation prompt")
}

// newDemoManager wires a manager with the prefix from the config file,
// falling back to the built-in default.
func newDemoManager(cmd *cobra.Command, log *logging.Logger) (*demo.Manager, error) {
	client, err := newAWSClient(cmd.Context())
	if err != nil {
		return nil, err
	}

	prefix := ""
	if cfg, err := config.Load(); err == nil {
		prefix = cfg.DemoPrefix
	}

	return demo.New(aws.NewStorageProvider(client), log, prefix), nil
}

func runDemoSetup(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	mgr, err := newDemoManager(cmd, log)
	if err != nil {
		return err
	}

	created, err := mgr.Setup(cmd.Context(), demoCount)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	fmt.Printf("\nCreated %d demo buckets. Remove them with 'stratus demo cleanup'.\n", len(created))
	return nil
}

func runDemoCleanup(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	mgr, err := newDemoManager(cmd, log)
	if err != nil {
		return err
	}

	if !demoYes {
		var confirm bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete all demo buckets and their contents?").
					Value(&confirm),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirm {
			fmt.Println("Aborted.")
			return nil
		}
	}

	removed, err := mgr.Cleanup(cmd.Context())
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	if len(removed) > 0 {
		fmt.Printf("\nRemoved %d demo buckets.\n", len(removed))
	}
	return nil
}
