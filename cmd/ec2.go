package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/stratusctl/stratus/internal/aws"
	"github.com/stratusctl/stratus/internal/ui"
	"github.com/stratusctl/stratus/pkg/provider"
	"github.com/stratusctl/stratus/pkg/types"
)

var ec2Cmd = &cobra.Command{
	Use:   "ec2",
	Short: "Manage EC2 instances",
	Long: `List EC2 instances and control their power state.

The power commands take an instance ID or Name tag. When the argument is
omitted, an interactive selector opens instead.

Examples:
  stratus ec2 ls                 # List running instances
  stratus ec2 ls --all           # Include stopped instances
  stratus ec2 ls --name web      # Filter by name pattern
  stratus ec2 start web-01       # Start a stopped instance
  stratus ec2 stop i-0abc123     # Stop a running instance
  stratus ec2 reboot web-01      # Reboot an instance
  stratus ec2 connect web-01     # Open an SSM session`,
}

var ec2LsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List EC2 instances",
	RunE:    runEC2List,
}

var ec2StartCmd = &cobra.Command{
	Use:   "start [name-or-id]",
	Short: "Start a stopped instance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEC2Start,
}

var ec2StopCmd = &cobra.Command{
	Use:   "stop [name-or-id]",
	Short: "Stop a running instance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEC2Stop,
}

var ec2RebootCmd = &cobra.Command{
	Use:   "reboot [name-or-id]",
	Short: "Reboot an instance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEC2Reboot,
}

var ec2ConnectCmd = &cobra.Command{
	Use:   "connect [name-or-id]",
	Short: "Open an interactive SSM session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEC2Connect,
}

var (
	// ec2 ls flags
	ec2NamePattern string
	ec2ShowAll     bool
)

func init() {
	rootCmd.AddCommand(ec2Cmd)
	ec2Cmd.AddCommand(ec2LsCmd)
	ec2Cmd.AddCommand(ec2StartCmd)
	ec2Cmd.AddCommand(ec2StopCmd)
	ec2Cmd.AddCommand(ec2RebootCmd)
	ec2Cmd.AddCommand(ec2ConnectCmd)

	ec2LsCmd.Flags().StringVar(&ec2NamePattern, "name", "", "Filter instances by name pattern")
	ec2LsCmd.Flags().BoolVar(&ec2ShowAll, "all", false, "Show all instances including stopped ones")
}

func runEC2List(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	compute := aws.NewComputeProvider(client)

	filter := &provider.InstanceFilter{Name: ec2NamePattern}
	if ec2ShowAll {
		filter.States = []types.InstanceState{
			types.StatePending,
			types.StateRunning,
			types.StateStopping,
			types.StateStopped,
		}
	} else {
		filter.States = []types.InstanceState{types.StateRunning}
	}

	instances, err := compute.List(ctx, filter)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	if len(instances) == 0 {
		log.Warningf("no instances found")
		return nil
	}

	ui.PrintInstanceTable(instances)
	log.Successf("listed %d instances", len(instances))
	return nil
}

func runEC2Start(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	compute := aws.NewComputeProvider(client)

	inst, err := pickInstance(ctx, compute, args)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	if inst == nil {
		return nil
	}

	if inst.IsRunning() {
		log.Warningf("instance %s is already running", inst.ID)
		return nil
	}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Suffix = fmt.Sprintf(" Starting %s ...", inst.ID)
	sp.Start()
	err = compute.Start(ctx, inst.ID)
	sp.Stop()

	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	log.Successf("start requested for %s", inst.ID)
	return nil
}

func runEC2Stop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	compute := aws.NewComputeProvider(client)

	inst, err := pickInstance(ctx, compute, args)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	if inst == nil {
		return nil
	}

	if inst.IsStopped() {
		log.Warningf("instance %s is already stopped", inst.ID)
		return nil
	}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Suffix = fmt.Sprintf(" Stopping %s ...", inst.ID)
	sp.Start()
	err = compute.Stop(ctx, inst.ID)
	sp.Stop()

	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	log.Successf("stop requested for %s", inst.ID)
	return nil
}

func runEC2Reboot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	compute := aws.NewComputeProvider(client)

	inst, err := pickInstance(ctx, compute, args)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	if inst == nil {
		return nil
	}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Suffix = fmt.Sprintf(" Rebooting %s ...", inst.ID)
	sp.Start()
	err = compute.Reboot(ctx, inst.ID)
	sp.Stop()

	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	log.Successf("reboot requested for %s", inst.ID)
	return nil
}

func runEC2Connect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}
	compute := aws.NewComputeProvider(client)

	inst, err := pickInstance(ctx, compute, args)
	if err != nil {
		return err
	}
	if inst == nil {
		return nil
	}

	fmt.Printf("Connecting to %s...\n", inst.ID)
	return compute.Connect(ctx, inst.ID)
}

// pickInstance resolves the target from the argument, or interactively when
// no argument was given. A nil instance with a nil error means the selection
// was cancelled or there was nothing to choose from.
func pickInstance(ctx context.Context, compute *aws.AWSComputeProvider, args []string) (*types.Instance, error) {
	if len(args) > 0 {
		return compute.Get(ctx, args[0])
	}

	instances, err := compute.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		fmt.Println("No instances found")
		return nil, nil
	}

	inst, err := ui.SelectInstance(instances)
	if errors.Is(err, ui.ErrSelectionCancelled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inst, nil
}
