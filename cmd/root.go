package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stratusctl/stratus/internal/aws"
	"github.com/stratusctl/stratus/internal/config"
	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/internal/menu"
	"github.com/stratusctl/stratus/internal/prereq"
)

var (
	// Global flags
	profile string
	region  string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "stratus",
	Short: "Stratus - Interactive console for AWS S3 and EC2 operations",
	Long: `Stratus is a command-line console for day-to-day AWS S3 and EC2 work.
Run it without arguments for an interactive menu, or call the
subcommands directly from scripts.

Interactive:
  stratus                    # Open the menu

Direct Commands:
  stratus s3 ls              # List S3 buckets
  stratus s3 upload f b      # Upload file f to bucket b
  stratus ec2 ls             # List EC2 instances
  stratus ec2 start <name>   # Start an instance
  stratus logs               # Show recent log entries
  stratus status             # Check prerequisites and identity

Getting Started:
  stratus setup              # Verify and configure prerequisites
  stratus demo setup         # Create throwaway demo buckets
  stratus profile            # Pick an AWS profile`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.Context())
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig resolves each setting. Viper covers the first two layers
// per setting: the flag, then its STRATUS_* environment twin. After
// that comes the saved config, the AWS environment and the built-in
// default.
func initConfig() {
	viper.SetEnvPrefix("STRATUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	saved, err := config.Load()
	if err != nil {
		saved = &config.Config{}
	}

	profile = firstOf(viper.GetString("profile"), saved.Profile, os.Getenv("AWS_PROFILE"))
	region = firstOf(viper.GetString("region"), saved.Region, os.Getenv("AWS_REGION"), os.Getenv("AWS_DEFAULT_REGION"))
	logFile = firstOf(viper.GetString("log-file"), saved.LogFile, config.DefaultLogFile())
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GetProfile returns the AWS profile
func GetProfile() string {
	return profile
}

// GetRegion returns the AWS region
func GetRegion() string {
	return region
}

// GetLogFile returns the log file path
func GetLogFile() string {
	return logFile
}

// newLogger opens the configured log file with console mirroring
func newLogger() (*logging.Logger, error) {
	return logging.New(GetLogFile(), os.Stdout)
}

// newAWSClient builds an AWS client with the resolved profile and region
func newAWSClient(ctx context.Context) (*aws.Client, error) {
	return aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
}

// runMenu is the default action: verify prerequisites, then hand stdin to
// the interactive menu until the user exits.
func runMenu(ctx context.Context) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	client, err := newAWSClient(ctx)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	checker := prereq.New(aws.NewIdentityProvider(client), client.Profile())
	results, err := checker.Run(ctx)
	if err != nil {
		for _, r := range results {
			if r.OK {
				continue
			}
			log.Errorf("%s: %s", r.Name, r.Detail)
			if r.Remedy != "" {
				fmt.Printf("  → %s\n", r.Remedy)
			}
		}
		return err
	}

	m := menu.New(menu.Options{
		Storage: aws.NewStorageProvider(client),
		Compute: aws.NewComputeProvider(client),
		Logger:  log,
		In:      os.Stdin,
		Out:     os.Stdout,
		Profile: client.Profile(),
		Region:  client.Region(),
		Version: Version,
	})

	return m.Run(ctx)
}
