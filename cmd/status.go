package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/stratusctl/stratus/internal/aws"
	"github.com/stratusctl/stratus/internal/prereq"
	"github.com/stratusctl/stratus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show prerequisite and authentication status",
	Long: `Run the prerequisite checks and display the identity behind the
configured credentials.

Examples:
  stratus status
  stratus status -p prod`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	if p := GetProfile(); p != "" {
		fmt.Printf("Profile:  %s\n", ui.NameStyle.Render(p))
	} else {
		fmt.Println("Profile:  " + ui.MutedStyle.Render("(default chain)"))
	}
	if r := GetRegion(); r != "" {
		fmt.Printf("Region:   %s\n", r)
	}
	fmt.Println()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}

	checker := prereq.New(aws.NewIdentityProvider(client), client.Profile())
	results, checkErr := checker.Run(ctx)

	printCheckTable(results)

	// Identity details come straight off the credentials check
	if checkErr == nil {
		for _, r := range results {
			if r.Identity == nil {
				continue
			}
			fmt.Println()
			fmt.Printf("Account:  %s\n", r.Identity.Account)
			fmt.Printf("User:     %s\n", r.Identity.UserID)
			if r.Identity.Arn != "" {
				fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(r.Identity.Arn))
			}
		}
		return nil
	}

	fmt.Println()
	for _, r := range results {
		if !r.OK && r.Remedy != "" {
			fmt.Printf("To fix %s:\n  %s\n", r.Name, r.Remedy)
		}
	}
	return checkErr
}

func printCheckTable(results []prereq.CheckResult) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Check", "Status", "Detail")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	tbl.WithWriter(os.Stdout)

	for _, r := range results {
		status := ui.RunningStyle.Render("✓ ok")
		if !r.OK {
			status = ui.ErrorStyle.Render("✗ failed")
		}
		tbl.AddRow(r.Name, status, truncateStatus(r.Detail, 60))
	}

	tbl.Print()
}

// truncateStatus shortens a string to max runes with an ellipsis
func truncateStatus(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
