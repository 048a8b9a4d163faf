package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the workspace health",
	Long: `Runs the workspace checks: manifest validity, bundle entries,
config drift, toolchain binaries, node_modules and recent run history.
Exits non-zero when any check reports an error.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("json", false, "emit the report as JSON")
	rootCmd.AddCommand(checkCmd)
}

// Severity badges for the human-readable report.
var (
	okBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")).Render("ok  ")
	warnBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Render("warn")
	errBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Render("err ")
	detailTxt = lipgloss.NewStyle().Foreground(lipgloss.Color("#71717A"))
)

func runCheck(cmd *cobra.Command, _ []string) error {
	if doctorService == nil {
		return errors.New("doctor service not configured")
	}

	report, err := doctorService.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	} else {
		printReport(cmd, report)
	}

	if report.HasErrors() {
		return errors.New("workspace has problems")
	}
	return nil
}

func printReport(cmd *cobra.Command, report *domain.CheckReport) {
	for _, finding := range report.Findings {
		cmd.Printf("%s %s\n", severityBadge(finding.Severity), finding.Summary)
		if finding.Detail != "" {
			cmd.Printf("     %s\n", detailTxt.Render(finding.Detail))
		}
	}

	ok, warns, errs := report.Counts()
	cmd.Println()
	cmd.Printf("%d ok, %d warning(s), %d error(s)\n", ok, warns, errs)
}

func severityBadge(severity domain.CheckSeverity) string {
	switch severity {
	case domain.CheckWarn:
		return warnBadge
	case domain.CheckError:
		return errBadge
	default:
		return okBadge
	}
}
