package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format the workspace sources",
	Long: `Rewrites the workspace sources with the formatter, or the given
paths only. With --check nothing is written; drift is reported through
the exit code instead.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report drift without rewriting files")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	if toolchainService == nil {
		return errors.New("toolchain service not configured")
	}

	check, _ := cmd.Flags().GetBool("check")
	record, err := toolchainService.Format(cmd.Context(), driving.FormatOptions{
		CheckOnly: check,
		Paths:     args,
	})
	if err != nil {
		return fmt.Errorf("fmt failed: %w", err)
	}

	if check && !record.Success {
		if record.Detail != "" {
			cmd.PrintErrln(record.Detail)
		}
		return errors.New("some files need formatting, run `webrig fmt`")
	}
	return reportRun(cmd, record, "Format")
}
