package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show drift between the manifest and rendered configs",
	Long: `Compares every managed tool config file against what the
manifest would render, without writing anything. Exits non-zero when
any file is missing or differs.`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, _ []string) error {
	if scaffoldService == nil {
		return errors.New("scaffold service not configured")
	}

	diffs, err := scaffoldService.Diff(cmd.Context())
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	drifted := 0
	for _, diff := range diffs {
		cmd.Printf("%-8s %s\n", diff.State, diff.Path)
		if diff.State != driving.DiffCurrent {
			drifted++
		}
	}

	if drifted > 0 {
		return fmt.Errorf("%d file(s) out of date, run `webrig sync`", drifted)
	}
	cmd.Println("All rendered configs match the manifest.")
	return nil
}
