package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Analyse the workspace sources",
	Long: `Runs the linter over the workspace sources, or over the given
paths only. With --fix, safe fixes are applied in place. With --watch
the linter is re-run whenever sources change, until interrupted.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().Bool("fix", false, "apply safe fixes")
	lintCmd.Flags().BoolP("watch", "w", false, "re-lint on source changes")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	if toolchainService == nil {
		return errors.New("toolchain service not configured")
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		cmd.Println("Watching for changes (Ctrl+C to stop)...")
		return toolchainService.Watch(cmd.Context(), domain.ToolLinter)
	}

	fix, _ := cmd.Flags().GetBool("fix")
	record, err := toolchainService.Lint(cmd.Context(), driving.LintOptions{
		Fix:   fix,
		Paths: args,
	})
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	return reportRun(cmd, record, "Lint")
}
