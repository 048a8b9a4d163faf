package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundle the workspace",
	Long: `Runs the bundler over the workspace sources. With --watch the
bundler is re-run whenever sources change, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("production", false, "build with the production profile")
	buildCmd.Flags().BoolP("watch", "w", false, "rebuild on source changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if toolchainService == nil {
		return errors.New("toolchain service not configured")
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		cmd.Println("Watching for changes (Ctrl+C to stop)...")
		return toolchainService.Watch(cmd.Context(), domain.ToolBundler)
	}

	production, _ := cmd.Flags().GetBool("production")
	record, err := toolchainService.Build(cmd.Context(), driving.BuildOptions{Production: production})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	return reportRun(cmd, record, "Build")
}

// reportRun prints a run outcome and maps tool failure to a non-zero
// exit.
func reportRun(cmd *cobra.Command, record *domain.RunRecord, verb string) error {
	if record.Success {
		cmd.Printf("%s succeeded in %s\n", verb, record.Duration().Round(time.Millisecond))
		return nil
	}
	if record.Detail != "" {
		cmd.PrintErrln(record.Detail)
	}
	return fmt.Errorf("%s failed with exit code %d", record.Tool, record.ExitCode)
}
