package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded toolchain runs",
	Long: `Lists recent toolchain runs, most recent first. Every build,
lint and format invocation and every dev server session is recorded.`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the run history",
	Args:  cobra.NoArgs,
	RunE:  runRunsClear,
}

func init() {
	runsCmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show (0 = all)")
	runsCmd.Flags().Bool("json", false, "emit the runs as JSON")
	runsCmd.AddCommand(runsClearCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := historyService.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tTRIGGER\tSTARTED\tDURATION\tRESULT\tDETAIL")
	for i := range runs {
		run := &runs[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.Tool,
			run.Trigger,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Duration().Round(time.Millisecond),
			runResult(run),
			run.Detail,
		)
	}
	return w.Flush()
}

func runResult(run *domain.RunRecord) string {
	if run.Success {
		return "ok"
	}
	return fmt.Sprintf("exit %d", run.ExitCode)
}

func runRunsClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	cmd.Println("Run history cleared.")
	return nil
}
