package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-render tool configs from the manifest",
	Long: `Re-renders every managed tool config file from webrig.toml,
overwriting files that have drifted. package.json is left alone once
it exists.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if scaffoldService == nil {
		return errors.New("scaffold service not configured")
	}

	result, err := scaffoldService.Sync(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	for _, path := range result.Written {
		cmd.Printf("wrote %s\n", path)
	}
	cmd.Printf("%d file(s) written, %d unchanged\n", len(result.Written), len(result.Unchanged))
	return nil
}
