package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List remote starter templates",
	Long: `Lists the starter templates published on GitHub, most starred
first. Use one with ` + "`webrig init --template owner/repo`" + `.

Set WEBRIG_GITHUB_TOKEN to raise the API rate limit.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	templates, err := templateService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	if len(templates) == 0 {
		cmd.Println("No templates published.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tSTARS\tUPDATED\tDESCRIPTION")
	for i := range templates {
		tmpl := &templates[i]
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			tmpl.FullName(),
			tmpl.Stars,
			tmpl.UpdatedAt.Format("2006-01-02"),
			tmpl.Description,
		)
	}
	return w.Flush()
}
