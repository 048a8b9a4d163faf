package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/webrig-labs/webrig-cli/internal/adapters/driving/tui"
	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new workspace",
	Long: `Creates a new front-end workspace in the current directory:
the webrig.toml manifest, starter sources, package.json and the
rendered tool configs.

Without a name, an interactive prompt asks for the package name and
starter preset. Use --template owner/repo to start from a published
template repository instead of an embedded preset.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringP("preset", "p", "", "starter preset (vanilla, react, react-ts)")
	initCmd.Flags().StringP("template", "t", "", "remote template as owner/repo")
	initCmd.Flags().BoolP("force", "f", false, "initialise over an existing manifest")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if scaffoldService == nil {
		return errors.New("scaffold service not configured")
	}

	presetFlag, _ := cmd.Flags().GetString("preset")
	template, _ := cmd.Flags().GetString("template")
	force, _ := cmd.Flags().GetBool("force")

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	preset := domain.Preset(presetFlag)

	// With no name on the command line, fall back to the interactive
	// prompt on a terminal, or to directory-derived defaults otherwise.
	if name == "" {
		if template == "" && presetFlag == "" && term.IsTerminal(int(os.Stdin.Fd())) {
			answers, err := tui.RunInitPrompt(defaultProjectName())
			if errors.Is(err, tui.ErrCancelled) {
				cmd.Println("Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			name = answers.Name
			preset = answers.Preset
		} else {
			name = defaultProjectName()
			cmd.Printf("No name given, using %q\n", name)
		}
	}
	if preset == "" {
		preset = domain.PresetVanilla
	}

	project, err := scaffoldService.Init(cmd.Context(), driving.InitOptions{
		Name:     name,
		Preset:   preset,
		Template: template,
		Force:    force,
	})
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}

	if template != "" {
		cmd.Printf("Created workspace %s from template %s\n", project.Name, template)
	} else {
		cmd.Printf("Created workspace %s (%s preset)\n", project.Name, project.Preset)
	}
	cmd.Println()
	cmd.Println("Next steps:")
	cmd.Println("  npm install")
	cmd.Println("  webrig serve")
	return nil
}

// defaultProjectName derives a package name from the workspace
// directory, falling back to a generic one.
func defaultProjectName() string {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "my-app"
	}
	name := strings.ToLower(filepath.Base(abs))
	if domain.ValidateProjectName(name) != nil {
		return "my-app"
	}
	return name
}
