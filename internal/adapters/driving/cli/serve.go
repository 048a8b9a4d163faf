package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/adapters/driving/devserver"
	"github.com/webrig-labs/webrig-cli/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the build output with live reload",
	Long: `Starts the development server over the workspace build output.
Defaults come from the [serve] section of the manifest; flags override
them for a single run.

With live reload enabled, connected browsers reload automatically when
files under the served directory change. Variables from the configured
dotenv files are exposed at /__webrig/env, filtered to the
WEBRIG_PUBLIC_ prefix.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "listen port (0 = manifest default)")
	serveCmd.Flags().String("host", "", "listen interface (default from manifest)")
	serveCmd.Flags().Bool("spa", false, "rewrite unknown paths to index.html")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	serveCmd.Flags().Bool("no-reload", false, "disable live reload")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if manifestStore == nil {
		return errors.New("manifest store not configured")
	}

	project, err := manifestStore.Load(cmd.Context())
	if err != nil {
		return err
	}

	cfg := devserver.Config{
		Host:        project.Serve.Host,
		Port:        project.Serve.Port,
		Dir:         filepath.Join(workDir, filepath.FromSlash(project.Serve.Dir)),
		SPA:         project.Serve.SPA,
		LiveReload:  project.Serve.LiveReload,
		OpenBrowser: project.Serve.Open,
	}

	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Host = host
	}
	if spa, _ := cmd.Flags().GetBool("spa"); spa {
		cfg.SPA = true
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		cfg.OpenBrowser = true
	}
	if noReload, _ := cmd.Flags().GetBool("no-reload"); noReload {
		cfg.LiveReload = false
	}

	if envSource != nil && len(project.Serve.EnvFiles) > 0 {
		files := make([]string, len(project.Serve.EnvFiles))
		for i, file := range project.Serve.EnvFiles {
			files[i] = filepath.Join(workDir, filepath.FromSlash(file))
		}
		env, envErr := envSource.Load(files...)
		if envErr != nil {
			logger.Warn("skipping env files: %v", envErr)
		} else {
			cfg.Env = env
		}
	}

	server, err := devserver.New(cfg)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	if cfg.LiveReload && workspaceWatcher != nil {
		server.SetWatcher(workspaceWatcher)
	}
	if runStore != nil {
		server.SetRunStore(runStore)
	}

	// Resolve before printing so the URL shown is the one bound.
	preferred := cfg.Port
	boundPort, err := server.ResolvePort()
	if err != nil {
		return err
	}
	if boundPort != preferred {
		cmd.Printf("Port %d is busy, using %d\n", preferred, boundPort)
	}
	cmd.Printf("Serving %s at http://%s:%d (Ctrl+C to stop)\n",
		project.Serve.Dir, cfg.Host, boundPort)
	return server.Run(cmd.Context())
}
