// Package cli implements the webrig command tree. Commands are thin
// shells over the driving ports; services are injected by the
// entrypoint before Execute runs.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
	"github.com/webrig-labs/webrig-cli/internal/logger"
)

// version is set by the entrypoint at build time.
var version = "dev"

// Injected services and stores. Nil services make their commands fail
// with a clear message instead of panicking.
var (
	scaffoldService  driving.ScaffoldService
	toolchainService driving.ToolchainService
	doctorService    driving.DoctorService
	historyService   driving.HistoryService
	templateService  driving.TemplateService

	manifestStore    driven.ManifestStore
	workspaceWatcher driven.WorkspaceWatcher
	runStore         driven.RunStore
	envSource        driven.EnvSource

	workDir = "."
)

// bootstrap, when set, wires services for the resolved workspace
// directory before any command runs.
var bootstrap func(workDir string) error

var (
	flagVerbose bool
	flagDir     string
)

var rootCmd = &cobra.Command{
	Use:   "webrig",
	Short: "Front-end build environment toolkit",
	Long: `webrig manages a front-end workspace from a single manifest.

The webrig.toml manifest is the source of truth: webrig renders the
bundler, transpiler, linter and formatter configs from it, runs the
tools through npx, serves the build output with live reload, and keeps
a history of every run.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", ".", "workspace directory")
}

// setup runs before every command: verbosity first, then service
// wiring for the resolved workspace directory.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)
	workDir = flagDir
	if bootstrap != nil {
		return bootstrap(flagDir)
	}
	return nil
}

// Execute runs the command tree until completion or interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the wiring function invoked once the
// workspace directory flag has been parsed.
func SetBootstrap(fn func(workDir string) error) {
	bootstrap = fn
}

// Services bundles everything the commands depend on.
type Services struct {
	Scaffold  driving.ScaffoldService
	Toolchain driving.ToolchainService
	Doctor    driving.DoctorService
	History   driving.HistoryService
	Templates driving.TemplateService

	Manifest driven.ManifestStore
	Watcher  driven.WorkspaceWatcher
	RunStore driven.RunStore
	Env      driven.EnvSource
}

// SetServices injects the service implementations the commands use.
func SetServices(s Services) {
	scaffoldService = s.Scaffold
	toolchainService = s.Toolchain
	doctorService = s.Doctor
	historyService = s.History
	templateService = s.Templates
	manifestStore = s.Manifest
	workspaceWatcher = s.Watcher
	runStore = s.RunStore
	envSource = s.Env
}
