// Command webrig is the front-end build environment toolkit CLI.
package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/webrig-labs/webrig-cli/internal/adapters/driven/config/file"
	"github.com/webrig-labs/webrig-cli/internal/adapters/driven/env"
	"github.com/webrig-labs/webrig-cli/internal/adapters/driven/registry/github"
	"github.com/webrig-labs/webrig-cli/internal/adapters/driven/storage/sqlite"
	"github.com/webrig-labs/webrig-cli/internal/adapters/driven/toolchain"
	"github.com/webrig-labs/webrig-cli/internal/adapters/driven/watch"
	"github.com/webrig-labs/webrig-cli/internal/adapters/driving/cli"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/services"
	"github.com/webrig-labs/webrig-cli/internal/logger"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services for the resolved workspace
// directory. It runs once per invocation, after flag parsing.
func bootstrap(workDir string) error {
	manifestStore := file.NewManifestStore(workDir)
	runner := toolchain.NewRunner(workDir)
	runner.SetOutput(os.Stdout)
	watcher := watch.NewWatcher()
	envSource := env.NewDotenvSource()

	scaffold := services.NewScaffoldService(workDir, manifestStore)
	toolchainSvc := services.NewToolchainService(workDir, manifestStore, runner)
	toolchainSvc.SetWatcher(watcher)
	doctor := services.NewDoctorService(workDir, manifestStore, runner, scaffold)
	doctor.SetEnvSource(envSource)

	registry := github.NewRegistry(context.Background(), os.Getenv("WEBRIG_GITHUB_TOKEN"))
	scaffold.SetTemplateRegistry(registry)
	templates := services.NewTemplateService(registry, os.Getenv("WEBRIG_TEMPLATE_OWNER"))

	deps := cli.Services{
		Scaffold:  scaffold,
		Toolchain: toolchainSvc,
		Doctor:    doctor,
		Templates: templates,
		Manifest:  manifestStore,
		Watcher:   watcher,
		Env:       envSource,
	}

	// Run history lives under .webrig/ next to the manifest. Only open
	// it inside an initialised workspace so stray invocations do not
	// litter unrelated directories.
	if manifestStore.Exists() {
		vars, err := toolEnv(context.Background(), manifestStore, envSource, workDir)
		if err != nil {
			logger.Warn("env files not loaded: %v", err)
		} else {
			runner.SetEnv(vars)
		}
		store, err := sqlite.NewStore(workDir)
		if err != nil {
			logger.Warn("run history disabled: %v", err)
		} else {
			runStore := store.RunStore()
			toolchainSvc.SetRunStore(runStore)
			doctor.SetRunStore(runStore)
			deps.RunStore = runStore
			deps.History = services.NewHistoryService(runStore)
		}
	}

	cli.SetServices(deps)
	return nil
}

// toolEnv loads the manifest's dotenv files so tool invocations see
// the same variables as the dev server.
func toolEnv(ctx context.Context, store driven.ManifestStore, source driven.EnvSource, workDir string) (map[string]string, error) {
	project, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(project.Serve.EnvFiles) == 0 {
		return nil, nil
	}
	files := make([]string, len(project.Serve.EnvFiles))
	for i, name := range project.Serve.EnvFiles {
		files[i] = filepath.Join(workDir, filepath.FromSlash(name))
	}
	return source.Load(files...)
}
