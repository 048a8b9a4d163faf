// Package toolchain invokes the external front-end tools through npx,
// so only workspace-local installations under node_modules are used.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/logger"
)

// npxBinary is the package runner used to locate tools.
const npxBinary = "npx"

// Ensure Runner implements the interface.
var _ driven.ToolRunner = (*Runner)(nil)

// Runner runs toolchain binaries via `npx --no-install` in the
// workspace directory.
type Runner struct {
	workDir string
	env     map[string]string
	output  io.Writer
}

// NewRunner creates a runner rooted at workDir.
func NewRunner(workDir string) *Runner {
	return &Runner{workDir: workDir}
}

// SetEnv sets extra environment variables merged over os.Environ for
// every invocation, typically loaded from dotenv files.
func (r *Runner) SetEnv(env map[string]string) {
	r.env = env
}

// SetOutput sets a writer that receives the tool's combined output as
// it is produced. Output is always captured in the result as well.
func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

// Run invokes a tool and waits for it. A non-zero exit is reported
// through the result, not the error.
func (r *Runner) Run(ctx context.Context, tool domain.Tool, args []string) (*driven.ToolResult, error) {
	if !tool.IsValid() {
		return nil, fmt.Errorf("%w: unknown tool %q", domain.ErrInvalidInput, tool)
	}

	npxPath, err := exec.LookPath(npxBinary)
	if err != nil {
		return nil, fmt.Errorf("%w: npx is not on PATH; install Node.js", domain.ErrToolNotFound)
	}

	argv := append([]string{"--no-install", tool.String()}, args...)
	logger.Debug("running %s %s", npxBinary, strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, npxPath, argv...)
	cmd.Dir = r.workDir
	cmd.Env = r.environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = r.tee(&stdout)
	cmd.Stderr = r.tee(&stderr)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running %s: %w", tool, err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	result := &driven.ToolResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	// npx --no-install refuses with a "could not determine executable"
	// error when the tool is not present in node_modules.
	if !result.Success() && isToolMissing(result) {
		return nil, fmt.Errorf("%w: %s is not installed; run `npm install`", domain.ErrToolNotFound, tool)
	}
	return result, nil
}

// Version reports the version of an arbitrary binary on PATH.
func (r *Runner) Version(ctx context.Context, binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not on PATH", domain.ErrToolNotFound, binary)
	}

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("probing %s version: %w", binary, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// environ merges the configured extra variables over the process
// environment. Later values win.
func (r *Runner) environ() []string {
	env := os.Environ()
	for key, value := range r.env {
		env = append(env, key+"="+value)
	}
	return env
}

func (r *Runner) tee(buf *bytes.Buffer) io.Writer {
	if r.output == nil {
		return buf
	}
	return io.MultiWriter(buf, r.output)
}

// isToolMissing recognises npx's refusal to run an uninstalled tool.
func isToolMissing(result *driven.ToolResult) bool {
	return result.ExitCode == 127 ||
		strings.Contains(result.Stderr, "could not determine executable")
}
