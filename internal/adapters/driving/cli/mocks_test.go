package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// execute runs the root command with the given args and captures
// combined output. Flag state is reset afterwards so executions stay
// independent.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// mockScaffoldService implements driving.ScaffoldService for testing.
type mockScaffoldService struct {
	project    *domain.Project
	syncResult *driving.SyncResult
	diffs      []driving.FileDiff
	err        error

	lastInit driving.InitOptions
}

func (m *mockScaffoldService) Init(_ context.Context, opts driving.InitOptions) (*domain.Project, error) {
	m.lastInit = opts
	return m.project, m.err
}

func (m *mockScaffoldService) Sync(_ context.Context) (*driving.SyncResult, error) {
	return m.syncResult, m.err
}

func (m *mockScaffoldService) Diff(_ context.Context) ([]driving.FileDiff, error) {
	return m.diffs, m.err
}

// mockToolchainService implements driving.ToolchainService for testing.
type mockToolchainService struct {
	record *domain.RunRecord
	err    error

	watched domain.Tool
}

func (m *mockToolchainService) Build(_ context.Context, _ driving.BuildOptions) (*domain.RunRecord, error) {
	return m.record, m.err
}

func (m *mockToolchainService) Lint(_ context.Context, _ driving.LintOptions) (*domain.RunRecord, error) {
	return m.record, m.err
}

func (m *mockToolchainService) Format(_ context.Context, _ driving.FormatOptions) (*domain.RunRecord, error) {
	return m.record, m.err
}

func (m *mockToolchainService) Watch(_ context.Context, tool domain.Tool) error {
	m.watched = tool
	return m.err
}

// mockDoctorService implements driving.DoctorService for testing.
type mockDoctorService struct {
	report *domain.CheckReport
	err    error
}

func (m *mockDoctorService) Check(_ context.Context) (*domain.CheckReport, error) {
	return m.report, m.err
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	runs    []domain.RunRecord
	err     error
	cleared bool
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

// mockManifestStore implements driven.ManifestStore for testing.
type mockManifestStore struct {
	project *domain.Project
	err     error
}

func (m *mockManifestStore) Load(_ context.Context) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockManifestStore) Save(_ context.Context, _ *domain.Project) error {
	return m.err
}

func (m *mockManifestStore) Exists() bool { return m.project != nil }

func (m *mockManifestStore) Path() string { return "webrig.toml" }

// mockTemplateService implements driving.TemplateService for testing.
type mockTemplateService struct {
	templates []domain.TemplateInfo
	err       error
}

func (m *mockTemplateService) List(_ context.Context) ([]domain.TemplateInfo, error) {
	return m.templates, m.err
}

// successRecord builds a passing run record for output assertions.
func successRecord(tool domain.Tool) *domain.RunRecord {
	started := time.Now().UTC().Add(-2 * time.Second)
	return &domain.RunRecord{
		ID:        "run-1",
		Tool:      tool,
		Trigger:   domain.TriggerManual,
		StartedAt: started,
		EndedAt:   started.Add(1200 * time.Millisecond),
		ExitCode:  0,
		Success:   true,
	}
}

// failedRecord builds a failing run record for output assertions.
func failedRecord(tool domain.Tool, exitCode int, detail string) *domain.RunRecord {
	record := successRecord(tool)
	record.ExitCode = exitCode
	record.Success = false
	record.Detail = detail
	return record
}
