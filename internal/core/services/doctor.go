package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// Ensure DoctorService implements the interface.
var _ driving.DoctorService = (*DoctorService)(nil)

// Binaries the toolchain depends on, probed in order.
var toolchainBinaries = []string{"node", "npm", "npx"}

// DoctorService inspects a workspace and reports its health.
type DoctorService struct {
	workDir       string
	manifestStore driven.ManifestStore
	runner        driven.ToolRunner
	scaffold      driving.ScaffoldService
	envSource     driven.EnvSource
	runStore      driven.RunStore
}

// NewDoctorService creates a new doctor service rooted at workDir.
func NewDoctorService(
	workDir string,
	manifestStore driven.ManifestStore,
	runner driven.ToolRunner,
	scaffold driving.ScaffoldService,
) *DoctorService {
	return &DoctorService{
		workDir:       workDir,
		manifestStore: manifestStore,
		runner:        runner,
		scaffold:      scaffold,
	}
}

// SetEnvSource sets the dotenv loader used for the env file check.
func (s *DoctorService) SetEnvSource(envSource driven.EnvSource) {
	s.envSource = envSource
}

// SetRunStore sets the history store used for the recent-failure check.
func (s *DoctorService) SetRunStore(store driven.RunStore) {
	s.runStore = store
}

// Check runs every workspace check and returns the findings.
func (s *DoctorService) Check(ctx context.Context) (*domain.CheckReport, error) {
	report := &domain.CheckReport{}

	project := s.checkManifest(ctx, report)
	if project != nil {
		s.checkEntries(project, report)
		s.checkDrift(ctx, report)
		s.checkEnvFiles(project, report)
	}
	s.checkBinaries(ctx, report)
	s.checkNodeModules(report)
	s.checkRecentRuns(ctx, report)

	return report, nil
}

func (s *DoctorService) checkManifest(ctx context.Context, report *domain.CheckReport) *domain.Project {
	project, err := s.manifestStore.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNoManifest):
		report.Findings = append(report.Findings, domain.Finding{
			ID:       "manifest",
			Severity: domain.CheckError,
			Summary:  "No manifest found",
			Detail:   fmt.Sprintf("expected %s; run `webrig init` to create a workspace", s.manifestStore.Path()),
		})
		return nil
	case err != nil:
		report.Findings = append(report.Findings, domain.Finding{
			ID:       "manifest",
			Severity: domain.CheckError,
			Summary:  "Manifest is invalid",
			Detail:   err.Error(),
		})
		return nil
	}

	report.Findings = append(report.Findings, domain.Finding{
		ID:       "manifest",
		Severity: domain.CheckOK,
		Summary:  fmt.Sprintf("Manifest %s@%s (%s)", project.Name, project.Version, project.Preset),
	})
	return project
}

func (s *DoctorService) checkEntries(project *domain.Project, report *domain.CheckReport) {
	var missing []string
	for _, name := range project.Bundle.EntryNames() {
		path := project.Bundle.Entries[name]
		abs := filepath.Join(s.workDir, filepath.FromSlash(path))
		if _, err := os.Stat(abs); err != nil {
			missing = append(missing, fmt.Sprintf("%s (%s)", name, path))
		}
	}

	finding := domain.Finding{
		ID:       "bundle-entries",
		Severity: domain.CheckOK,
		Summary:  fmt.Sprintf("All %d bundle entries exist", len(project.Bundle.Entries)),
	}
	if len(missing) > 0 {
		finding.Severity = domain.CheckError
		finding.Summary = "Bundle entries point at missing files"
		finding.Detail = strings.Join(missing, ", ")
	}
	report.Findings = append(report.Findings, finding)
}

func (s *DoctorService) checkDrift(ctx context.Context, report *domain.CheckReport) {
	if s.scaffold == nil {
		return
	}
	diffs, err := s.scaffold.Diff(ctx)
	if err != nil {
		report.Findings = append(report.Findings, domain.Finding{
			ID:       "config-drift",
			Severity: domain.CheckWarn,
			Summary:  "Could not compare rendered configs",
			Detail:   err.Error(),
		})
		return
	}

	var drifted []string
	for _, diff := range diffs {
		if diff.State != driving.DiffCurrent {
			drifted = append(drifted, fmt.Sprintf("%s (%s)", diff.Path, diff.State))
		}
	}

	finding := domain.Finding{
		ID:       "config-drift",
		Severity: domain.CheckOK,
		Summary:  "Rendered configs match the manifest",
	}
	if len(drifted) > 0 {
		finding.Severity = domain.CheckWarn
		finding.Summary = "Rendered configs have drifted"
		finding.Detail = strings.Join(drifted, ", ") + "; run `webrig sync`"
	}
	report.Findings = append(report.Findings, finding)
}

func (s *DoctorService) checkEnvFiles(project *domain.Project, report *domain.CheckReport) {
	if s.envSource == nil || len(project.Serve.EnvFiles) == 0 {
		return
	}

	var present []string
	for _, file := range project.Serve.EnvFiles {
		if _, err := os.Stat(filepath.Join(s.workDir, filepath.FromSlash(file))); err == nil {
			present = append(present, filepath.Join(s.workDir, filepath.FromSlash(file)))
		}
	}
	if len(present) == 0 {
		return
	}

	finding := domain.Finding{
		ID:       "env-files",
		Severity: domain.CheckOK,
		Summary:  fmt.Sprintf("%d env file(s) parse cleanly", len(present)),
	}
	if _, err := s.envSource.Load(present...); err != nil {
		finding.Severity = domain.CheckWarn
		finding.Summary = "Env files have problems"
		finding.Detail = err.Error()
	}
	report.Findings = append(report.Findings, finding)
}

func (s *DoctorService) checkBinaries(ctx context.Context, report *domain.CheckReport) {
	for _, binary := range toolchainBinaries {
		version, err := s.runner.Version(ctx, binary)
		finding := domain.Finding{
			ID:       "tool-" + binary,
			Severity: domain.CheckOK,
			Summary:  fmt.Sprintf("%s %s", binary, version),
		}
		if err != nil {
			finding.Severity = domain.CheckError
			finding.Summary = binary + " is not installed"
			finding.Detail = "install Node.js to use the toolchain"
		}
		report.Findings = append(report.Findings, finding)
	}
}

func (s *DoctorService) checkNodeModules(report *domain.CheckReport) {
	finding := domain.Finding{
		ID:       "node-modules",
		Severity: domain.CheckOK,
		Summary:  "node_modules is present",
	}
	info, err := os.Stat(filepath.Join(s.workDir, "node_modules"))
	if err != nil || !info.IsDir() {
		finding.Severity = domain.CheckWarn
		finding.Summary = "node_modules is missing"
		finding.Detail = "run `npm install` before building"
	}
	report.Findings = append(report.Findings, finding)
}

func (s *DoctorService) checkRecentRuns(ctx context.Context, report *domain.CheckReport) {
	if s.runStore == nil {
		return
	}
	runs, err := s.runStore.List(ctx, 1)
	if err != nil || len(runs) == 0 {
		return
	}

	latest := runs[0]
	if latest.Success {
		report.Findings = append(report.Findings, domain.Finding{
			ID:       "recent-runs",
			Severity: domain.CheckOK,
			Summary:  fmt.Sprintf("Last %s run succeeded", latest.Tool),
		})
		return
	}
	report.Findings = append(report.Findings, domain.Finding{
		ID:       "recent-runs",
		Severity: domain.CheckWarn,
		Summary:  fmt.Sprintf("Last %s run failed (exit %d)", latest.Tool, latest.ExitCode),
		Detail:   latest.Detail,
	})
}
