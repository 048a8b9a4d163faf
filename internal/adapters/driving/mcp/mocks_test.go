package mcp

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// mockManifestStore is a mock implementation of driven.ManifestStore.
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

func (m *mockManifestStore) Exists() bool {
	return m.project != nil
}

func (m *mockManifestStore) Path() string {
	return "webrig.toml"
}

// mockDoctorService is a mock implementation of driving.DoctorService.
type mockDoctorService struct {
	report *domain.CheckReport
	err    error
}

func (m *mockDoctorService) Check(_ context.Context) (*domain.CheckReport, error) {
	return m.report, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.RunRecord
	err  error
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}
