package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

func setupDoctorTest(mock *mockDoctorService) func() {
	old := doctorService
	doctorService = mock
	return func() {
		doctorService = old
	}
}

func TestCheckCmd_HealthyWorkspace(t *testing.T) {
	mock := &mockDoctorService{
		report: &domain.CheckReport{
			Findings: []domain.Finding{
				{ID: "manifest", Severity: domain.CheckOK, Summary: "Manifest my-app@0.1.0 (vanilla)"},
				{ID: "node-modules", Severity: domain.CheckOK, Summary: "node_modules is present"},
			},
		},
	}
	defer setupDoctorTest(mock)()

	out, err := execute("check")

	assert.NoError(t, err)
	assert.Contains(t, out, "Manifest my-app@0.1.0 (vanilla)")
	assert.Contains(t, out, "2 ok, 0 warning(s), 0 error(s)")
}

func TestCheckCmd_ErrorsExitNonZero(t *testing.T) {
	mock := &mockDoctorService{
		report: &domain.CheckReport{
			Findings: []domain.Finding{
				{ID: "manifest", Severity: domain.CheckError, Summary: "No manifest found", Detail: "run `webrig init`"},
			},
		},
	}
	defer setupDoctorTest(mock)()

	out, err := execute("check")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "workspace has problems")
	assert.Contains(t, out, "No manifest found")
	assert.Contains(t, out, "run `webrig init`")
}

func TestCheckCmd_JSONOutput(t *testing.T) {
	mock := &mockDoctorService{
		report: &domain.CheckReport{
			Findings: []domain.Finding{
				{ID: "manifest", Severity: domain.CheckOK, Summary: "ok"},
			},
		},
	}
	defer setupDoctorTest(mock)()

	out, err := execute("check", "--json")

	assert.NoError(t, err)
	assert.Contains(t, out, `"findings"`)
	assert.Contains(t, out, `"id": "manifest"`)
}

func TestCheckCmd_ServiceNotConfigured(t *testing.T) {
	defer setupDoctorTest(nil)()
	doctorService = nil

	_, err := execute("check")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "doctor service not configured")
}
