package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

func setupTemplatesTest(mock *mockTemplateService) func() {
	old := templateService
	templateService = mock
	return func() {
		templateService = old
	}
}

func TestTemplatesCmd_ListsTemplates(t *testing.T) {
	mock := &mockTemplateService{
		templates: []domain.TemplateInfo{
			{
				Owner:       "webrig-labs",
				Name:        "starter-react",
				Description: "React starter with routing",
				Stars:       42,
				UpdatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	defer setupTemplatesTest(mock)()

	out, err := execute("templates")

	assert.NoError(t, err)
	assert.Contains(t, out, "webrig-labs/starter-react")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "React starter with routing")
}

func TestTemplatesCmd_Empty(t *testing.T) {
	defer setupTemplatesTest(&mockTemplateService{})()

	out, err := execute("templates")

	assert.NoError(t, err)
	assert.Contains(t, out, "No templates published.")
}

func TestTemplatesCmd_RegistryError(t *testing.T) {
	mock := &mockTemplateService{err: domain.ErrRateLimited}
	defer setupTemplatesTest(mock)()

	_, err := execute("templates")

	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestTemplatesCmd_ServiceNotConfigured(t *testing.T) {
	defer setupTemplatesTest(nil)()
	templateService = nil

	_, err := execute("templates")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "template service not configured")
}
