package services

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// DefaultTemplateOwner is the account whose template repositories are
// listed by default.
const DefaultTemplateOwner = "webrig-labs"

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// TemplateService lists remote starter templates.
type TemplateService struct {
	registry driven.TemplateRegistry
	owner    string
}

// NewTemplateService creates a new template service. An empty owner
// falls back to DefaultTemplateOwner.
func NewTemplateService(registry driven.TemplateRegistry, owner string) *TemplateService {
	if owner == "" {
		owner = DefaultTemplateOwner
	}
	return &TemplateService{
		registry: registry,
		owner:    owner,
	}
}

// List returns the published templates, most starred first.
func (s *TemplateService) List(ctx context.Context) ([]domain.TemplateInfo, error) {
	if s.registry == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.registry.ListTemplates(ctx, s.owner)
}
