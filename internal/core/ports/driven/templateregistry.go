package driven

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// TemplateRegistry discovers and downloads remote starter templates.
type TemplateRegistry interface {
	// ListTemplates returns the starter templates published by an
	// owner, ordered by stargazer count descending.
	ListTemplates(ctx context.Context, owner string) ([]domain.TemplateInfo, error)

	// Download fetches a template repository's default branch and
	// extracts it into destDir. Archive entries that would escape
	// destDir are rejected with domain.ErrUnsafePath.
	Download(ctx context.Context, owner, repo, destDir string) error
}
