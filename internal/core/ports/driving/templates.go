package driving

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// TemplateService lists the remote starter templates available for
// workspace creation.
type TemplateService interface {
	// List returns the published templates, most starred first.
	List(ctx context.Context) ([]domain.TemplateInfo, error)
}
