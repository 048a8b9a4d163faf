package domain

import "time"

// TemplateInfo describes a remote starter template discovered on the
// registry.
type TemplateInfo struct {
	// Owner is the account the template repository belongs to.
	Owner string

	// Name is the repository name.
	Name string

	// Description is the repository description, possibly empty.
	Description string

	// Stars is the stargazer count, used for display ordering.
	Stars int

	// UpdatedAt is when the repository was last pushed to.
	UpdatedAt time.Time
}

// FullName returns the owner-qualified repository name.
func (t *TemplateInfo) FullName() string {
	return t.Owner + "/" + t.Name
}
