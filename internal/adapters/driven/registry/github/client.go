// Package github discovers and downloads starter templates published
// as GitHub repositories tagged with the webrig-template topic.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// TemplateTopic marks a repository as a webrig starter template.
	TemplateTopic = "webrig-template"

	// archiveRedirects is how many redirects to follow for tarballs.
	archiveRedirects = 5
)

// Ensure Registry implements the interface.
var _ driven.TemplateRegistry = (*Registry)(nil)

// Registry is the go-github backed template registry.
type Registry struct {
	gh          *gh.Client
	http        *http.Client
	rateLimiter *RateLimiter
}

// NewRegistry creates a registry client. An empty token uses
// unauthenticated access with its lower rate limit.
func NewRegistry(ctx context.Context, token string) *Registry {
	httpClient := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = DefaultTimeout
	}

	return &Registry{
		gh:          gh.NewClient(httpClient),
		http:        httpClient,
		rateLimiter: NewRateLimiter(),
	}
}

// ListTemplates returns the starter templates published by an owner,
// ordered by stargazer count descending.
func (r *Registry) ListTemplates(ctx context.Context, owner string) ([]domain.TemplateInfo, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: owner must not be empty", domain.ErrInvalidInput)
	}

	query := fmt.Sprintf("user:%s topic:%s", owner, TemplateTopic)
	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var templates []domain.TemplateInfo
	for {
		select {
		case <-ctx.Done():
			return templates, ctx.Err()
		default:
		}

		if err := r.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		result, resp, err := r.gh.Search.Repositories(ctx, query, opts)
		if err != nil {
			return nil, r.wrapError(err, "search templates")
		}
		r.updateRateLimitFromResponse(resp)

		for _, repo := range result.Repositories {
			templates = append(templates, domain.TemplateInfo{
				Owner:       repo.GetOwner().GetLogin(),
				Name:        repo.GetName(),
				Description: repo.GetDescription(),
				Stars:       repo.GetStargazersCount(),
				UpdatedAt:   repo.GetPushedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return templates, nil
}

// Download fetches a template repository's default branch tarball and
// extracts it into destDir.
func (r *Registry) Download(ctx context.Context, owner, repo, destDir string) error {
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	url, resp, err := r.gh.Repositories.GetArchiveLink(
		ctx, owner, repo, gh.Tarball, &gh.RepositoryContentGetOptions{}, archiveRedirects,
	)
	if err != nil {
		wrapped := r.wrapError(err, "get archive link")
		if IsNotFound(wrapped) {
			return fmt.Errorf("%w: %s/%s", domain.ErrTemplateNotFound, owner, repo)
		}
		return wrapped
	}
	r.updateRateLimitFromResponse(resp)

	logger.Debug("downloading template tarball %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return fmt.Errorf("building tarball request: %w", err)
	}
	archive, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("downloading tarball: %w", err)
	}
	defer archive.Body.Close()

	if archive.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: archive.StatusCode,
			Message:    "tarball download failed",
			URL:        url.String(),
		}
	}

	return extractTarball(archive.Body, destDir)
}

// updateRateLimitFromResponse updates the rate limiter from GitHub
// response headers.
func (r *Registry) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	r.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (r *Registry) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   r.rateLimiter.ResetTime(),
			Remaining: r.rateLimiter.Remaining(),
			Limit:     r.rateLimiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
