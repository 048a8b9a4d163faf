package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pelletier/go-toml/v2"

	"github.com/webrig-labs/webrig-cli/internal/render"
)

const (
	// URIScheme is the custom URI scheme for webrig resources.
	uriScheme = "webrig://"

	// runsResourceLimit caps how many runs the runs resource reports.
	runsResourceLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the workspace manifest.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "manifest",
		Name:        "manifest",
		Description: "The workspace manifest in TOML form",
		MIMEType:    "application/toml",
	}, s.handleManifestResource)

	// Static resource for the recorded toolchain runs.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent toolchain runs, most recent first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	// Template for rendered tool config files.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "configs/{name}",
		Name:        "rendered-config",
		Description: "One tool config file rendered from the manifest",
		MIMEType:    "text/plain",
	}, s.handleConfigResource)
}

// handleManifestResource returns the manifest as TOML text.
func (s *Server) handleManifestResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	project, err := s.ports.Manifest.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	data, err := toml.Marshal(project)
	if err != nil {
		return nil, fmt.Errorf("marshalling manifest: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/toml",
			Text:     string(data),
		}},
	}, nil
}

// handleRunsResource returns the recent run history as JSON.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Build simplified run list.
	type runInfo struct {
		ID        string `json:"id"`
		Tool      string `json:"tool"`
		Trigger   string `json:"trigger"`
		StartedAt string `json:"started_at"`
		Duration  string `json:"duration"`
		ExitCode  int    `json:"exit_code"`
		Success   bool   `json:"success"`
		Detail    string `json:"detail,omitempty"`
	}

	infos := []runInfo{}
	if s.ports.History != nil {
		runs, err := s.ports.History.List(ctx, runsResourceLimit)
		if err != nil {
			return nil, fmt.Errorf("listing runs: %w", err)
		}
		for i := range runs {
			infos = append(infos, runInfo{
				ID:        runs[i].ID,
				Tool:      runs[i].Tool.String(),
				Trigger:   runs[i].Trigger.String(),
				StartedAt: runs[i].StartedAt.Format("2006-01-02T15:04:05Z07:00"),
				Duration:  runs[i].Duration().String(),
				ExitCode:  runs[i].ExitCode,
				Success:   runs[i].Success,
				Detail:    runs[i].Detail,
			})
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling runs: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleConfigResource returns the rendered text of one managed config.
func (s *Server) handleConfigResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractConfigName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	path, ok := configNames[name]
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	project, err := s.ports.Manifest.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	content, err := render.ConfigFile(project, path)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     string(content),
		}},
	}, nil
}

// extractConfigName extracts the config name from a URI like webrig://configs/{name}.
func extractConfigName(uri string) string {
	const prefix = uriScheme + "configs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
