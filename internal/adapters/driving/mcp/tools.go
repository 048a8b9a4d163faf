package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/render"
)

// configNames maps the logical config names accepted by render_config
// to the managed file paths.
var configNames = map[string]string{
	"bundler":    render.WebpackFile,
	"transpiler": render.BabelFile,
	"linter":     render.ESLintFile,
	"formatter":  render.PrettierFile,
	"ignore":     render.PrettierIgnoreFile,
	"package":    render.PackageJSONFile,
}

// ProjectInfoInput is the input schema for the project_info tool.
type ProjectInfoInput struct{}

// ProjectInfoOutput is the output schema for the project_info tool.
type ProjectInfoOutput struct {
	Name       string            `json:"name"`
	Version    string            `json:"version"`
	Preset     string            `json:"preset"`
	Entries    map[string]string `json:"entries"`
	OutputDir  string            `json:"output_dir"`
	ServePort  int               `json:"serve_port"`
	TypeScript bool              `json:"typescript"`
	React      bool              `json:"react"`
}

// CheckProjectInput is the input schema for the check_project tool.
type CheckProjectInput struct{}

// CheckFindingOutput is one doctor finding.
type CheckFindingOutput struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail,omitempty"`
}

// CheckProjectOutput is the output schema for the check_project tool.
type CheckProjectOutput struct {
	Findings []CheckFindingOutput `json:"findings"`
	OK       int                  `json:"ok"`
	Warnings int                  `json:"warnings"`
	Errors   int                  `json:"errors"`
}

// RenderConfigInput is the input schema for the render_config tool.
type RenderConfigInput struct {
	Config string `json:"config" jsonschema:"which config to render: bundler, transpiler, linter, formatter, ignore or package"`
}

// RenderConfigOutput is the output schema for the render_config tool.
type RenderConfigOutput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "project_info",
		Description: "Summarise the workspace manifest",
	}, s.handleProjectInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_project",
		Description: "Run the workspace health checks",
	}, s.handleCheckProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_config",
		Description: "Render one tool config file from the manifest",
	}, s.handleRenderConfig)
}

// handleProjectInfo handles the project_info tool invocation.
func (s *Server) handleProjectInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ProjectInfoInput,
) (*mcp.CallToolResult, ProjectInfoOutput, error) {
	project, err := s.ports.Manifest.Load(ctx)
	if err != nil {
		return nil, ProjectInfoOutput{}, err
	}

	output := ProjectInfoOutput{
		Name:       project.Name,
		Version:    project.Version,
		Preset:     project.Preset.String(),
		Entries:    project.Bundle.Entries,
		OutputDir:  project.Bundle.Output.Dir,
		ServePort:  project.Serve.Port,
		TypeScript: project.Transpile.TypeScript,
		React:      project.Transpile.React,
	}
	return nil, output, nil
}

// handleCheckProject handles the check_project tool invocation.
func (s *Server) handleCheckProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CheckProjectInput,
) (*mcp.CallToolResult, CheckProjectOutput, error) {
	report, err := s.ports.Doctor.Check(ctx)
	if err != nil {
		return nil, CheckProjectOutput{}, err
	}

	output := CheckProjectOutput{
		Findings: make([]CheckFindingOutput, len(report.Findings)),
	}
	output.OK, output.Warnings, output.Errors = report.Counts()

	for i, finding := range report.Findings {
		output.Findings[i] = CheckFindingOutput{
			ID:       finding.ID,
			Severity: finding.Severity.String(),
			Summary:  finding.Summary,
			Detail:   finding.Detail,
		}
	}
	return nil, output, nil
}

// handleRenderConfig handles the render_config tool invocation.
func (s *Server) handleRenderConfig(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderConfigInput,
) (*mcp.CallToolResult, RenderConfigOutput, error) {
	path, ok := configNames[input.Config]
	if !ok {
		return nil, RenderConfigOutput{}, fmt.Errorf(
			"%w: unknown config %q (want bundler, transpiler, linter, formatter, ignore or package)",
			domain.ErrInvalidInput, input.Config,
		)
	}

	project, err := s.ports.Manifest.Load(ctx)
	if err != nil {
		return nil, RenderConfigOutput{}, err
	}

	content, err := render.ConfigFile(project, path)
	if err != nil {
		return nil, RenderConfigOutput{}, err
	}

	return nil, RenderConfigOutput{Path: path, Content: string(content)}, nil
}
