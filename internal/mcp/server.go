// Package mcp exposes the analyzer and renderers as MCP tools over stdio, so
// agent hosts can scaffold repository metadata without shelling out to the
// CLI. The tools are stateless: every call is one scan and/or one render.
package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"folder2github/internal/analyze"
	"folder2github/internal/logging"
	"folder2github/internal/render"
)

// Server wraps the MCP SDK server.
type Server struct {
	MCPServer *sdkmcp.Server
	Owner     string // GitHub account used in rendered clone URLs
}

// NewServer creates the server and registers the scaffolding tools.
func NewServer(version, owner string) *Server {
	s := &Server{Owner: owner}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "folder2github", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "analyze_repository",
		Description: "Scan a directory and return its detected project type, languages, and file categories.",
	}, s.handleAnalyze)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "generate_readme",
		Description: "Render a README.md document for a directory from a deep content scan.",
	}, s.handleGenerateReadme)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "generate_ci",
		Description: "Render a GitHub Actions ci.yml workflow for a directory from a shallow scan.",
	}, s.handleGenerateCI)
}

// --- Tool input/output types ---

type analyzeInput struct {
	TargetDir string `json:"target_dir" jsonschema:"directory to scan"`
	Deep      bool   `json:"deep,omitempty" jsonschema:"walk the full tree instead of only direct children"`
}

type analyzeOutput struct {
	ProjectType string   `json:"project_type"`
	Languages   []string `json:"languages"`
	Scripts     []string `json:"scripts"`
	Configs     []string `json:"configs"`
	Docs        []string `json:"docs"`
	Services    []string `json:"services"`
	Skipped     []string `json:"skipped,omitempty"`
}

type generateReadmeInput struct {
	TargetDir   string `json:"target_dir" jsonschema:"directory to scan"`
	RepoName    string `json:"repo_name" jsonschema:"repository name"`
	Description string `json:"description" jsonschema:"one-line repository description"`
}

type generateCIInput struct {
	TargetDir string `json:"target_dir" jsonschema:"directory to scan"`
	RepoName  string `json:"repo_name" jsonschema:"repository name"`
}

type documentOutput struct {
	Document    string   `json:"document"`
	ProjectType string   `json:"project_type"`
	Jobs        []string `json:"jobs,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleAnalyze(ctx context.Context, _ *sdkmcp.CallToolRequest, input analyzeInput) (*sdkmcp.CallToolResult, analyzeOutput, error) {
	mode := analyze.ModeShallow
	if input.Deep {
		mode = analyze.ModeDeep
	}
	a, err := analyze.Scan(input.TargetDir, mode)
	if err != nil {
		return nil, analyzeOutput{}, fmt.Errorf("analyze_repository: %w", err)
	}
	logging.New("mcp").Info("analyzed directory",
		"dir", input.TargetDir, "deep", input.Deep, "type", a.Type)

	return nil, analyzeOutput{
		ProjectType: string(a.Type),
		Languages:   a.LanguageNames(),
		Scripts:     relPaths(a.Scripts),
		Configs:     relPaths(a.Configs),
		Docs:        relPaths(a.Docs),
		Services:    relPaths(a.Services),
		Skipped:     a.Skipped,
	}, nil
}

func (s *Server) handleGenerateReadme(ctx context.Context, _ *sdkmcp.CallToolRequest, input generateReadmeInput) (*sdkmcp.CallToolResult, documentOutput, error) {
	a, err := analyze.Scan(input.TargetDir, analyze.ModeDeep)
	if err != nil {
		return nil, documentOutput{}, fmt.Errorf("generate_readme: %w", err)
	}
	doc, err := render.Readme(render.Context{
		RepoName:    input.RepoName,
		Description: input.Description,
		Owner:       s.Owner,
		Analysis:    a,
	}, time.Now())
	if err != nil {
		return nil, documentOutput{}, fmt.Errorf("generate_readme: %w", err)
	}
	return nil, documentOutput{Document: doc, ProjectType: string(a.Type)}, nil
}

func (s *Server) handleGenerateCI(ctx context.Context, _ *sdkmcp.CallToolRequest, input generateCIInput) (*sdkmcp.CallToolResult, documentOutput, error) {
	a, err := analyze.Scan(input.TargetDir, analyze.ModeShallow)
	if err != nil {
		return nil, documentOutput{}, fmt.Errorf("generate_ci: %w", err)
	}
	doc, err := render.Workflow(render.Context{
		RepoName: input.RepoName,
		Owner:    s.Owner,
		Analysis: a,
	}, time.Now())
	if err != nil {
		return nil, documentOutput{}, fmt.Errorf("generate_ci: %w", err)
	}
	return nil, documentOutput{
		Document:    doc,
		ProjectType: string(a.Type),
		Jobs:        render.WorkflowJobs(a),
	}, nil
}

func relPaths(records []analyze.FileRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.RelPath)
	}
	return out
}
