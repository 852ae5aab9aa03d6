// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the design-context extraction tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	figmacontext "github.com/hellenic-development/figma-context"
	"github.com/hellenic-development/figma-context/pkg/figma"
	"github.com/hellenic-development/figma-context/pkg/formatter"
)

// Server wraps the MCP server with the extraction tools.
type Server struct {
	mcp       *server.MCPServer
	extractor *figmacontext.Extractor
	options   figmacontext.Options
}

// New creates an MCP server with every extraction tool registered. The
// options apply to every extract_context call.
func New(extractor *figmacontext.Extractor, options figmacontext.Options) *Server {
	s := &Server{extractor: extractor, options: options}

	s.mcp = server.NewMCPServer(
		"figma-context",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("extract_context",
		mcp.WithDescription("Extract the full design context (nodes, styles, components, "+
			"layout, prototypes, semantics, design tokens, accessibility) from a saved "+
			"Figma file export."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to a Figma file API JSON export")),
		mcp.WithString("format", mcp.Description("Output format: json (default) or markdown")),
	), s.extractContext)

	s.mcp.AddTool(mcp.NewTool("extract_styles",
		mcp.WithDescription("Extract only the style system: color palette with WCAG "+
			"contrast analysis, typography, spacing, shadows, and grids."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to a Figma file API JSON export")),
	), s.extractStyles)

	s.mcp.AddTool(mcp.NewTool("analyze_complexity",
		mcp.WithDescription("Assess the engineering complexity of the design: factor "+
			"scores, overall level, development-time estimate, and architecture "+
			"recommendation."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to a Figma file API JSON export")),
		mcp.WithString("framework", mcp.Description("Target framework for the architecture recommendation (react, vue, angular, svelte)")),
	), s.analyzeComplexity)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) loadDocument(req mcp.CallToolRequest) (*figma.FileResponse, *mcp.CallToolResult) {
	path, err := req.RequireString("path")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	doc, err := figma.LoadFile(path)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return doc, nil
}

func (s *Server) extractContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, errResult := s.loadDocument(req)
	if errResult != nil {
		return errResult, nil
	}

	result := s.extractor.ExtractContext(doc, s.options)

	format := ""
	if f, err := req.RequireString("format"); err == nil {
		format = f
	}
	if format == "markdown" {
		return mcp.NewToolResultText(formatter.ToMarkdown(result)), nil
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) extractStyles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, errResult := s.loadDocument(req)
	if errResult != nil {
		return errResult, nil
	}

	sys := s.extractor.ExtractStyles(doc)
	out, err := json.MarshalIndent(sys, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) analyzeComplexity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, errResult := s.loadDocument(req)
	if errResult != nil {
		return errResult, nil
	}

	framework := ""
	if f, err := req.RequireString("framework"); err == nil {
		framework = f
	}
	report := s.extractor.AnalyzeComplexity(doc, framework)
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
