package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/adt1-extractor/internal/config"
	"github.com/a3tai/adt1-extractor/internal/descriptions"
	"github.com/a3tai/adt1-extractor/internal/output"
	"github.com/a3tai/adt1-extractor/internal/pipeline"
)

// Tool names
const (
	ToolExtractFile  = "adt1_extract_file"
	ToolExtractText  = "adt1_extract_text"
	ToolValidateFile = "pdf_validate_file"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	pipeline  *pipeline.Pipeline
	format    output.Format
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, p *pipeline.Pipeline) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline cannot be nil")
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		pipeline:  p,
		format:    format,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		ToolExtractFile,
		mcp.WithDescription(descriptions.GetToolDescription(ToolExtractFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the Form ADT-1 PDF, absolute or relative to the configured directory"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractTextTool := mcp.NewTool(
		ToolExtractText,
		mcp.WithDescription(descriptions.GetToolDescription(ToolExtractText)),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Rendered form text, one value per line"),
		),
	)
	s.mcpServer.AddTool(extractTextTool, s.handleExtractText)

	validateFileTool := mcp.NewTool(
		ToolValidateFile,
		mcp.WithDescription(descriptions.GetToolDescription(ToolValidateFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.pipeline.Documents().ResolvePath(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pipeline.ExtractFile(resolved)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText, err := s.formatResult(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText, err := s.formatResult(s.pipeline.ExtractText(text))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	documents := s.pipeline.Documents()
	resolved, err := documents.ResolvePath(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := documents.ValidateFile(resolved)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages)", result.Path, result.Pages)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

// formatResult renders the record in the configured format followed by the
// summary
func (s *Server) formatResult(result *pipeline.Result) (string, error) {
	data, err := output.EncodeRecord(result.Record(), s.format)
	if err != nil {
		return "", err
	}

	text := ""
	if result.Document != nil {
		text += fmt.Sprintf("Extracted %s (%d pages, engine %s)\n\n",
			result.Document.Path, result.Document.Pages, result.Document.Engine)
	}
	text += fmt.Sprintf("Record (%s):\n%s\n\n", s.format, data)
	text += "Summary:\n" + result.Summary
	return text, nil
}

// Run serves the tools over stdio until the client disconnects or ctx is
// cancelled
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting ADT-1 MCP server in stdio mode")
		log.Printf("Directory: %s", s.pipeline.Documents().ConfiguredDirectory())
	}

	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.Default())

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
