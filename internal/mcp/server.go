// Package mcp exposes field extraction and HTML rendering as Model Context
// Protocol tools so agents can inspect annotated forms without the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/goliatone/go-xmlform/internal/config"
	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/orchestrator"
	"github.com/goliatone/go-xmlform/pkg/render"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

const (
	ToolExtractFields = "xmlform_extract_fields"
	ToolRenderHTML    = "xmlform_render_html"
)

// Server wraps the MCP server with the xmlform tools.
type Server struct {
	config    *config.Config
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a server and registers its tools.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		logger:    logger,
		mcpServer: mcpServer,
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	documentArgs := []mcp.ToolOption{
		mcp.WithString("path",
			mcp.Description("Path or http(s) URL of the annotated document"),
		),
		mcp.WithString("xml",
			mcp.Description("Inline document content, used when path is empty"),
		),
		mcp.WithString("format",
			mcp.Description("Document format: auto (default), xml, json or yaml"),
		),
		mcp.WithString("only",
			mcp.Description("Optional comma separated field keys or types to keep"),
		),
	}

	extractTool := mcp.NewTool(ToolExtractFields, append([]mcp.ToolOption{
		mcp.WithDescription("Extract the ordered form fields (iso, date, radioList, cursiveSignature) declared in an annotated document"),
	}, documentArgs...)...)
	s.mcpServer.AddTool(extractTool, s.handleExtractFields)

	renderTool := mcp.NewTool(ToolRenderHTML, append([]mcp.ToolOption{
		mcp.WithDescription("Render the fields of an annotated document as an HTML form"),
		mcp.WithString("title",
			mcp.Description("Optional form heading"),
		),
	}, documentArgs...)...)
	s.mcpServer.AddTool(renderTool, s.handleRenderHTML)
}

// ServeStdio serves the tools over standard input and output until the
// client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting MCP server",
		zap.String("name", s.config.ServerName),
		zap.String("version", s.config.Version),
	)
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) handleExtractFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, orch, err := s.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields, err := orch.Extract(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode fields: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleRenderHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, orch, err := s.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	title, _ := args["title"].(string)
	req.Renderer = "html"
	req.RenderOptions = render.RenderOptions{Title: title}

	output, err := orch.Generate(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(output)), nil
}

// prepare resolves the document arguments shared by every tool.
func (s *Server) prepare(request mcp.CallToolRequest) (orchestrator.Request, *orchestrator.Orchestrator, error) {
	args := request.GetArguments()
	path, _ := args["path"].(string)
	inline, _ := args["xml"].(string)
	rawFormat, _ := args["format"].(string)
	only, _ := args["only"].(string)

	format, ok := tree.ParseFormat(strings.TrimSpace(rawFormat))
	if !ok {
		return orchestrator.Request{}, nil, fmt.Errorf("unsupported format %q (expected auto, xml, json or yaml)", rawFormat)
	}
	if strings.TrimSpace(rawFormat) == "" {
		format = ""
	}

	var req orchestrator.Request
	switch {
	case strings.TrimSpace(path) != "":
		src, err := document.ParseSource(path)
		if err != nil {
			return orchestrator.Request{}, nil, err
		}
		req.Source = src
	case strings.TrimSpace(inline) != "":
		req.Source = document.SourceFromBytes("inline", []byte(inline))
	default:
		return orchestrator.Request{}, nil, errors.New("either path or xml is required")
	}

	req.Subset = render.ParseSubset(only)

	s.logger.Debug("tool request",
		zap.String("location", req.Source.Location()),
		zap.String("format", string(format)),
	)
	return req, orchestrator.New(s.config.Pipeline(s.logger, format)...), nil
}
