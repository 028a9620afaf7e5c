package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes read-only planning tools. Downloading is left to the
// interactive session because it needs a human confirmation.
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytorg-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_download_options",
		mcp.WithDescription("List the formats and categories accepted by plan_youtube_download, with their numeric keys."),
	), s.handleListOptions)

	s.mcpServer.AddTool(mcp.NewTool("plan_youtube_download",
		mcp.WithDescription("Look up a YouTube video and report where it would be stored (<base>/<Category>/<Uploader>/<Title>.<ext>) and whether a file with the same name already exists in another category. Nothing is downloaded."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("mp3 or mp4 (or 1, 2)"),
		),
		mcp.WithString("category",
			mcp.Description("music, podcast, tutorial, stories or other (or 1-5)"),
		),
	), s.handlePlan)
}

// handleListOptions implements the list_download_options tool
func (s *MCPServer) handleListOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	MCPLogInfo("list_download_options called")

	options := s.app.Options()
	var buf strings.Builder
	buf.WriteString("Formats:\n")
	for _, c := range options.Formats.Entries() {
		buf.WriteString(fmt.Sprintf("  %s: %s\n", c.Key, c.Value))
	}
	buf.WriteString("Categories:\n")
	for _, c := range options.Categories.Entries() {
		buf.WriteString(fmt.Sprintf("  %s: %s (folder %s)\n", c.Key, c.Value, c.Value.DirName()))
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// handlePlan implements the plan_youtube_download tool
func (s *MCPServer) handlePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	options := s.app.Options()
	format, err := options.Formats.Normalize(request.GetString("format", string(FormatMP3)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := options.Categories.Normalize(request.GetString("category", string(CategoryOther)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	MCPLogInfo("plan_youtube_download url=%s format=%s category=%s", url, format, category)

	plan, err := s.app.Plan(ctx, Request{URL: url, Format: format, Category: category})
	if err != nil {
		MCPLogError("plan failed for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("planning download", err), nil
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encoding plan", err), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		MCPLogInfo("serving MCP over HTTP on %s", addr)
		return httpServer.Start(addr)
	}

	MCPLogInfo("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}
