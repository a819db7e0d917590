// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the conference schedule for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"confsched/internal/scheduleservice"
)

// Server wraps the MCP server with schedule tools.
type Server struct {
	mcp *server.MCPServer
	svc *scheduleservice.Service
}

// New creates a new MCP server with all schedule tools registered.
func New(svc *scheduleservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Confsched",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_proposals",
		mcp.WithDescription("Search proposal abstracts for a term."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search term (matched against abstracts)")),
	), s.searchProposals)

	s.mcp.AddTool(mcp.NewTool("get_proposal",
		mcp.WithDescription("Read one proposal: title, abstract, presenters, day, session, and room."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Proposal identifier")),
	), s.getProposal)

	s.mcp.AddTool(mcp.NewTool("list_day",
		mcp.WithDescription("List one conference day's proposals grouped by time slot."),
		mcp.WithString("day", mcp.Required(), mcp.Description("Day token (e.g. tuesday)")),
	), s.listDay)

	s.mcp.AddTool(mcp.NewTool("get_agenda",
		mcp.WithDescription("List the bookmarked proposals grouped by day and time slot."),
	), s.getAgenda)

	s.mcp.AddTool(mcp.NewTool("toggle_bookmark",
		mcp.WithDescription("Add a proposal to the agenda, or remove it if already bookmarked."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Proposal identifier")),
	), s.toggleBookmark)

	// Resource: programme overview.
	s.mcp.AddResource(
		mcp.NewResource("confsched://programme", "Programme Overview",
			mcp.WithResourceDescription("Conference days with their proposal counts."),
			mcp.WithMIMEType("application/json"),
		),
		s.readProgrammeResource,
	)

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

func (s *Server) searchProposals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getProposal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.Proposal(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prog, err := s.svc.Day(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown day: %s", day)), nil
	}
	out, _ := json.MarshalIndent(prog, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := s.svc.Agenda(ctx)
	if len(days) == 0 {
		return mcp.NewToolResultText("the agenda is empty"), nil
	}
	out, _ := json.MarshalIndent(days, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) toggleBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ids := s.svc.ToggleBookmark(ctx, id)
	if len(ids) == 0 {
		return mcp.NewToolResultText("bookmarks: (none)"), nil
	}
	return mcp.NewToolResultText("bookmarks: " + strings.Join(ids, ", ")), nil
}

func (s *Server) readProgrammeResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	days, err := s.svc.Days(ctx)
	if err != nil {
		return nil, err
	}
	out, _ := json.MarshalIndent(days, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "confsched://programme",
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}
