// Package mcpserver exposes the support tools over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/agent"
	"github.com/spec-kit/support-agent/internal/priority"
	"github.com/spec-kit/support-agent/internal/repository"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// ToolDeterminePriority is only offered over MCP; the agent's model applies
// the rules itself.
const ToolDeterminePriority = "determinePriority"

// Handlers serves MCP tool calls from the shared toolbox.
type Handlers struct {
	tools  *agent.Toolbox
	users  repository.UserRepository
	logger *zap.Logger
}

// NewHandlers constructs the handlers.
func NewHandlers(tools *agent.Toolbox, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{tools: tools, users: tools.Users, logger: logger}
}

// NewServer registers every tool on a new MCP server.
func NewServer(name, version string, h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool(agent.ToolSearchDocs,
			mcp.WithDescription("Search internal documentation for solutions to common questions"),
			mcp.WithString("query", mcp.Required(), mcp.Description("The search query for documentation")),
		),
		h.SearchDocs,
	)
	s.AddTool(
		mcp.NewTool(agent.ToolGetUserContext,
			mcp.WithDescription("Retrieve a user's plan, role and recent activity"),
			mcp.WithString("userId", mcp.Required(), mcp.Description("The user ID to look up")),
		),
		h.GetUserContext,
	)
	s.AddTool(
		mcp.NewTool(agent.ToolCreateTicket,
			mcp.WithDescription("Create a support ticket for issues documentation cannot resolve"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Brief description of the issue")),
			mcp.WithString("priority", mcp.Required(), mcp.Enum("low", "medium", "high"), mcp.Description("Priority level")),
		),
		h.CreateTicket,
	)
	s.AddTool(
		mcp.NewTool(ToolDeterminePriority,
			mcp.WithDescription("Classify an issue as low, medium or high priority using the support rules"),
			mcp.WithString("userId", mcp.Required(), mcp.Description("The user reporting the issue")),
			mcp.WithString("description", mcp.Required(), mcp.Description("The issue description")),
		),
		h.DeterminePriority,
	)

	return s
}

// SearchDocs handles the searchDocs tool.
func (h *Handlers) SearchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := h.tools.SearchDocs(ctx, req.GetString("query", ""))
	if err != nil {
		return h.failure(agent.ToolSearchDocs, err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// GetUserContext handles the getUserContext tool.
func (h *Handlers) GetUserContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.tools.GetUserContext(ctx, req.GetString("userId", ""))
	if err != nil {
		return h.failure(agent.ToolGetUserContext, err), nil
	}
	return jsonResult(user)
}

// CreateTicket handles the createTicket tool.
func (h *Handlers) CreateTicket(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ticket, err := h.tools.CreateTicket(ctx, req.GetString("title", ""), req.GetString("priority", ""))
	if err != nil {
		return h.failure(agent.ToolCreateTicket, err), nil
	}
	return jsonResult(ticket)
}

// DeterminePriority handles the determinePriority tool.
func (h *Handlers) DeterminePriority(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.users.Lookup(ctx, req.GetString("userId", ""))
	if err != nil {
		return h.failure(ToolDeterminePriority, err), nil
	}
	description := req.GetString("description", "")
	p := priority.Determine(user, description)
	return jsonResult(map[string]string{
		"priority":    string(p),
		"explanation": priority.Explain(user, description, p),
	})
}

func (h *Handlers) failure(tool string, err error) *mcp.CallToolResult {
	h.logger.Warn("tool call failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(errorutil.ToDomainError(err).Message)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(raw)), nil
}
