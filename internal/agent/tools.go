package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/llm"
	"github.com/spec-kit/support-agent/internal/repository"
	"github.com/spec-kit/support-agent/internal/service"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// Tool names exposed to the model and over MCP.
const (
	ToolSearchDocs     = "searchDocs"
	ToolGetUserContext = "getUserContext"
	ToolCreateTicket   = "createTicket"
)

type searchDocsArgs struct {
	Query string `json:"query" jsonschema:"description=The search query for documentation"`
}

type getUserContextArgs struct {
	UserID string `json:"userId" jsonschema:"description=The user ID to look up"`
}

type createTicketArgs struct {
	Title    string `json:"title" jsonschema:"description=Brief description of the issue"`
	Priority string `json:"priority" jsonschema:"enum=low,enum=medium,enum=high,description=Priority level based on urgency and user context"`
}

// Toolbox backs the tools with the document, user and ticket collaborators.
type Toolbox struct {
	Docs    repository.DocumentRepository
	Users   repository.UserRepository
	Tickets *service.TicketService
}

// SearchDocs returns the rendered lookup result the model sees.
func (t *Toolbox) SearchDocs(ctx context.Context, query string) (string, error) {
	res, err := t.Docs.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return repository.RenderSearchResult(res), nil
}

// GetUserContext returns the account snapshot for userID.
func (t *Toolbox) GetUserContext(ctx context.Context, userID string) (domain.UserContext, error) {
	return t.Users.Lookup(ctx, userID)
}

// CreateTicket files a ticket. Unknown priorities surface as validation errors.
func (t *Toolbox) CreateTicket(ctx context.Context, title, priority string) (*domain.Ticket, error) {
	p, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, errorutil.NewValidationError("Invalid priority level", map[string]any{"priority": priority})
	}
	return t.Tickets.CreateTicket(ctx, title, p)
}

// Definitions returns the tool schemas handed to the model.
func (t *Toolbox) Definitions() []llm.Tool {
	return []llm.Tool{
		{
			Name:        ToolSearchDocs,
			Description: "Search internal documentation for solutions to common questions. Use for how-to questions and product information.",
			Parameters:  llm.GenerateSchema[searchDocsArgs](),
		},
		{
			Name:        ToolGetUserContext,
			Description: "Retrieve the user's plan, role and recent activity. Use it to judge the priority of an issue.",
			Parameters:  llm.GenerateSchema[getUserContextArgs](),
		},
		{
			Name:        ToolCreateTicket,
			Description: "Create a support ticket for issues the documentation cannot resolve. Requires a title and a priority.",
			Parameters:  llm.GenerateSchema[createTicketArgs](),
		},
	}
}

// toolOutcome is what one tool call produced inside a run.
type toolOutcome struct {
	content string
	user    *domain.UserContext
	ticket  *domain.Ticket
}

// invoke runs a tool call and renders the result for the model.
func (t *Toolbox) invoke(ctx context.Context, call llm.ToolCall) (toolOutcome, error) {
	switch call.Name {
	case ToolSearchDocs:
		args, err := llm.ParseToolArguments[searchDocsArgs](call.Arguments)
		if err != nil {
			return toolOutcome{}, err
		}
		text, err := t.SearchDocs(ctx, args.Query)
		if err != nil {
			return toolOutcome{}, err
		}
		return toolOutcome{content: text}, nil

	case ToolGetUserContext:
		args, err := llm.ParseToolArguments[getUserContextArgs](call.Arguments)
		if err != nil {
			return toolOutcome{}, err
		}
		user, err := t.GetUserContext(ctx, args.UserID)
		if err != nil {
			return toolOutcome{}, err
		}
		content, err := marshal(user)
		if err != nil {
			return toolOutcome{}, err
		}
		return toolOutcome{content: content, user: &user}, nil

	case ToolCreateTicket:
		args, err := llm.ParseToolArguments[createTicketArgs](call.Arguments)
		if err != nil {
			return toolOutcome{}, err
		}
		ticket, err := t.CreateTicket(ctx, args.Title, args.Priority)
		if err != nil {
			return toolOutcome{}, err
		}
		content, err := marshal(ticket)
		if err != nil {
			return toolOutcome{}, err
		}
		return toolOutcome{content: content, ticket: ticket}, nil

	default:
		return toolOutcome{}, fmt.Errorf("unknown tool %q", call.Name)
	}
}

func marshal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// errorResult renders a tool failure for the model. Domain errors report
// only their message.
func errorResult(err error) string {
	msg := err.Error()
	var de *errorutil.DomainError
	if errors.As(err, &de) {
		msg = de.Message
	}
	raw, _ := json.Marshal(map[string]string{"error": msg})
	return string(raw)
}
