package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/priority"
)

// ProviderOffline selects the rule driven client that needs no network.
const ProviderOffline = "offline"

const (
	offlineModel    = "offline-rules"
	userIDLabel     = "User ID: "
	docsFoundPrefix = "Documentation: "
	maxTitleRunes   = 80
)

// UserTurn renders the first user message of a conversation so that the
// requesting user travels with the request text.
func UserTurn(input, userID string) string {
	return fmt.Sprintf("%s\n\n%s%s", input, userIDLabel, userID)
}

func splitUserTurn(content string) (string, string) {
	idx := strings.LastIndex(content, "\n\n"+userIDLabel)
	if idx < 0 {
		return content, ""
	}
	return content[:idx], strings.TrimSpace(content[idx+len("\n\n"+userIDLabel):])
}

// offlineClient plays the agent's part with fixed rules: look the user up,
// search the docs, answer from the docs when something matched, otherwise
// file a ticket at the priority the engine assigns.
type offlineClient struct{}

// NewOfflineClient returns the deterministic AgentClient.
func NewOfflineClient() AgentClient {
	return offlineClient{}
}

func (offlineClient) Model() string {
	return offlineModel
}

func (offlineClient) ChatWithTools(ctx context.Context, req AgentRequest) (*AgentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, userID := "", ""
	for _, msg := range req.Messages {
		if msg.Role == RoleUser {
			input, userID = splitUserTurn(msg.Content)
			break
		}
	}
	input = strings.TrimSpace(input)

	results := toolResultsByName(req.Messages)

	if created, ok := results["createTicket"]; ok {
		return stop(confirmTicket(created)), nil
	}

	docs, searched := results["searchDocs"]
	userJSON, looked := results["getUserContext"]
	if !searched || !looked {
		return toolCalls(len(req.Messages),
			call("getUserContext", map[string]string{"userId": userID}),
			call("searchDocs", map[string]string{"query": input}),
		), nil
	}

	if strings.HasPrefix(docs, docsFoundPrefix) {
		return stop("Here's what I found in our documentation:\n\n" + strings.TrimPrefix(docs, docsFoundPrefix)), nil
	}

	user := domain.AnonymousUser(userID)
	_ = json.Unmarshal([]byte(userJSON), &user)
	p := priority.Determine(user, input)

	return toolCalls(len(req.Messages),
		call("createTicket", map[string]string{"title": ticketTitle(input), "priority": string(p)}),
	), nil
}

func toolResultsByName(msgs []Message) map[string]string {
	names := make(map[string]string)
	results := make(map[string]string)
	for _, msg := range msgs {
		switch msg.Role {
		case RoleAssistant:
			for _, tc := range msg.ToolCalls {
				names[tc.ID] = tc.Name
			}
		case RoleTool:
			if name, ok := names[msg.ToolCallID]; ok {
				results[name] = msg.Content
			}
		}
	}
	return results
}

func call(name string, args map[string]string) ToolCall {
	raw, _ := json.Marshal(args)
	return ToolCall{Name: name, Arguments: string(raw)}
}

func toolCalls(turn int, calls ...ToolCall) *AgentResponse {
	for i := range calls {
		calls[i].ID = fmt.Sprintf("call_%d_%d", turn, i)
	}
	return &AgentResponse{ToolCalls: calls, FinishReason: FinishToolCalls}
}

func stop(content string) *AgentResponse {
	return &AgentResponse{Content: content, FinishReason: FinishStop}
}

func confirmTicket(result string) string {
	var ticket struct {
		TicketID string          `json:"ticketId"`
		Priority domain.Priority `json:"priority"`
		Error    string          `json:"error"`
	}
	if err := json.Unmarshal([]byte(result), &ticket); err != nil || ticket.Error != "" || ticket.TicketID == "" {
		return "I'm sorry, I couldn't create a support ticket for this issue. Please try again or contact support directly."
	}

	switch ticket.Priority {
	case domain.PriorityHigh:
		return fmt.Sprintf("I've created a high priority support ticket (%s). Our team has been alerted and will reach out to you as soon as possible.", ticket.TicketID)
	case domain.PriorityMedium:
		return fmt.Sprintf("I've created a support ticket (%s) with medium priority. Our team will look into it shortly.", ticket.TicketID)
	default:
		return fmt.Sprintf("I've created a support ticket (%s). Our team will get back to you when they can.", ticket.TicketID)
	}
}

// ticketTitle keeps the first line of the request, shortened to a title.
func ticketTitle(input string) string {
	title, _, _ := strings.Cut(input, "\n")
	title = strings.TrimSpace(title)
	if title == "" {
		return "Support request"
	}
	if utf8.RuneCountInString(title) <= maxTitleRunes {
		return title
	}
	runes := []rune(title)
	return strings.TrimSpace(string(runes[:maxTitleRunes-3])) + "..."
}
