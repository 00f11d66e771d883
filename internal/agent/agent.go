// Package agent runs the tool-calling loop that answers support requests.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/llm"
	"github.com/spec-kit/support-agent/internal/observability"
	"github.com/spec-kit/support-agent/internal/priority"
)

// ApologyMessage is the reply used whenever a run fails.
const ApologyMessage = "I apologize, but I encountered an error processing your request. Please try again or contact support."

const noResponse = "No response generated"

// ErrEmptyRequest is reported for blank requests.
var ErrEmptyRequest = errors.New("request cannot be empty")

// Result is the outcome of a single request.
type Result struct {
	Success   bool             `json:"success"`
	Response  string           `json:"response"`
	Error     string           `json:"error,omitempty"`
	ToolCalls []ToolInvocation `json:"toolCalls"`
}

// ToolInvocation records one tool call made during a run.
type ToolInvocation struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Output    string `json:"output"`
	Failed    bool   `json:"failed"`
}

// Options tunes the model calls.
type Options struct {
	MaxSteps    int
	MaxTokens   int
	Temperature *float64
}

// Agent answers support requests with a model and the support tools.
type Agent struct {
	client  llm.AgentClient
	tools   *Toolbox
	metrics *observability.Metrics
	logger  *zap.Logger
	opts    Options
}

// New constructs an Agent.
func New(client llm.AgentClient, tools *Toolbox, metrics *observability.Metrics, logger *zap.Logger, opts Options) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 6
	}
	return &Agent{client: client, tools: tools, metrics: metrics, logger: logger, opts: opts}
}

// Model names the underlying language model.
func (a *Agent) Model() string {
	return a.client.Model()
}

// Execute answers input on behalf of userID. Failures never escape: they
// are logged and turned into an apologetic Result.
func (a *Agent) Execute(ctx context.Context, input, userID string) Result {
	input = strings.TrimSpace(input)
	logger := a.logger.With(zap.String("user_id", userID))
	logger.Info("processing request", zap.String("input", input), zap.String("model", a.client.Model()))

	r := &run{agent: a, input: input, logger: logger}
	response, err := r.loop(ctx, userID)
	if err != nil {
		logger.Error("agent execution failed", zap.Error(err), zap.Int("tool_calls", len(r.calls)))
		return Result{Success: false, Response: ApologyMessage, Error: err.Error(), ToolCalls: r.invocations()}
	}
	logger.Info("request completed", zap.Int("tool_calls", len(r.calls)))
	return Result{Success: true, Response: response, ToolCalls: r.invocations()}
}

// run holds the state of one Execute call.
type run struct {
	agent  *Agent
	input  string
	logger *zap.Logger
	calls  []ToolInvocation
	user   *domain.UserContext
}

func (r *run) loop(ctx context.Context, userID string) (string, error) {
	if r.input == "" {
		return "", ErrEmptyRequest
	}

	a := r.agent
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: llm.UserTurn(r.input, userID)},
	}
	tools := a.tools.Definitions()

	for step := 0; step < a.opts.MaxSteps; step++ {
		resp, err := a.client.ChatWithTools(ctx, llm.AgentRequest{
			Messages:    messages,
			Tools:       tools,
			MaxTokens:   a.opts.MaxTokens,
			Temperature: a.opts.Temperature,
		})
		if err != nil {
			return "", fmt.Errorf("model call: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			content := strings.TrimSpace(resp.Content)
			if content == "" {
				content = noResponse
			}
			return content, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: call.ID,
				Content:    r.execute(ctx, call),
			})
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("no final answer after %d steps", a.opts.MaxSteps)
}

// execute runs one tool call. Tool failures are handed back to the model.
func (r *run) execute(ctx context.Context, call llm.ToolCall) string {
	r.agent.metrics.RecordToolCall(call.Name)
	r.logger.Info("tool call", zap.String("tool", call.Name), zap.String("arguments", call.Arguments))

	invocation := ToolInvocation{Name: call.Name, Arguments: call.Arguments}
	outcome, err := r.agent.tools.invoke(ctx, call)
	if err != nil {
		r.logger.Warn("tool call failed", zap.String("tool", call.Name), zap.Error(err))
		invocation.Output = errorResult(err)
		invocation.Failed = true
		r.calls = append(r.calls, invocation)
		return invocation.Output
	}

	if outcome.user != nil {
		r.user = outcome.user
	}
	if outcome.ticket != nil {
		r.checkPriority(outcome.ticket)
	}

	invocation.Output = outcome.content
	r.calls = append(r.calls, invocation)
	return outcome.content
}

// checkPriority compares the model's choice with the priority engine. The
// model's choice always stands.
func (r *run) checkPriority(ticket *domain.Ticket) {
	if r.user == nil {
		return
	}
	expected := priority.Determine(*r.user, r.input)
	r.logger.Info("priority check",
		zap.String("ticket_id", ticket.TicketID),
		zap.String("explanation", priority.Explain(*r.user, r.input, expected)),
	)
	if expected != ticket.Priority {
		r.logger.Warn("ticket priority differs from rules",
			zap.String("ticket_id", ticket.TicketID),
			zap.String("assigned", string(ticket.Priority)),
			zap.String("expected", string(expected)),
		)
	}
}

func (r *run) invocations() []ToolInvocation {
	out := make([]ToolInvocation, len(r.calls))
	copy(out, r.calls)
	return out
}
