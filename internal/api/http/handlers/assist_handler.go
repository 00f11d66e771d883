package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-agent/internal/agent"
	"github.com/spec-kit/support-agent/internal/api/dto"
	"github.com/spec-kit/support-agent/internal/ratelimit"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// AssistHandler forwards support requests to the agent.
type AssistHandler struct {
	agent         *agent.Agent
	limiter       *ratelimit.Limiter
	defaultUserID string
}

// NewAssistHandler constructs handler. limiter may be nil.
func NewAssistHandler(a *agent.Agent, limiter *ratelimit.Limiter, defaultUserID string) *AssistHandler {
	return &AssistHandler{agent: a, limiter: limiter, defaultUserID: defaultUserID}
}

// Assist handles POST /v1/assist.
func (h *AssistHandler) Assist(c *fiber.Ctx) error {
	var req dto.AssistRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Input) == "" {
		return errorutil.NewValidationError("input required", nil)
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = h.defaultUserID
	}

	if !h.limiter.Allow(c.UserContext(), userID) {
		return errorutil.NewTooManyRequests("too many assist requests, slow down")
	}

	res := h.agent.Execute(c.UserContext(), req.Input, userID)
	calls := make([]dto.ToolCallRecord, 0, len(res.ToolCalls))
	for _, tc := range res.ToolCalls {
		calls = append(calls, dto.ToolCallRecord{
			Name:      tc.Name,
			Arguments: tc.Arguments,
			Output:    tc.Output,
			Failed:    tc.Failed,
		})
	}
	return c.JSON(fiber.Map{"data": dto.AssistResponse{
		Success:   res.Success,
		Response:  res.Response,
		Error:     res.Error,
		Model:     h.agent.Model(),
		ToolCalls: calls,
	}})
}
