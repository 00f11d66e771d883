package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-agent/internal/api/dto"
	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/priority"
	"github.com/spec-kit/support-agent/internal/repository"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// PriorityHandler exposes the rule based priority engine.
type PriorityHandler struct {
	users repository.UserRepository
}

// NewPriorityHandler constructs handler.
func NewPriorityHandler(users repository.UserRepository) *PriorityHandler {
	return &PriorityHandler{users: users}
}

// Determine handles POST /v1/priority.
func (h *PriorityHandler) Determine(c *fiber.Ctx) error {
	var req dto.PriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	user, err := h.resolveUser(c, req)
	if err != nil {
		return err
	}

	p := priority.Determine(user, req.Description)
	return c.JSON(fiber.Map{"data": dto.PriorityResponse{
		Priority:    string(p),
		Explanation: priority.Explain(user, req.Description, p),
	}})
}

func (h *PriorityHandler) resolveUser(c *fiber.Ctx, req dto.PriorityRequest) (domain.UserContext, error) {
	if req.User == nil {
		userID := strings.TrimSpace(req.UserID)
		if userID == "" {
			return domain.UserContext{}, errorutil.NewValidationError("userId or user required", nil)
		}
		return h.users.Lookup(c.UserContext(), userID)
	}

	plan, err := domain.ParsePlan(req.User.Plan)
	if err != nil {
		return domain.UserContext{}, errorutil.NewValidationError(err.Error(), map[string]any{"field": "user.plan"})
	}
	role := domain.RoleUser
	if req.User.Role != "" {
		if role, err = domain.ParseRole(req.User.Role); err != nil {
			return domain.UserContext{}, errorutil.NewValidationError(err.Error(), map[string]any{"field": "user.role"})
		}
	}
	activity := req.User.RecentActivity
	if activity == nil {
		activity = []string{}
	}
	return domain.UserContext{UserID: req.UserID, Plan: plan, Role: role, RecentActivity: activity}, nil
}
