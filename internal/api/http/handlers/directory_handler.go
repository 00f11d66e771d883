package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-agent/internal/repository"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// DirectoryHandler exposes the documentation and user lookups.
type DirectoryHandler struct {
	docs  repository.DocumentRepository
	users repository.UserRepository
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(docs repository.DocumentRepository, users repository.UserRepository) *DirectoryHandler {
	return &DirectoryHandler{docs: docs, users: users}
}

// SearchDocs handles GET /v1/docs/search?q=.
func (h *DirectoryHandler) SearchDocs(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return errorutil.NewValidationError("q required", nil)
	}
	res, err := h.docs.Search(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res})
}

// GetUser handles GET /v1/users/:id. Unknown IDs resolve to the free profile.
func (h *DirectoryHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.Lookup(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}
