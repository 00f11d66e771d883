package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/domain"
)

// UserRepository resolves account context for a user ID.
type UserRepository interface {
	Lookup(ctx context.Context, userID string) (domain.UserContext, error)
}

type userRepository struct {
	users   map[string]domain.UserContext
	latency time.Duration
	logger  *zap.Logger
}

// NewUserRepository returns a directory backed by a fixed table.
func NewUserRepository(users map[string]domain.UserContext, latency time.Duration, logger *zap.Logger) UserRepository {
	table := make(map[string]domain.UserContext, len(users))
	for id, u := range users {
		table[id] = u.Clone()
	}
	return &userRepository{users: table, latency: latency, logger: logger}
}

// Lookup never fails for unknown IDs; it hands out the anonymous free profile.
func (r *userRepository) Lookup(ctx context.Context, userID string) (domain.UserContext, error) {
	r.logger.Info("fetching user context", zap.String("user_id", userID))
	if err := SimulateLatency(ctx, r.latency); err != nil {
		return domain.UserContext{}, err
	}

	user, ok := r.users[userID]
	if !ok {
		user = domain.AnonymousUser(userID)
	}
	r.logger.Info("user context",
		zap.String("user_id", userID),
		zap.String("plan", string(user.Plan)),
		zap.String("role", string(user.Role)),
		zap.Bool("known", ok),
	)
	return user.Clone(), nil
}
