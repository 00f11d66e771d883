package domain

import (
	"fmt"
	"strings"
)

// Plan is the subscription tier of a user account.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Role is the account role of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// ParsePlan converts boundary input into a Plan, rejecting unknown tiers.
func ParsePlan(raw string) (Plan, error) {
	switch p := Plan(strings.ToLower(strings.TrimSpace(raw))); p {
	case PlanFree, PlanPro, PlanEnterprise:
		return p, nil
	default:
		return "", fmt.Errorf("unknown plan %q", raw)
	}
}

// ParseRole converts boundary input into a Role, rejecting unknown roles.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleUser, RoleAdmin, RoleOwner:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// UserContext is the account snapshot returned by the user directory.
type UserContext struct {
	UserID         string   `json:"userId"`
	Plan           Plan     `json:"plan"`
	Role           Role     `json:"role"`
	RecentActivity []string `json:"recentActivity"`
}

// AnonymousUser is the profile handed out for IDs the directory does not know.
func AnonymousUser(userID string) UserContext {
	return UserContext{
		UserID:         userID,
		Plan:           PlanFree,
		Role:           RoleUser,
		RecentActivity: []string{},
	}
}

// Clone returns a copy that does not share the activity slice.
func (u UserContext) Clone() UserContext {
	activity := make([]string, len(u.RecentActivity))
	copy(activity, u.RecentActivity)
	u.RecentActivity = activity
	return u
}
