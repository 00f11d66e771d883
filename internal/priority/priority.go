// Package priority decides how urgently a support ticket should be handled.
//
// Matching is plain substring containment on the lower-cased text, so "down"
// also fires on "download" or "downtown". Callers relying on exact keyword
// semantics should not use this package.
package priority

import (
	"fmt"
	"strings"

	"github.com/spec-kit/support-agent/internal/domain"
)

var urgentKeywords = []string{
	"urgent",
	"critical",
	"blocked",
	"can't access",
	"cannot access",
	"down",
	"broken",
	"billing",
	"payment",
	"security",
}

var criticalActivities = []string{
	"billing_error",
	"payment_failed",
	"security_alert",
}

// Determine returns the ticket priority for an issue raised by user.
// It is pure: equal inputs always produce equal output.
func Determine(user domain.UserContext, issueDescription string) domain.Priority {
	description := strings.ToLower(issueDescription)

	isUrgent := containsAny(description, urgentKeywords)
	isEnterprise := user.Plan == domain.PlanEnterprise
	isPaid := user.Plan == domain.PlanPro || isEnterprise
	hasCriticalActivity := anyContains(user.RecentActivity, criticalActivities)

	switch {
	case isEnterprise && (isUrgent || hasCriticalActivity):
		return domain.PriorityHigh
	case isPaid && isUrgent:
		return domain.PriorityHigh
	case isPaid || (user.Plan == domain.PlanFree && isUrgent):
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// Explain renders a one-line audit string for logs.
//
// The keyword flag only looks for "urgent" and "blocked"; it is a debugging
// hint and does not reflect the rule Determine applies.
func Explain(user domain.UserContext, issueDescription string, p domain.Priority) string {
	description := strings.ToLower(issueDescription)
	loose := strings.Contains(description, "urgent") || strings.Contains(description, "blocked")
	return fmt.Sprintf("Priority: %s - User: %s plan, Issue contains urgent keywords: %t",
		strings.ToUpper(string(p)), user.Plan, loose)
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func anyContains(haystacks []string, needles []string) bool {
	for _, h := range haystacks {
		if containsAny(h, needles) {
			return true
		}
	}
	return false
}
