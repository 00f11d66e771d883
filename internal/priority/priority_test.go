package priority_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/priority"
)

func user(plan domain.Plan, activity ...string) domain.UserContext {
	if activity == nil {
		activity = []string{}
	}
	return domain.UserContext{UserID: "u", Plan: plan, Role: domain.RoleUser, RecentActivity: activity}
}

var _ = Describe("Determine", func() {
	DescribeTable("documented scenarios",
		func(u domain.UserContext, description string, expected domain.Priority) {
			Expect(priority.Determine(u, description)).To(Equal(expected))
		},
		Entry("enterprise blocked from billing with billing error", user(domain.PlanEnterprise, "billing_error"), "I'm blocked from billing", domain.PriorityHigh),
		Entry("pro minor glitch", user(domain.PlanPro), "minor UI glitch", domain.PriorityMedium),
		Entry("free app down", user(domain.PlanFree), "the app is down", domain.PriorityMedium),
		Entry("free avatar question", user(domain.PlanFree), "how do I change my avatar", domain.PriorityLow),
		Entry("enterprise feature request is still paid", user(domain.PlanEnterprise), "feature request: dark mode", domain.PriorityMedium),
	)

	DescribeTable("decision table",
		func(u domain.UserContext, description string, expected domain.Priority) {
			Expect(priority.Determine(u, description)).To(Equal(expected))
		},
		Entry("enterprise urgent", user(domain.PlanEnterprise), "URGENT please", domain.PriorityHigh),
		Entry("enterprise critical activity only", user(domain.PlanEnterprise, "old_security_alert_42"), "question about exports", domain.PriorityHigh),
		Entry("pro urgent", user(domain.PlanPro), "payment page broken", domain.PriorityHigh),
		Entry("pro critical activity does not escalate", user(domain.PlanPro, "payment_failed"), "question about exports", domain.PriorityMedium),
		Entry("free critical activity does not escalate", user(domain.PlanFree, "security_alert"), "question about exports", domain.PriorityLow),
		Entry("free urgent", user(domain.PlanFree), "I cannot access my account", domain.PriorityMedium),
		Entry("free apostrophe variant", user(domain.PlanFree), "I can't access anything", domain.PriorityMedium),
		Entry("empty description for free", user(domain.PlanFree), "", domain.PriorityLow),
		Entry("empty description for pro", user(domain.PlanPro), "", domain.PriorityMedium),
		Entry("substring over-match is kept", user(domain.PlanFree), "meet me downtown", domain.PriorityMedium),
	)

	It("ignores role", func() {
		admin := user(domain.PlanFree)
		admin.Role = domain.RoleOwner
		Expect(priority.Determine(admin, "avatar")).To(Equal(priority.Determine(user(domain.PlanFree), "avatar")))
	})

	It("is deterministic and does not mutate its input", func() {
		u := user(domain.PlanEnterprise, "billing_error", "login_issue")
		first := priority.Determine(u, "Security incident")
		second := priority.Determine(u, "Security incident")
		Expect(first).To(Equal(second))
		Expect(u.RecentActivity).To(Equal([]string{"billing_error", "login_issue"}))
	})

	It("never returns an invalid level", func() {
		for _, plan := range []domain.Plan{domain.PlanFree, domain.PlanPro, domain.PlanEnterprise} {
			for _, text := range []string{"", "urgent", "hello", "payment"} {
				Expect(priority.Determine(user(plan), text).Valid()).To(BeTrue())
			}
		}
	})
})

var _ = Describe("Explain", func() {
	It("summarises plan, loose keywords and priority", func() {
		u := user(domain.PlanPro)
		Expect(priority.Explain(u, "We are BLOCKED", domain.PriorityHigh)).
			To(Equal("Priority: HIGH - User: pro plan, Issue contains urgent keywords: true"))
	})

	It("uses a narrower keyword set than Determine", func() {
		u := user(domain.PlanFree)
		p := priority.Determine(u, "the app is down")
		Expect(p).To(Equal(domain.PriorityMedium))
		Expect(priority.Explain(u, "the app is down", p)).
			To(Equal("Priority: MEDIUM - User: free plan, Issue contains urgent keywords: false"))
	})
})
