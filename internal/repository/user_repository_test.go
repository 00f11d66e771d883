package repository_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/repository"
)

var _ = Describe("UserRepository", func() {
	var (
		table map[string]domain.UserContext
		users repository.UserRepository
	)

	BeforeEach(func() {
		table = map[string]domain.UserContext{
			"user-pro": {UserID: "user-pro", Plan: domain.PlanPro, Role: domain.RoleAdmin, RecentActivity: []string{"page_view"}},
		}
		users = repository.NewUserRepository(table, 0, zap.NewNop())
	})

	It("returns known users", func() {
		u, err := users.Lookup(context.Background(), "user-pro")
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Plan).To(Equal(domain.PlanPro))
		Expect(u.Role).To(Equal(domain.RoleAdmin))
	})

	It("defaults unknown users to an anonymous free profile", func() {
		u, err := users.Lookup(context.Background(), "ghost")
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(Equal(domain.UserContext{
			UserID:         "ghost",
			Plan:           domain.PlanFree,
			Role:           domain.RoleUser,
			RecentActivity: []string{},
		}))
	})

	It("hands out snapshots the caller cannot use to mutate the directory", func() {
		u, _ := users.Lookup(context.Background(), "user-pro")
		u.RecentActivity[0] = "tampered"
		table["user-pro"].RecentActivity[0] = "tampered too"

		again, _ := users.Lookup(context.Background(), "user-pro")
		Expect(again.RecentActivity).To(Equal([]string{"page_view"}))
	})
})
