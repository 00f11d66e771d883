package app_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/app"
	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/llm"
)

func offlineConfig() *config.Config {
	return &config.Config{
		LLM:   config.LLMConfig{Provider: llm.ProviderOffline, Temperature: 0.3},
		Agent: config.AgentConfig{MaxSteps: 6, DefaultUserID: "user-1"},
	}
}

var _ = Describe("Build", func() {
	It("wires a working offline assistant from the embedded catalog", func() {
		components, err := app.Build(offlineConfig(), zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(components.Catalog.Documents).To(HaveLen(5))
		Expect(components.Agent.Model()).To(Equal("offline-rules"))

		res := components.Agent.Execute(context.Background(), "I'm blocked from billing", "user-blocked")
		Expect(res.Success).To(BeTrue())

		stored, err := components.Tickets.ListTickets(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(stored).To(BeEmpty(), "billing questions are answered from the docs")
	})

	It("fails without credentials for hosted providers", func() {
		cfg := offlineConfig()
		cfg.LLM.Provider = llm.ProviderAnthropic
		_, err := app.Build(cfg, zap.NewNop())
		Expect(err).To(MatchError(llm.ErrMissingAPIKey))
	})

	It("loads fixtures from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "fixtures.yaml")
		Expect(os.WriteFile(path, []byte(`documents:
  - topic: sso
    keywords: [sso, saml]
    content: Configure SSO under Settings.
users:
  - userId: acme
    plan: pro
    role: owner
    recentActivity: []
`), 0o600)).To(Succeed())

		cfg := offlineConfig()
		cfg.Fixtures.Path = path
		components, err := app.Build(cfg, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(components.Catalog.Documents).To(HaveLen(1))

		user, err := components.Users.Lookup(context.Background(), "acme")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(user.Plan)).To(Equal("pro"))
	})

	It("reports unreadable fixture files", func() {
		cfg := offlineConfig()
		cfg.Fixtures.Path = "/does/not/exist.yaml"
		_, err := app.Build(cfg, zap.NewNop())
		Expect(err).To(MatchError(ContainSubstring("load fixtures")))
	})
})
