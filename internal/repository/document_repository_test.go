package repository_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/catalog"
	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/repository"
)

var _ = Describe("DocumentRepository", func() {
	var docs repository.DocumentRepository

	BeforeEach(func() {
		cat, err := catalog.Default()
		Expect(err).NotTo(HaveOccurred())
		docs = repository.NewDocumentRepository(cat.Documents, 0, zap.NewNop())
	})

	DescribeTable("keyword matching",
		func(query string, found bool, topic string) {
			res, err := docs.Search(context.Background(), query)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Found).To(Equal(found))
			Expect(res.Topic).To(Equal(topic))
		},
		Entry("password question", "How do I reset my password?", true, "password reset"),
		Entry("case insensitive", "INVOICE missing", true, "billing"),
		Entry("first match in corpus order wins", "login to billing", true, "password reset"),
		Entry("topic contains the query", "manage", true, "user management"),
		Entry("multi word keyword", "please add user alice", true, "user management"),
		Entry("nothing relevant", "the app keeps crashing", false, ""),
		Entry("blank query", "   ", false, ""),
	)

	It("returns the document content", func() {
		res, err := docs.Search(context.Background(), "webhook")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Content).To(ContainSubstring("Settings > Integrations > Webhooks"))
	})

	It("honours cancellation while simulating latency", func() {
		slow := repository.NewDocumentRepository(nil, time.Minute, zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := slow.Search(ctx, "billing")
		Expect(err).To(MatchError(context.Canceled))
	})

	It("does not alias the caller's corpus", func() {
		corpus := []domain.Document{{Topic: "vpn", Keywords: []string{"vpn"}, Content: "a"}}
		repo := repository.NewDocumentRepository(corpus, 0, zap.NewNop())
		corpus[0].Content = "b"
		res, _ := repo.Search(context.Background(), "vpn")
		Expect(res.Content).To(Equal("a"))
	})
})

var _ = Describe("RenderSearchResult", func() {
	It("renders hits with topic header", func() {
		Expect(repository.RenderSearchResult(domain.SearchResult{Found: true, Topic: "billing", Content: "x"})).
			To(Equal("Documentation: billing\n\nx"))
	})

	It("renders misses with the ticket hint", func() {
		Expect(repository.RenderSearchResult(domain.SearchResult{})).To(Equal(repository.NoDocumentationMessage))
	})
})
