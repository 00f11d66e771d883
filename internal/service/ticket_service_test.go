package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/events"
	"github.com/spec-kit/support-agent/internal/observability"
	"github.com/spec-kit/support-agent/internal/repository"
	"github.com/spec-kit/support-agent/internal/service"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

var _ = Describe("TicketService", func() {
	var (
		ctx        context.Context
		repo       repository.TicketRepository
		dispatcher events.Dispatcher
		metrics    *observability.Metrics
		svc        *service.TicketService
		fixed      time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = repository.NewTicketRepository()
		dispatcher = events.NewInMemoryDispatcher()
		metrics = observability.NewMetrics()
		fixed = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		svc = service.NewTicketService(service.TicketDependencies{
			TicketRepo: repo,
			Dispatcher: dispatcher,
			Metrics:    metrics,
			Logger:     zap.NewNop(),
			Now:        func() time.Time { return fixed },
		})
	})

	It("creates a trimmed ticket with a unique id", func() {
		first, err := svc.CreateTicket(ctx, "  App crashes after login  ", domain.PriorityHigh)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Title).To(Equal("App crashes after login"))
		Expect(first.Priority).To(Equal(domain.PriorityHigh))
		Expect(first.CreatedAt).To(Equal(fixed))
		Expect(first.TicketID).To(MatchRegexp(`^TICKET-\d+-[0-9A-F]{8}$`))

		second, err := svc.CreateTicket(ctx, "Another", domain.PriorityLow)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.TicketID).NotTo(Equal(first.TicketID))

		list, _ := svc.ListTickets(ctx)
		Expect(list).To(HaveLen(2))
		Expect(metrics.Snapshot().Tickets[domain.PriorityHigh]).To(BeEquivalentTo(1))
	})

	DescribeTable("rejects invalid input without storing anything",
		func(title string, p domain.Priority, message string) {
			_, err := svc.CreateTicket(ctx, title, p)
			Expect(errorutil.IsValidation(err)).To(BeTrue())
			Expect(errorutil.ToDomainError(err).Message).To(Equal(message))
			list, _ := svc.ListTickets(ctx)
			Expect(list).To(BeEmpty())
		},
		Entry("empty title", "", domain.PriorityLow, "Ticket title cannot be empty"),
		Entry("whitespace title", "   \t", domain.PriorityHigh, "Ticket title cannot be empty"),
		Entry("unknown priority", "Broken export", domain.Priority("urgent"), "Invalid priority level"),
	)

	It("publishes ticket_created", func() {
		var got events.Event
		dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, e events.Event) error {
			got = e
			return nil
		})
		ticket, err := svc.CreateTicket(ctx, "Billing page broken", domain.PriorityMedium)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.TicketID).To(Equal(ticket.TicketID))
		Expect(got.ID).NotTo(BeEmpty())
		Expect(got.Payload).To(Equal(events.TicketCreatedPayload{Priority: domain.PriorityMedium, Title: "Billing page broken"}))
	})

	It("runs registered notification handlers on creation", func() {
		service.NewNotificationService(dispatcher, zap.NewNop(), config.NotificationConfig{EmailFrom: "a@b.c"}).RegisterHandlers()
		_, err := svc.CreateTicket(ctx, "Works", domain.PriorityLow)
		Expect(err).NotTo(HaveOccurred())
	})

	It("gets and clears tickets", func() {
		ticket, _ := svc.CreateTicket(ctx, "Find me", domain.PriorityLow)
		found, err := svc.GetTicket(ctx, ticket.TicketID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.Title).To(Equal("Find me"))

		_, err = svc.GetTicket(ctx, "TICKET-0-NOPE")
		Expect(errorutil.ToDomainError(err).Code).To(Equal("NOT_FOUND"))

		Expect(svc.ClearTickets(ctx)).To(Succeed())
		list, _ := svc.ListTickets(ctx)
		Expect(list).To(BeEmpty())
	})
})
