package repository_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/repository"
)

var _ = Describe("TicketRepository", func() {
	var (
		ctx     context.Context
		tickets repository.TicketRepository
	)

	BeforeEach(func() {
		ctx = context.Background()
		tickets = repository.NewTicketRepository()
	})

	It("stores tickets in creation order and lists copies", func() {
		for _, id := range []string{"A", "B"} {
			Expect(tickets.Create(ctx, &domain.Ticket{TicketID: id, Title: id, Priority: domain.PriorityLow, CreatedAt: time.Now()})).To(Succeed())
		}
		list, err := tickets.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
		Expect(list[0].TicketID).To(Equal("A"))

		list[0].Title = "changed"
		fresh, _ := tickets.List(ctx)
		Expect(fresh[0].Title).To(Equal("A"))
	})

	It("finds tickets by id", func() {
		Expect(tickets.Create(ctx, &domain.Ticket{TicketID: "X", Title: "x", Priority: domain.PriorityHigh})).To(Succeed())
		t, err := tickets.GetByID(ctx, "X")
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Priority).To(Equal(domain.PriorityHigh))

		_, err = tickets.GetByID(ctx, "missing")
		Expect(err).To(MatchError(repository.ErrNotFound))
	})

	It("resets", func() {
		Expect(tickets.Create(ctx, &domain.Ticket{TicketID: "X"})).To(Succeed())
		Expect(tickets.Reset(ctx)).To(Succeed())
		list, _ := tickets.List(ctx)
		Expect(list).To(BeEmpty())
	})

	It("accepts concurrent creates", func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()
				id := fmt.Sprintf("T-%d", i)
				Expect(tickets.Create(ctx, &domain.Ticket{TicketID: id, Title: id, Priority: domain.PriorityLow})).To(Succeed())
			}(i)
		}
		wg.Wait()
		list, err := tickets.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(50))
	})
})
