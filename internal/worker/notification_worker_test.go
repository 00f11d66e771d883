package worker_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/support-agent/internal/events"
	"github.com/spec-kit/support-agent/internal/worker"
)

type recordingNotifier struct {
	mu   sync.Mutex
	seen []string
	err  error
}

func (r *recordingNotifier) HandleTicketCreated(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, event.TicketID)
	return r.err
}

func (r *recordingNotifier) tickets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

var _ = Describe("NotificationWorker", func() {
	var (
		dispatcher events.Dispatcher
		notifier   *recordingNotifier
	)

	BeforeEach(func() {
		dispatcher = events.NewInMemoryDispatcher()
		notifier = &recordingNotifier{}
	})

	It("delivers published ticket events", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w := worker.NewNotificationWorker(notifier, nil, 4)
		worker.StartNotificationWorker(ctx, dispatcher, w)

		Expect(dispatcher.Publish(ctx, events.Event{Type: events.EventTicketCreated, TicketID: "T-1"})).To(Succeed())
		Expect(dispatcher.Publish(ctx, events.Event{Type: events.EventTicketCreated, TicketID: "T-2"})).To(Succeed())

		Eventually(notifier.tickets).Should(Equal([]string{"T-1", "T-2"}))
	})

	It("drains queued events on shutdown", func() {
		ctx, cancel := context.WithCancel(context.Background())
		w := worker.NewNotificationWorker(notifier, nil, 8)
		worker.StartNotificationWorker(ctx, dispatcher, w)

		for _, id := range []string{"a", "b", "c"} {
			Expect(dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated, TicketID: id})).To(Succeed())
		}
		cancel()
		w.Wait()

		Expect(notifier.tickets()).To(ConsistOf("a", "b", "c"))
	})

	It("keeps going when a notification fails", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		notifier.err = errors.New("smtp down")
		w := worker.NewNotificationWorker(notifier, nil, 4)
		worker.StartNotificationWorker(ctx, dispatcher, w)

		Expect(dispatcher.Publish(ctx, events.Event{Type: events.EventTicketCreated, TicketID: "x"})).To(Succeed())
		Expect(dispatcher.Publish(ctx, events.Event{Type: events.EventTicketCreated, TicketID: "y"})).To(Succeed())
		Eventually(notifier.tickets).Should(HaveLen(2))
	})

	It("is a no-op without a dispatcher", func() {
		Expect(func() {
			worker.StartNotificationWorker(context.Background(), nil, worker.NewNotificationWorker(notifier, nil, 1))
		}).NotTo(Panic())
	})
})
