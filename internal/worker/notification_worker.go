package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/events"
)

// Notifier reacts to a ticket_created event.
type Notifier interface {
	HandleTicketCreated(ctx context.Context, event events.Event) error
}

// NotificationWorker moves notifications off the request path. Events are
// queued by the dispatcher and delivered by a single goroutine.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event
	wg       sync.WaitGroup
	once     sync.Once
}

// NewNotificationWorker creates a worker with the given queue size.
func NewNotificationWorker(notifier Notifier, logger *zap.Logger, buffer int) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &NotificationWorker{notifier: notifier, logger: logger, queue: make(chan events.Event, buffer)}
}

// StartNotificationWorker subscribes the worker to ticket events and starts
// delivery. It stops when ctx is done; Wait blocks until the queue is drained.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, w *NotificationWorker) {
	if dispatcher == nil || w == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, w.enqueue)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Wait blocks until the delivery goroutine has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

// enqueue never blocks the publisher; a full queue drops the event.
func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event", zap.String("ticket_id", event.TicketID))
	}
	return nil
}

func (w *NotificationWorker) run(ctx context.Context) {
	for {
		select {
		case event := <-w.queue:
			w.deliver(event)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

func (w *NotificationWorker) drain() {
	w.once.Do(func() {
		for {
			select {
			case event := <-w.queue:
				w.deliver(event)
			default:
				return
			}
		}
	})
}

func (w *NotificationWorker) deliver(event events.Event) {
	if err := w.notifier.HandleTicketCreated(context.Background(), event); err != nil {
		w.logger.Warn("notification failed", zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
}
