package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/events"
	"github.com/spec-kit/support-agent/internal/observability"
	"github.com/spec-kit/support-agent/internal/repository"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// TicketService validates and files support tickets.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	latency    time.Duration
	now        func() time.Time
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Latency    time.Duration
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		latency:    deps.Latency,
		now:        now,
	}
}

// CreateTicket files a ticket. Blank titles and unknown priorities are
// rejected with a validation error and nothing is stored.
func (s *TicketService) CreateTicket(ctx context.Context, title string, priority domain.Priority) (*domain.Ticket, error) {
	s.logger.Info("creating ticket", zap.String("title", title), zap.String("priority", string(priority)))
	if err := repository.SimulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errorutil.NewValidationError("Ticket title cannot be empty", nil)
	}
	if !priority.Valid() {
		return nil, errorutil.NewValidationError("Invalid priority level", map[string]any{"priority": string(priority)})
	}

	createdAt := s.now()
	ticket := &domain.Ticket{
		TicketID:  generateTicketID(createdAt),
		Title:     title,
		Priority:  priority,
		CreatedAt: createdAt,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("store ticket: %w", err)
	}

	s.metrics.RecordTicket(ticket.Priority)
	s.logger.Info("ticket created", zap.String("ticket_id", ticket.TicketID))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.TicketID,
		Actor:    events.Actor{Type: "agent"},
		Payload: events.TicketCreatedPayload{
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// GetTicket returns a ticket by ID.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	return ticket, nil
}

// ListTickets returns all tickets filed during this process.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// ClearTickets drops every stored ticket.
func (s *TicketService) ClearTickets(ctx context.Context) error {
	return s.tickets.Reset(ctx)
}

func generateTicketID(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TICKET-%d-%s", at.UnixMilli(), suffix)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
