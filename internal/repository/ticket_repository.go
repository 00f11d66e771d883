package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/support-agent/internal/domain"
)

// TicketRepository encapsulates ticket storage for the process lifetime.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	Reset(ctx context.Context) error
}

type ticketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

// NewTicketRepository instantiates an empty in-memory repository.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append(r.tickets, *ticket)
	return nil
}

// GetByID returns ErrNotFound when no ticket carries id.
func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tickets {
		if r.tickets[i].TicketID == id {
			t := r.tickets[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// List returns a copy in creation order.
func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Ticket, len(r.tickets))
	copy(out, r.tickets)
	return out, nil
}

func (r *ticketRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = nil
	return nil
}
