package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency classification assigned to a ticket.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority converts boundary input into a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", raw)
	}
	return p, nil
}

// Ticket is a support request filed by the assistant.
type Ticket struct {
	TicketID  string    `json:"ticketId"`
	Title     string    `json:"title"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}
