package dto

import "time"

// CreateTicketRequest is the payload for filing a ticket directly.
type CreateTicketRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

// TicketResponse is the public view of a ticket.
type TicketResponse struct {
	TicketID  string    `json:"ticketId"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}
