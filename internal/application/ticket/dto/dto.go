package dto

import (
	"github.com/namuve/frontdesk/internal/domain/ticket"
)

// TicketDTO is the list view of a ticket. Keys follow the front-desk client.
type TicketDTO struct {
	ID          string `json:"id"`
	RecordID    string `json:"record_id"`
	ApartmentID string `json:"apartment_id,omitempty"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Created     string `json:"created,omitempty"`
	Description string `json:"description"`
	Arrival     string `json:"arrival,omitempty"`
	Departure   string `json:"departure,omitempty"`
	Occupancy   string `json:"occupancy,omitempty"`
	Parking     string `json:"parking,omitempty"`
}

func ToTicketDTO(t ticket.Ticket) TicketDTO {
	d := TicketDTO{
		ID:          t.BusinessID,
		RecordID:    t.RecordID,
		ApartmentID: t.ApartmentID,
		Type:        t.Type.String(),
		Title:       t.Title,
		Status:      t.Status.String(),
		Priority:    t.Priority,
		Created:     t.CreatedTime,
		Description: t.Purpose,
		Arrival:     t.Arrival,
		Departure:   t.Departure,
		Occupancy:   t.Occupancy,
		Parking:     t.Parking,
	}
	if d.Type == "" {
		d.Type = "Unknown"
	}
	if d.Title == "" {
		d.Title = "No Title"
	}
	if d.Status == "" {
		d.Status = "Open"
	}
	if d.Priority == "" {
		d.Priority = "Low"
	}
	return d
}

func ToTicketDTOs(tickets []ticket.Ticket) []TicketDTO {
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t))
	}
	return out
}
