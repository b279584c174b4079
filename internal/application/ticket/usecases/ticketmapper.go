package usecases

import (
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
)

// fieldText reads a canonical attribute of r as text; numbers are rendered
// without a trailing fraction.
func fieldText(c *schema.Collection, r *record.Record, attr string) string {
	name, ok := c.Field(attr)
	if !ok {
		return ""
	}
	return ticket.FormatBusinessID(r.Value(name))
}

func ticketFromRecord(c *schema.Collection, r *record.Record) ticket.Ticket {
	created := fieldText(c, r, schema.TicketCreatedTime)
	if created == "" {
		created = r.CreatedTime
	}
	return ticket.Ticket{
		RecordID:    r.ID,
		BusinessID:  fieldText(c, r, schema.TicketBusinessID),
		ApartmentID: fieldText(c, r, schema.TicketApartmentID),
		Type:        vo.NewType(fieldText(c, r, schema.TicketType)),
		Title:       fieldText(c, r, schema.TicketTitle),
		Purpose:     fieldText(c, r, schema.TicketPurpose),
		Priority:    fieldText(c, r, schema.TicketPriority),
		Status:      vo.TicketStatus(fieldText(c, r, schema.TicketStatus)),
		Arrival:     fieldText(c, r, schema.TicketArrival),
		Departure:   fieldText(c, r, schema.TicketDeparture),
		Occupancy:   fieldText(c, r, schema.TicketOccupancy),
		Parking:     fieldText(c, r, schema.TicketParking),
		CreatedTime: created,
	}
}
