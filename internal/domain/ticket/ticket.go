package ticket

import (
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
)

// Ticket is a primary record as read back from the store. RecordID is the
// store handle; BusinessID is the auto-number staff refer to, and may be
// empty right after creation.
type Ticket struct {
	RecordID    string
	BusinessID  string
	ApartmentID string
	Type        vo.Type
	Title       string
	Purpose     string
	Priority    string
	Status      vo.TicketStatus
	Arrival     string
	Departure   string
	Occupancy   string
	Parking     string
	CreatedTime string
}
