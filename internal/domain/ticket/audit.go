package ticket

import (
	"time"

	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/shared/biztime"
)

const (
	ActionCreated = "Created"
	ActionUpdated = "Updated"
)

// AuditEntry is one observational log line about a ticket action.
type AuditEntry struct {
	Action     string
	Status     vo.TicketStatus
	Apartment  string
	TicketType vo.Type
	BusinessID string
	Username   string
	Timestamp  time.Time
	RequestID  string
}

func NewAuditEntry(
	action string,
	status vo.TicketStatus,
	apartment string,
	ticketType vo.Type,
	businessID string,
	username string,
) AuditEntry {
	return AuditEntry{
		Action:     action,
		Status:     status,
		Apartment:  apartment,
		TicketType: ticketType,
		BusinessID: businessID,
		Username:   username,
		Timestamp:  biztime.NowUTC(),
	}
}

// WithRequestID returns a copy of e tagged with the originating request.
func (e AuditEntry) WithRequestID(id string) AuditEntry {
	e.RequestID = id
	return e
}
