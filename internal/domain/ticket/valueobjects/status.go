package valueobjects

import "strings"

// TicketStatus is free-form in the store; the known values are normalised to
// their canonical casing and anything else is kept verbatim.
type TicketStatus string

const (
	StatusOpen        TicketStatus = "Open"
	StatusUnderReview TicketStatus = "Under Review"
	StatusApproved    TicketStatus = "Approved"
	StatusClosed      TicketStatus = "Closed"

	// StatusUnchanged is recorded in audit entries for updates that left the status alone.
	StatusUnchanged TicketStatus = "Unchanged"
)

var knownStatuses = []TicketStatus{StatusOpen, StatusUnderReview, StatusApproved, StatusClosed}

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsKnown() bool {
	for _, k := range knownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

func NewTicketStatus(s string) TicketStatus {
	s = strings.TrimSpace(s)
	for _, k := range knownStatuses {
		if strings.EqualFold(string(k), s) {
			return k
		}
	}
	return TicketStatus(s)
}

// StatusOrDefault returns StatusOpen for an empty input.
func StatusOrDefault(s string) TicketStatus {
	if st := NewTicketStatus(s); st != "" {
		return st
	}
	return StatusOpen
}
