package linkedrecord

type UpdateLinkedRecordRequest struct {
	Type   string         `json:"type" binding:"required"`
	Fields map[string]any `json:"fields" binding:"required"`
}

// ChangePresenceRequest also accepts ticket_type, the key older clients send.
type ChangePresenceRequest struct {
	Type       string `json:"type"`
	TicketType string `json:"ticket_type"`
	Status     string `json:"status" binding:"required"`
}

func (r *ChangePresenceRequest) ticketType() string {
	if r.Type != "" {
		return r.Type
	}
	return r.TicketType
}
