package dto

// LinkedRecord is the unified view of a guest, visitor or worker record.
// Keys follow the front-desk client.
type LinkedRecord struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	IdentityNumber string           `json:"cnic"`
	IdentityExpiry string           `json:"cnicExpiry,omitempty"`
	CheckInDate    string           `json:"checkInDate,omitempty"`
	CheckOutDate   string           `json:"checkOutDate,omitempty"`
	Type           string           `json:"type,omitempty"`
	Agent          string           `json:"agent,omitempty"`
	TicketType     string           `json:"ticket_type"`
	TicketID       string           `json:"ticket_id"`
	Attachments    []map[string]any `json:"attachments"`
}
