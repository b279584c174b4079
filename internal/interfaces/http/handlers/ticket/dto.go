package ticket

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/namuve/frontdesk/internal/application/ticket/usecases"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/shared/errors"
)

// FlexString accepts a JSON string, number or null. The front-desk client
// sends apartment ids and occupancy both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

type CreateTicketRequest struct {
	ApartmentID        FlexString      `json:"apartment_id"`
	Type               string          `json:"type"`
	Title              string          `json:"title"`
	Purpose            string          `json:"purpose"`
	Priority           string          `json:"priority"`
	Status             string          `json:"status"`
	Arrival            string          `json:"arrival"`
	Departure          string          `json:"departure"`
	Occupancy          FlexString      `json:"occupancy"`
	Parking            string          `json:"parking"`
	VisitSubtype       string          `json:"visit_subtype"`
	MaintenanceSubtype string          `json:"maintenance_subtype"`
	Agent              string          `json:"agent"`
	Guests             []ticket.Entity `json:"guests"`
	// GuestsData is the multipart encoding of Guests.
	GuestsData string `json:"guests_data"`
}

// formFields maps multipart form keys onto the request.
func (r *CreateTicketRequest) formFields() map[string]*string {
	return map[string]*string{
		"type":                &r.Type,
		"title":               &r.Title,
		"purpose":             &r.Purpose,
		"priority":            &r.Priority,
		"status":              &r.Status,
		"arrival":             &r.Arrival,
		"departure":           &r.Departure,
		"parking":             &r.Parking,
		"visit_subtype":       &r.VisitSubtype,
		"maintenance_subtype": &r.MaintenanceSubtype,
		"agent":               &r.Agent,
		"guests_data":         &r.GuestsData,
	}
}

func (r *CreateTicketRequest) entities() ([]ticket.Entity, error) {
	if len(r.Guests) > 0 {
		return r.Guests, nil
	}
	raw := strings.TrimSpace(r.GuestsData)
	if raw == "" || raw == "undefined" {
		return nil, nil
	}
	var out []ticket.Entity
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.NewValidationError("guests_data is not a JSON list", err.Error())
	}
	return out, nil
}

func (r *CreateTicketRequest) ToCommand(username, requestID, idempotencyKey string) (usecases.CreateTicketCommand, error) {
	entities, err := r.entities()
	if err != nil {
		return usecases.CreateTicketCommand{}, err
	}
	return usecases.CreateTicketCommand{
		Ticket: ticket.DraftInput{
			ApartmentID:        string(r.ApartmentID),
			Type:               r.Type,
			Title:              r.Title,
			Purpose:            r.Purpose,
			Priority:           r.Priority,
			Status:             r.Status,
			Arrival:            r.Arrival,
			Departure:          r.Departure,
			Occupancy:          string(r.Occupancy),
			Parking:            r.Parking,
			VisitSubtype:       r.VisitSubtype,
			MaintenanceSubtype: r.MaintenanceSubtype,
			Agent:              r.Agent,
		},
		Entities:       entities,
		Username:       username,
		RequestID:      requestID,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}, nil
}

type UpdateTicketRequest struct {
	RecordID   string         `json:"record_id" validate:"omitempty,record_id"`
	BusinessID FlexString     `json:"business_id"`
	Fields     map[string]any `json:"fields" binding:"required"`
}

func (r *UpdateTicketRequest) ToCommand(recordID, username, requestID string) usecases.UpdateTicketCommand {
	if recordID == "" {
		recordID = r.RecordID
	}
	return usecases.UpdateTicketCommand{
		RecordID:   recordID,
		BusinessID: string(r.BusinessID),
		Fields:     r.Fields,
		Username:   username,
		RequestID:  requestID,
	}
}
