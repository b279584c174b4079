package usecases

import (
	"context"

	"github.com/namuve/frontdesk/internal/application/linkedrecord/dto"
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

type GetLinkedRecordsQuery struct {
	BusinessID string
	Type       string
}

// GetLinkedRecordsUseCase finds the secondary records of a ticket. The store
// search over-matches, so every hit is re-checked on its back-reference.
type GetLinkedRecordsUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
}

func NewGetLinkedRecordsUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *GetLinkedRecordsUseCase {
	return &GetLinkedRecordsUseCase{store: store, registry: registry, logger: logger}
}

func (uc *GetLinkedRecordsUseCase) Execute(ctx context.Context, query GetLinkedRecordsQuery) ([]dto.LinkedRecord, error) {
	businessID := ticket.CleanValue(query.BusinessID)
	if businessID == "" {
		return nil, errors.NewValidationError("ticket_id is required")
	}
	ticketType, collection, err := resolveCollection(uc.registry, query.Type)
	if err != nil {
		return nil, err
	}

	backRef, _ := collection.FieldOf(ticket.AttrTicketBackReference)
	hits, err := uc.store.Search(ctx, collection.TableID, []string{businessID, backRef, "true"})
	if err != nil {
		uc.logger.Errorw("failed to search linked records",
			"error", err,
			"collection", collection.TableID,
			"business_id", businessID,
		)
		return nil, errors.NewStoreUnavailableError("failed to fetch linked records", record.ErrorDetail(err))
	}

	out := make([]dto.LinkedRecord, 0, len(hits))
	for i := range hits {
		r := &hits[i]
		ref := text(collection, r, ticket.AttrTicketBackReference)
		if !ticket.BusinessIDMatches(ref, businessID) {
			continue
		}
		out = append(out, toLinkedRecord(collection, ticketType, r, ref))
	}

	uc.logger.Debugw("linked records resolved",
		"business_id", businessID,
		"type", ticketType.String(),
		"hits", len(hits),
		"kept", len(out),
	)
	return out, nil
}

func toLinkedRecord(c *schema.Collection, t vo.Type, r *record.Record, ticketID string) dto.LinkedRecord {
	attachments := []map[string]any{}
	if name, ok := c.FieldOf(ticket.AttrAttachments); ok {
		for _, a := range ticket.AttachmentsFromStore(r.Value(name), c.AttachmentFieldID) {
			attachments = append(attachments, a.View())
		}
	}
	return dto.LinkedRecord{
		ID:             r.ID,
		Name:           text(c, r, ticket.AttrName),
		IdentityNumber: text(c, r, ticket.AttrIdentityNumber),
		IdentityExpiry: text(c, r, ticket.AttrIdentityExpiry),
		CheckInDate:    text(c, r, ticket.AttrCheckIn),
		CheckOutDate:   text(c, r, ticket.AttrCheckOut),
		Type:           text(c, r, ticket.AttrSubtype),
		Agent:          text(c, r, ticket.AttrAgent),
		TicketType:     t.String(),
		TicketID:       ticketID,
		Attachments:    attachments,
	}
}
