package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/namuve/frontdesk/internal/application/linkedrecord/dto"
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/id"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

type UpdateLinkedRecordCommand struct {
	RecordID string
	Type     string
	// Fields is keyed by canonical attribute (name, identityNumber, checkIn, ...).
	Fields map[string]any
}

// editable are the attributes a client may overwrite. The back-reference and
// the attachment list are owned by ticket creation and the upload endpoint.
var editable = map[ticket.Attribute]bool{
	ticket.AttrName:           true,
	ticket.AttrIdentityNumber: true,
	ticket.AttrIdentityExpiry: true,
	ticket.AttrSubtype:        true,
	ticket.AttrAgent:          true,
	ticket.AttrCheckIn:        true,
	ticket.AttrCheckOut:       true,
}

type UpdateLinkedRecordUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
}

func NewUpdateLinkedRecordUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *UpdateLinkedRecordUseCase {
	return &UpdateLinkedRecordUseCase{store: store, registry: registry, logger: logger}
}

func (uc *UpdateLinkedRecordUseCase) Execute(ctx context.Context, cmd UpdateLinkedRecordCommand) (*dto.LinkedRecord, error) {
	recordID := ticket.CleanValue(cmd.RecordID)
	if !id.IsRecordID(recordID) {
		return nil, errors.NewValidationError("invalid record id", recordID)
	}
	if len(cmd.Fields) == 0 {
		return nil, errors.NewValidationError("fields must not be empty")
	}
	ticketType, collection, err := resolveCollection(uc.registry, cmd.Type)
	if err != nil {
		return nil, err
	}

	values := make(map[ticket.Attribute]any, len(cmd.Fields))
	var unknown []string
	for key, v := range cmd.Fields {
		attr := ticket.Attribute(key)
		if _, mapped := collection.FieldOf(attr); !mapped || !editable[attr] {
			unknown = append(unknown, key)
			continue
		}
		if s, ok := v.(string); ok {
			v = ticket.SanitizeText(s)
		}
		values[attr] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.NewValidationError("unknown or read-only fields", fmt.Sprint(unknown))
	}

	fields, err := collection.Translate(values)
	if err != nil {
		return nil, errors.NewValidationError("field is not mapped", err.Error())
	}

	updated, err := uc.store.Update(ctx, collection.TableID, recordID, fields)
	if err != nil {
		return nil, storeFailure(uc.logger, "failed to update linked record", recordID, err)
	}

	uc.logger.Infow("linked record updated",
		"record_id", recordID,
		"type", ticketType.String(),
		"fields", len(fields),
	)
	out := toLinkedRecord(collection, ticketType, updated, text(collection, updated, ticket.AttrTicketBackReference))
	return &out, nil
}

// storeFailure maps a store error on a single-record call: 404 is the
// caller's problem, anything else is upstream.
func storeFailure(log logger.Interface, msg, recordID string, err error) error {
	if record.IsNotFound(err) {
		return errors.NewNotFoundError("linked record not found", recordID)
	}
	log.Errorw(msg, "error", err, "record_id", recordID)
	return errors.NewStoreUnavailableError(msg, record.ErrorDetail(err))
}
