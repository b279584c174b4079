package usecases

import (
	"context"

	"github.com/namuve/frontdesk/internal/application/linkedrecord/dto"
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/id"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

type UploadLinkedAttachmentCommand struct {
	RecordID string
	Type     string
	File     record.File
}

// UploadLinkedAttachmentUseCase appends one file to the attachment field of
// an existing secondary record.
type UploadLinkedAttachmentUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
}

func NewUploadLinkedAttachmentUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *UploadLinkedAttachmentUseCase {
	return &UploadLinkedAttachmentUseCase{store: store, registry: registry, logger: logger}
}

func (uc *UploadLinkedAttachmentUseCase) Execute(ctx context.Context, cmd UploadLinkedAttachmentCommand) (*dto.LinkedRecord, error) {
	recordID := ticket.CleanValue(cmd.RecordID)
	if !id.IsRecordID(recordID) {
		return nil, errors.NewValidationError("invalid record id", recordID)
	}
	if len(cmd.File.Content) == 0 {
		return nil, errors.NewValidationError("file is required")
	}
	ticketType, collection, err := resolveCollection(uc.registry, cmd.Type)
	if err != nil {
		return nil, err
	}

	updated, err := uc.store.UploadFile(ctx, collection.TableID, recordID, collection.AttachmentFieldID, cmd.File)
	if err != nil {
		return nil, storeFailure(uc.logger, "failed to upload attachment", recordID, err)
	}

	uc.logger.Infow("attachment uploaded",
		"record_id", recordID,
		"type", ticketType.String(),
		"file", cmd.File.Name,
		"size", len(cmd.File.Content),
	)
	out := toLinkedRecord(collection, ticketType, updated, text(collection, updated, ticket.AttrTicketBackReference))
	return &out, nil
}
