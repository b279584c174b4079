package usecases

import (
	"context"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/id"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

type RemoveLinkedRecordCommand struct {
	RecordID string
	Type     string
}

// RemoveLinkedRecordUseCase deletes one secondary record, typically a
// duplicate left behind by a retried ticket creation.
type RemoveLinkedRecordUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
}

func NewRemoveLinkedRecordUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *RemoveLinkedRecordUseCase {
	return &RemoveLinkedRecordUseCase{store: store, registry: registry, logger: logger}
}

func (uc *RemoveLinkedRecordUseCase) Execute(ctx context.Context, cmd RemoveLinkedRecordCommand) error {
	recordID := ticket.CleanValue(cmd.RecordID)
	if !id.IsRecordID(recordID) {
		return errors.NewValidationError("invalid record id", recordID)
	}
	ticketType, collection, err := resolveCollection(uc.registry, cmd.Type)
	if err != nil {
		return err
	}

	if err := uc.store.Delete(ctx, collection.TableID, recordID); err != nil {
		return storeFailure(uc.logger, "failed to delete linked record", recordID, err)
	}

	uc.logger.Infow("linked record deleted",
		"record_id", recordID,
		"type", ticketType.String(),
	)
	return nil
}
