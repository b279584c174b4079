package usecases

import (
	"context"
	"time"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/biztime"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/id"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

type ChangePresenceCommand struct {
	RecordID string
	// Type defaults to In/Out when empty.
	Type   string
	Status string
}

type ChangePresenceResult struct {
	RecordID  string `json:"record_id"`
	Status    string `json:"status"`
	Field     string `json:"field"`
	Timestamp string `json:"timestamp"`
}

// ChangePresenceUseCase stamps the current time into the check-in or
// check-out field of a secondary record.
type ChangePresenceUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
	now      func() time.Time
}

func NewChangePresenceUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *ChangePresenceUseCase {
	return &ChangePresenceUseCase{store: store, registry: registry, logger: logger, now: biztime.NowUTC}
}

func (uc *ChangePresenceUseCase) Execute(ctx context.Context, cmd ChangePresenceCommand) (*ChangePresenceResult, error) {
	recordID := ticket.CleanValue(cmd.RecordID)
	if !id.IsRecordID(recordID) {
		return nil, errors.NewValidationError("invalid record id", recordID)
	}
	change, err := ticket.NewPresenceChange(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("invalid presence status", err.Error())
	}

	rawType := cmd.Type
	if ticket.CleanValue(rawType) == "" {
		rawType = vo.TypeInOut.String()
	}
	ticketType, collection, err := resolveCollection(uc.registry, rawType)
	if err != nil {
		return nil, err
	}

	stamp := biztime.FormatStoreTime(uc.now())
	fields, err := collection.Translate(map[ticket.Attribute]any{change.Attribute(): stamp})
	if err != nil {
		return nil, errors.NewValidationError("field is not mapped", err.Error())
	}
	field, _ := collection.FieldOf(change.Attribute())

	if _, err := uc.store.Update(ctx, collection.TableID, recordID, fields); err != nil {
		return nil, storeFailure(uc.logger, "failed to record presence", recordID, err)
	}

	uc.logger.Infow("presence recorded",
		"record_id", recordID,
		"type", ticketType.String(),
		"status", string(change),
		"timestamp", stamp,
	)
	return &ChangePresenceResult{
		RecordID:  recordID,
		Status:    string(change),
		Field:     field,
		Timestamp: stamp,
	}, nil
}
