package usecases

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"

	"github.com/namuve/frontdesk/internal/application/ticket/services"
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/cache"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/metrics"
)

type CreateTicketCommand struct {
	Ticket         ticket.DraftInput
	Entities       []ticket.Entity
	Files          services.FileSet
	Username       string
	RequestID      string
	IdempotencyKey string
}

// SecondaryBatch is the store response of a secondary batch create.
type SecondaryBatch struct {
	Records []record.Record `json:"records"`
}

// CreateTicketResult is the aggregated creation outcome. The primary ticket is
// the unit of success; every secondary failure is reported here instead of
// failing the call.
type CreateTicketResult struct {
	Records       []record.Record `json:"records"`
	Ticket        *record.Record  `json:"ticket"`
	BusinessID    string          `json:"business_id,omitempty"`
	EffectiveType string          `json:"effective_type"`

	GuestsCreated   *SecondaryBatch `json:"guests_created,omitempty"`
	GuestError      string          `json:"guest_error,omitempty"`
	VisitorsCreated *SecondaryBatch `json:"visitors_created,omitempty"`
	VisitorError    string          `json:"visitor_error,omitempty"`
	WorkersCreated  *SecondaryBatch `json:"workers_created,omitempty"`
	WorkerError     string          `json:"worker_error,omitempty"`

	AttachmentsUploaded []string                 `json:"attachments_uploaded,omitempty"`
	AttachmentErrors    []services.UploadFailure `json:"attachment_errors,omitempty"`
	AttachmentsSkipped  []string                 `json:"attachments_skipped,omitempty"`
	SchemaMismatch      bool                     `json:"schema_mismatch,omitempty"`

	// Replayed is set when the result was served from the idempotency store.
	Replayed bool `json:"-"`
}

func (r *CreateTicketResult) setSecondary(v ticket.Variant, batch *SecondaryBatch, errText string) {
	switch v {
	case ticket.VariantGuest:
		r.GuestsCreated, r.GuestError = batch, errText
	case ticket.VariantVisitor:
		r.VisitorsCreated, r.VisitorError = batch, errText
	case ticket.VariantWorker:
		r.WorkersCreated, r.WorkerError = batch, errText
	}
}

type CreateTicketUseCase struct {
	store       record.Store
	registry    *schema.Registry
	uploader    AttachmentUploader
	audit       AuditEmitter
	idempotency IdempotencyStore
	logger      logger.Interface
	metrics     *metrics.Metrics
}

// NewCreateTicketUseCase wires the creation flow. idempotency may be nil, in
// which case Idempotency-Key is ignored.
func NewCreateTicketUseCase(
	store record.Store,
	registry *schema.Registry,
	uploader AttachmentUploader,
	audit AuditEmitter,
	idempotency IdempotencyStore,
	logger logger.Interface,
	m *metrics.Metrics,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		store:       store,
		registry:    registry,
		uploader:    uploader,
		audit:       audit,
		idempotency: idempotency,
		logger:      logger,
		metrics:     m,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	draft, err := ticket.NewDraft(cmd.Ticket)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uc.logger.Infow("executing create ticket use case",
		"type", draft.EffectiveType.String(),
		"nominal_type", draft.NominalType.String(),
		"entities", len(cmd.Entities),
		"files", len(cmd.Files),
	)

	key := cmd.IdempotencyKey
	if key != "" && uc.idempotency != nil {
		replay, err := uc.beginIdempotent(ctx, key)
		if err != nil {
			return nil, err
		}
		if replay != nil {
			return replay, nil
		}
	} else {
		key = ""
	}

	result, err := uc.create(ctx, cmd, draft)
	if err != nil {
		if key != "" {
			if rErr := uc.idempotency.Release(ctx, key); rErr != nil {
				uc.logger.Warnw("failed to release idempotency key", "error", rErr, "key", key)
			}
		}
		return nil, err
	}

	if key != "" {
		uc.completeIdempotent(ctx, key, result)
	}
	return result, nil
}

func (uc *CreateTicketUseCase) create(ctx context.Context, cmd CreateTicketCommand, draft *ticket.Draft) (*CreateTicketResult, error) {
	tickets := uc.registry.Tickets()

	fields, err := primaryFields(tickets, draft)
	if err != nil {
		return nil, errors.NewInternalError("ticket schema is incomplete", err.Error())
	}

	created, err := uc.store.Create(ctx, tickets.TableID, []record.Fields{fields}, record.KeyTypeName)
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err, "collection", tickets.TableID)
		return nil, errors.NewStoreUnavailableError("failed to create ticket", record.ErrorDetail(err))
	}
	if len(created) == 0 {
		uc.logger.Errorw("store returned no ticket record", "collection", tickets.TableID)
		return nil, errors.NewStoreUnavailableError("failed to create ticket", "store returned no records")
	}
	uc.metrics.IncTicketsCreated(draft.EffectiveType.String())

	primary := created[0]
	result := &CreateTicketResult{
		Records:       created,
		Ticket:        &primary,
		BusinessID:    fieldText(tickets, &primary, schema.TicketBusinessID),
		EffectiveType: draft.EffectiveType.String(),
	}

	// The back-reference needs the business id. When the write response
	// lacks it the re-read happens before the secondary batch instead of after.
	reread := false
	if result.BusinessID == "" {
		uc.reread(ctx, tickets, result)
		reread = true
	}

	if draft.EffectiveType.HasSecondary() && len(cmd.Entities) > 0 {
		uc.createSecondary(ctx, cmd, draft, result)
	}

	if !reread {
		uc.reread(ctx, tickets, result)
	}

	uc.logger.Infow("ticket created successfully",
		"record_id", primary.ID,
		"business_id", result.BusinessID,
		"type", result.EffectiveType,
	)

	entry := ticket.NewAuditEntry(
		ticket.ActionCreated,
		draft.Status,
		ticket.CleanValue(cmd.Ticket.ApartmentID),
		draft.EffectiveType,
		result.BusinessID,
		cmd.Username,
	).WithRequestID(cmd.RequestID)
	uc.audit.Emit(ctx, entry)

	return result, nil
}

// reread refreshes the primary record for store-computed fields. Failure
// keeps whatever the write response carried.
func (uc *CreateTicketUseCase) reread(ctx context.Context, tickets *schema.Collection, result *CreateTicketResult) {
	rec, err := uc.store.Get(ctx, tickets.TableID, result.Ticket.ID)
	if err != nil {
		uc.logger.Warnw("failed to re-read created ticket, using write response",
			"error", err,
			"record_id", result.Ticket.ID,
		)
		return
	}
	result.Ticket = rec
	if id := fieldText(tickets, rec, schema.TicketBusinessID); id != "" {
		result.BusinessID = id
	}
}

func (uc *CreateTicketUseCase) createSecondary(ctx context.Context, cmd CreateTicketCommand, draft *ticket.Draft, result *CreateTicketResult) {
	variant, _ := ticket.VariantFor(draft.EffectiveType)

	collection, err := uc.registry.ForType(draft.EffectiveType)
	if err != nil {
		uc.failSecondary(result, variant, "secondary", err)
		return
	}

	batch, err := secondaryFields(collection, draft, cmd.Entities, result.BusinessID)
	if err != nil {
		uc.failSecondary(result, variant, "secondary", err)
		return
	}

	created, err := uc.store.Create(ctx, collection.TableID, batch, record.KeyTypeName)
	if err != nil {
		uc.logger.Errorw("failed to create secondary records",
			"error", err,
			"collection", collection.TableID,
			"business_id", result.BusinessID,
			"count", len(batch),
		)
		uc.failSecondary(result, variant, "secondary", goerrors.New(record.ErrorDetail(err)))
		return
	}
	result.setSecondary(variant, &SecondaryBatch{Records: created}, "")

	if len(created) != len(cmd.Entities) {
		uc.logger.Warnw("created record count does not match entities, skipping attachments",
			"collection", collection.TableID,
			"requested", len(cmd.Entities),
			"created", len(created),
		)
		uc.metrics.IncPartialFailure("schema_mismatch")
		result.SchemaMismatch = true
		for _, k := range cmd.Files.Keys() {
			result.AttachmentsSkipped = append(result.AttachmentsSkipped, k.String())
		}
		return
	}
	if len(cmd.Files) == 0 {
		return
	}

	refs := make([]services.CreatedRef, len(created))
	for i, rec := range created {
		refs[i] = services.CreatedRef{RecordID: rec.ID, Index: i}
	}
	report := uc.uploader.Upload(ctx, collection, refs, cmd.Files)
	result.AttachmentsUploaded = report.Uploaded
	result.AttachmentErrors = report.Failed
}

func (uc *CreateTicketUseCase) failSecondary(result *CreateTicketResult, v ticket.Variant, step string, err error) {
	uc.metrics.IncPartialFailure(step)
	result.setSecondary(v, nil, err.Error())
}

func (uc *CreateTicketUseCase) beginIdempotent(ctx context.Context, key string) (*CreateTicketResult, error) {
	stored, err := uc.idempotency.Begin(ctx, key)
	if err != nil {
		if goerrors.Is(err, cache.ErrRequestInFlight) {
			return nil, errors.NewConflictError("a request with this Idempotency-Key is still in progress")
		}
		// Without the store the request proceeds undeduplicated.
		uc.logger.Warnw("idempotency store unavailable", "error", err, "key", key)
		return nil, nil
	}
	if stored == nil {
		return nil, nil
	}

	var replay CreateTicketResult
	if err := json.Unmarshal(stored, &replay); err != nil {
		uc.logger.Warnw("discarding unreadable idempotent response", "error", err, "key", key)
		return nil, errors.NewConflictError("a request with this Idempotency-Key was already processed")
	}
	replay.Replayed = true
	uc.logger.Infow("replaying idempotent ticket creation", "key", key, "business_id", replay.BusinessID)
	return &replay, nil
}

func (uc *CreateTicketUseCase) completeIdempotent(ctx context.Context, key string, result *CreateTicketResult) {
	data, err := json.Marshal(result)
	if err == nil {
		err = uc.idempotency.Complete(ctx, key, data)
	}
	if err != nil {
		uc.logger.Warnw("failed to store idempotent response", "error", err, "key", key)
	}
}

func primaryFields(c *schema.Collection, d *ticket.Draft) (record.Fields, error) {
	fields := record.Fields{}
	set := func(attr string, v any) error {
		name, ok := c.Field(attr)
		if !ok {
			return fmt.Errorf("tickets collection has no field for %q", attr)
		}
		fields[name] = v
		return nil
	}

	values := []struct {
		attr string
		v    any
		skip bool
	}{
		{schema.TicketType, d.EffectiveType.String(), false},
		{schema.TicketTitle, d.Title, false},
		{schema.TicketPurpose, d.Purpose, false},
		{schema.TicketStatus, d.Status.String(), false},
		{schema.TicketPriority, d.Priority.String(), d.Priority == ""},
		{schema.TicketApartmentID, derefInt(d.ApartmentID), d.ApartmentID == nil},
		{schema.TicketOccupancy, derefInt(d.Occupancy), d.Occupancy == nil},
		{schema.TicketArrival, d.Arrival, d.Arrival == ""},
		{schema.TicketDeparture, d.Departure, d.Departure == ""},
		{schema.TicketParking, d.Parking, d.Parking == ""},
	}
	for _, v := range values {
		if v.skip {
			continue
		}
		if err := set(v.attr, v.v); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func secondaryFields(c *schema.Collection, d *ticket.Draft, entities []ticket.Entity, businessID string) ([]record.Fields, error) {
	backRef, hasBackRef := ticket.BackReferenceValue(businessID)

	out := make([]record.Fields, 0, len(entities))
	for _, e := range entities {
		sf, err := ticket.NewSecondaryFields(d.EffectiveType, e, d.Subtype, d.Agent)
		if err != nil {
			return nil, err
		}
		values := sf.Values()
		if hasBackRef {
			values[ticket.AttrTicketBackReference] = backRef
		}
		fields, err := c.Translate(values)
		if err != nil {
			return nil, err
		}
		out = append(out, fields)
	}
	return out, nil
}

func derefInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
