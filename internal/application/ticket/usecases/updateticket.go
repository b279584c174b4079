package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/id"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

const (
	ResolvedByRecordID   = "record_id"
	ResolvedByBusinessID = "business_id"
)

type UpdateTicketCommand struct {
	RecordID   string
	BusinessID string
	// Fields is keyed by canonical attribute (status, priority, title, ...).
	Fields    map[string]any
	Username  string
	RequestID string
}

type UpdateTicketResult struct {
	Record     *record.Record `json:"record"`
	RecordID   string         `json:"record_id"`
	BusinessID string         `json:"business_id,omitempty"`
	ResolvedBy string         `json:"resolved_by"`
}

// writable lists the canonical attributes an update may set. Business id and
// created time are store-computed.
var writable = map[string]bool{
	schema.TicketApartmentID: true,
	schema.TicketType:        true,
	schema.TicketTitle:       true,
	schema.TicketPurpose:     true,
	schema.TicketPriority:    true,
	schema.TicketStatus:      true,
	schema.TicketArrival:     true,
	schema.TicketDeparture:   true,
	schema.TicketOccupancy:   true,
	schema.TicketParking:     true,
}

// UpdateTicketUseCase applies a partial update, resolving the target by store
// id first and by business id when that fails.
type UpdateTicketUseCase struct {
	store    record.Store
	registry *schema.Registry
	audit    AuditEmitter
	logger   logger.Interface
}

func NewUpdateTicketUseCase(
	store record.Store,
	registry *schema.Registry,
	audit AuditEmitter,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		store:    store,
		registry: registry,
		audit:    audit,
		logger:   logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	tickets := uc.registry.Tickets()

	recordID := ticket.CleanValue(cmd.RecordID)
	businessID := ticket.CleanValue(cmd.BusinessID)
	if recordID == "" && businessID == "" {
		return nil, errors.NewValidationError("record_id or business_id is required")
	}

	fields, status, err := uc.translate(tickets, cmd.Fields)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("executing update ticket use case",
		"record_id", recordID,
		"business_id", businessID,
		"fields", len(fields),
	)

	var (
		rec        *record.Record
		resolvedBy string
	)

	// ResolvingById
	if id.IsRecordID(recordID) {
		rec, err = uc.store.Update(ctx, tickets.TableID, recordID, fields)
		switch {
		case err == nil:
			resolvedBy = ResolvedByRecordID
		case !record.IsNotFound(err):
			uc.logger.Errorw("failed to update ticket", "error", err, "record_id", recordID)
			return nil, errors.NewStoreUnavailableError("failed to update ticket", record.ErrorDetail(err))
		case businessID == "":
			return nil, errors.NewNotFoundError("ticket not found", fmt.Sprintf("record_id %s", recordID))
		default:
			uc.logger.Infow("ticket not found by record id, falling back to business id",
				"record_id", recordID,
				"business_id", businessID,
			)
		}
	} else if businessID == "" {
		return nil, errors.NewValidationError("invalid record_id", id.ValidateRecordID(recordID).Error())
	}

	// ResolvingByBusinessKey
	if rec == nil {
		resolved, err := uc.resolveByBusinessID(ctx, tickets, businessID)
		if err != nil {
			return nil, err
		}
		// Updating
		rec, err = uc.store.Update(ctx, tickets.TableID, resolved, fields)
		if err != nil {
			if record.IsNotFound(err) {
				return nil, errors.NewNotFoundError("ticket not found", fmt.Sprintf("business_id %s", businessID))
			}
			uc.logger.Errorw("failed to update ticket", "error", err, "record_id", resolved)
			return nil, errors.NewStoreUnavailableError("failed to update ticket", record.ErrorDetail(err))
		}
		resolvedBy = ResolvedByBusinessID
	}

	current := ticketFromRecord(tickets, rec)
	if current.BusinessID == "" {
		current.BusinessID = businessID
	}

	uc.logger.Infow("ticket updated successfully",
		"record_id", rec.ID,
		"business_id", current.BusinessID,
		"resolved_by", resolvedBy,
	)

	if status == "" {
		status = vo.StatusUnchanged
	}
	entry := ticket.NewAuditEntry(
		ticket.ActionUpdated,
		status,
		current.ApartmentID,
		current.Type,
		current.BusinessID,
		cmd.Username,
	).WithRequestID(cmd.RequestID)
	uc.audit.Emit(ctx, entry)

	return &UpdateTicketResult{
		Record:     rec,
		RecordID:   rec.ID,
		BusinessID: current.BusinessID,
		ResolvedBy: resolvedBy,
	}, nil
}

func (uc *UpdateTicketUseCase) resolveByBusinessID(ctx context.Context, tickets *schema.Collection, businessID string) (string, error) {
	var value any = businessID
	if n, ok := ticket.BackReferenceValue(businessID); ok {
		value = n
	}

	matches, err := uc.store.Filter(ctx, tickets.TableID, record.Is(tickets.FilterField(schema.TicketBusinessID), value), 1)
	if err != nil {
		uc.logger.Errorw("failed to resolve ticket by business id", "error", err, "business_id", businessID)
		return "", errors.NewStoreUnavailableError("failed to resolve ticket", record.ErrorDetail(err))
	}
	if len(matches) > 0 {
		return matches[0].ID, nil
	}
	return "", errors.NewNotFoundError("ticket not found", fmt.Sprintf("business_id %s", businessID))
}

// translate maps canonical keys to literal field names and returns the new
// status when one is set.
func (uc *UpdateTicketUseCase) translate(tickets *schema.Collection, in map[string]any) (record.Fields, vo.TicketStatus, error) {
	if len(in) == 0 {
		return nil, "", errors.NewValidationError("fields must not be empty")
	}

	var unknown []string
	fields := record.Fields{}
	var status vo.TicketStatus

	for attr, v := range in {
		name, ok := tickets.Field(attr)
		if !ok || !writable[attr] {
			unknown = append(unknown, attr)
			continue
		}

		if s, isString := v.(string); isString {
			s = ticket.CleanValue(s)
			switch attr {
			case schema.TicketTitle, schema.TicketPurpose:
				s = ticket.SanitizeText(s)
			case schema.TicketStatus:
				status = vo.NewTicketStatus(s)
				s = status.String()
			case schema.TicketPriority:
				p, err := vo.NewPriority(s)
				if err != nil {
					return nil, "", errors.NewValidationError(err.Error())
				}
				s = p.String()
			case schema.TicketApartmentID, schema.TicketOccupancy:
				if n := ticket.ParseOptionalInt(s); n != nil {
					fields[name] = *n
				} else {
					fields[name] = nil
				}
				continue
			}
			fields[name] = s
			continue
		}
		fields[name] = v
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, "", errors.NewValidationError("unknown or read-only ticket fields", fmt.Sprintf("%v", unknown))
	}
	return fields, status, nil
}
