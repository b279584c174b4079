package audit

import (
	"context"
	"sort"
	"time"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/biztime"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

const (
	ActionStatusChanged = "Status Changed"

	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)

// Emitter accepts audit entries for best-effort delivery.
type Emitter interface {
	Emit(ctx context.Context, entry ticket.AuditEntry)
}

type LogActivityCommand struct {
	Action     string
	Status     string
	Apartment  string
	TicketType string
	BusinessID string
	Username   string
	RequestID  string
}

// LogActivityUseCase records a client-reported status change.
type LogActivityUseCase struct {
	emitter Emitter
	logger  logger.Interface
}

func NewLogActivityUseCase(emitter Emitter, logger logger.Interface) *LogActivityUseCase {
	return &LogActivityUseCase{emitter: emitter, logger: logger}
}

func (uc *LogActivityUseCase) Execute(ctx context.Context, cmd LogActivityCommand) error {
	status := ticket.CleanValue(cmd.Status)
	apartment := ticket.CleanValue(cmd.Apartment)
	if status == "" {
		return errors.NewValidationError("status is required")
	}
	if apartment == "" {
		return errors.NewValidationError("apartment is required")
	}

	action := ticket.CleanValue(cmd.Action)
	if action == "" {
		action = ActionStatusChanged
	}

	entry := ticket.NewAuditEntry(
		action,
		vo.NewTicketStatus(status),
		apartment,
		vo.NewType(ticket.CleanValue(cmd.TicketType)),
		ticket.CleanValue(cmd.BusinessID),
		cmd.Username,
	).WithRequestID(cmd.RequestID)

	uc.emitter.Emit(ctx, entry)
	uc.logger.Infow("activity logged",
		"action", action,
		"status", status,
		"apartment", apartment,
	)
	return nil
}

// Activity is one audit trail line as returned to clients.
type Activity struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	Status     string `json:"status"`
	Apartment  string `json:"apartment"`
	TicketType string `json:"ticketType,omitempty"`
	TicketID   string `json:"ticketId,omitempty"`
	Username   string `json:"username,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`

	at time.Time
}

// ListRecentActivityUseCase reads the audit collection newest first.
type ListRecentActivityUseCase struct {
	store      record.Store
	collection *schema.Collection
	logger     logger.Interface
}

func NewListRecentActivityUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *ListRecentActivityUseCase {
	return &ListRecentActivityUseCase{store: store, collection: registry.Audit(), logger: logger}
}

func (uc *ListRecentActivityUseCase) Execute(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	records, err := uc.store.List(ctx, uc.collection.TableID, record.Query{
		KeyType: record.KeyType(uc.collection.FieldKeyType()),
	})
	if err != nil {
		uc.logger.Errorw("failed to list audit records", "error", err, "collection", uc.collection.TableID)
		return nil, errors.NewStoreUnavailableError("failed to load activity", record.ErrorDetail(err))
	}

	out := make([]Activity, 0, len(records))
	for i := range records {
		out = append(out, uc.toActivity(&records[i]))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].at.After(out[j].at)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (uc *ListRecentActivityUseCase) toActivity(r *record.Record) Activity {
	get := func(attr string) string {
		name, ok := uc.collection.Field(attr)
		if !ok {
			return ""
		}
		return ticket.FormatBusinessID(r.Value(name))
	}

	a := Activity{
		ID:         r.ID,
		Action:     get(schema.AuditAction),
		Status:     get(schema.AuditStatus),
		Apartment:  get(schema.AuditApartment),
		TicketType: get(schema.AuditTicketType),
		TicketID:   get(schema.AuditTicketID),
		Username:   get(schema.AuditUsername),
	}

	raw := get(schema.AuditTimestamp)
	if raw == "" {
		raw = r.CreatedTime
	}
	if t, err := biztime.ParseStoreTime(raw); err == nil {
		a.at = t
		a.Timestamp = biztime.FormatInBizTimezone(t, time.RFC3339)
	}
	return a
}
