// Package audit fans ticket actions out to the audit sinks and reads the
// audit trail back.
package audit

import (
	"context"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/biztime"
)

const StoreSinkName = "store"

// Sink is one destination of audit entries.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, entry ticket.AuditEntry) error
}

// StoreSink writes entries into the audit collection of the record store.
type StoreSink struct {
	store      record.Store
	collection *schema.Collection
}

func NewStoreSink(store record.Store, registry *schema.Registry) *StoreSink {
	return &StoreSink{store: store, collection: registry.Audit()}
}

func (s *StoreSink) Name() string {
	return StoreSinkName
}

func (s *StoreSink) Deliver(ctx context.Context, entry ticket.AuditEntry) error {
	fields := auditFields(s.collection, entry)
	_, err := s.store.Create(ctx, s.collection.TableID, []record.Fields{fields}, record.KeyType(s.collection.FieldKeyType()))
	return err
}

// auditFields writes action, status and apartment unconditionally; the
// remaining attributes only when the collection maps them.
func auditFields(c *schema.Collection, e ticket.AuditEntry) record.Fields {
	fields := record.Fields{}
	required := map[string]string{
		schema.AuditAction:    e.Action,
		schema.AuditStatus:    e.Status.String(),
		schema.AuditApartment: e.Apartment,
	}
	for attr, v := range required {
		if name, ok := c.Field(attr); ok {
			fields[name] = v
		}
	}

	optional := map[string]string{
		schema.AuditTicketType: e.TicketType.String(),
		schema.AuditTicketID:   e.BusinessID,
		schema.AuditUsername:   e.Username,
	}
	if !e.Timestamp.IsZero() {
		optional[schema.AuditTimestamp] = biztime.FormatStoreTime(e.Timestamp)
	}
	for attr, v := range optional {
		if name, ok := c.Field(attr); ok && v != "" {
			fields[name] = v
		}
	}
	return fields
}
