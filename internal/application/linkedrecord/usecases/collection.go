package usecases

import (
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
)

// resolveCollection returns the secondary collection of a ticket type.
func resolveCollection(registry *schema.Registry, rawType string) (vo.Type, *schema.Collection, error) {
	t := vo.NewType(ticket.CleanValue(rawType))
	if t.IsEmpty() {
		return "", nil, errors.NewValidationError("type is required")
	}
	c, err := registry.ForType(t)
	if err != nil {
		return "", nil, err
	}
	return t, c, nil
}

func text(c *schema.Collection, r *record.Record, attr ticket.Attribute) string {
	name, ok := c.FieldOf(attr)
	if !ok {
		return ""
	}
	return ticket.FormatBusinessID(r.Value(name))
}
