// Package schema maps ticket types and canonical attribute names onto the
// collections and literal field names of the record store.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/shared/errors"
)

//go:embed registry.yaml
var embeddedRegistry []byte

// Canonical attributes of the primary ticket collection.
const (
	TicketApartmentID = "apartmentId"
	TicketType        = "type"
	TicketTitle       = "title"
	TicketPurpose     = "purpose"
	TicketPriority    = "priority"
	TicketStatus      = "status"
	TicketArrival     = "arrival"
	TicketDeparture   = "departure"
	TicketOccupancy   = "occupancy"
	TicketParking     = "parking"
	TicketBusinessID  = "businessId"
	TicketCreatedTime = "createdTime"
)

// Canonical attributes of the audit collection. Only action, status and
// apartment are required; the rest are written when mapped.
const (
	AuditAction     = "action"
	AuditStatus     = "status"
	AuditApartment  = "apartment"
	AuditTicketType = "ticketType"
	AuditTicketID   = "ticketId"
	AuditUsername   = "username"
	AuditTimestamp  = "timestamp"
)

// Catalog collection names.
const (
	CatalogTicketOptions      = "ticketOptions"
	CatalogMaintenanceOptions = "maintenanceOptions"
	CatalogAgents             = "agents"
	CatalogApartments         = "apartments"
)

var (
	requiredTicketFields = []string{
		TicketApartmentID, TicketType, TicketTitle, TicketPurpose, TicketPriority,
		TicketStatus, TicketArrival, TicketDeparture, TicketOccupancy, TicketBusinessID,
	}
	requiredAuditFields  = []string{AuditAction, AuditStatus, AuditApartment}
	requiredCatalogNames = []string{CatalogTicketOptions, CatalogMaintenanceOptions, CatalogAgents, CatalogApartments}
	// every secondary collection is read through these regardless of variant
	commonSecondaryAttrs = []ticket.Attribute{
		ticket.AttrName, ticket.AttrTicketBackReference, ticket.AttrCheckIn,
		ticket.AttrCheckOut, ticket.AttrAttachments,
	}
)

// Collection describes one store table.
type Collection struct {
	TableID           string            `yaml:"table_id"`
	AttachmentFieldID string            `yaml:"attachment_field_id,omitempty"`
	KeyType           string            `yaml:"field_key_type,omitempty"`
	Fields            map[string]string `yaml:"fields,omitempty"`
	FieldIDs          map[string]string `yaml:"field_ids,omitempty"`
	ValueField        string            `yaml:"value_field,omitempty"`
}

// Field returns the literal field name for a canonical attribute.
func (c *Collection) Field(attr string) (string, bool) {
	name, ok := c.Fields[attr]
	return name, ok
}

// FieldOf is Field for secondary-record attributes.
func (c *Collection) FieldOf(attr ticket.Attribute) (string, bool) {
	return c.Field(string(attr))
}

// FilterField returns the identifier filter predicates must use for attr:
// the field id when one is configured, else the literal name.
func (c *Collection) FilterField(attr string) string {
	if fid, ok := c.FieldIDs[attr]; ok && fid != "" {
		return fid
	}
	return c.Fields[attr]
}

// FieldKeyType is "name" unless the collection is addressed by field id.
func (c *Collection) FieldKeyType() string {
	if c.KeyType == "" {
		return "name"
	}
	return c.KeyType
}

// Translate converts canonical secondary attributes into literal store fields.
// An attribute the collection does not map is an error; writes must never be
// silently dropped.
func (c *Collection) Translate(values map[ticket.Attribute]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	for attr, v := range values {
		name, ok := c.FieldOf(attr)
		if !ok {
			return nil, fmt.Errorf("collection %s has no field for attribute %q", c.TableID, attr)
		}
		out[name] = v
	}
	return out, nil
}

// Registry is the immutable lookup table loaded at startup.
type Registry struct {
	tickets   Collection
	audit     Collection
	secondary map[vo.Type]*Collection
	catalog   map[string]*Collection
}

type registryFile struct {
	Tickets   Collection            `yaml:"tickets"`
	Secondary map[string]Collection `yaml:"secondary"`
	Audit     Collection            `yaml:"audit"`
	Catalog   map[string]Collection `yaml:"catalog"`
}

// Load reads the registry from path, or the embedded copy when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Parse(embeddedRegistry)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema registry: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded registry. It panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Registry {
	r, err := Parse(embeddedRegistry)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse decodes and validates a registry document.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode schema registry: %w", err)
	}

	r := &Registry{
		tickets:   f.Tickets,
		audit:     f.Audit,
		secondary: make(map[vo.Type]*Collection, len(f.Secondary)),
		catalog:   make(map[string]*Collection, len(f.Catalog)),
	}
	for name, c := range f.Secondary {
		c := c
		r.secondary[vo.Type(name)] = &c
	}
	for name, c := range f.Catalog {
		c := c
		r.catalog[name] = &c
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) validate() error {
	var problems []string

	requireFields := func(where string, c *Collection, attrs []string) {
		if c.TableID == "" {
			problems = append(problems, where+": table_id is required")
		}
		for _, a := range attrs {
			if name, ok := c.Fields[a]; !ok || name == "" {
				problems = append(problems, fmt.Sprintf("%s: field %q is not mapped", where, a))
			}
		}
	}

	requireFields("tickets", &r.tickets, requiredTicketFields)
	requireFields("audit", &r.audit, requiredAuditFields)

	for _, t := range vo.SecondaryTypes() {
		c, ok := r.secondary[t]
		where := fmt.Sprintf("secondary[%s]", t)
		if !ok {
			problems = append(problems, where+": collection is missing")
			continue
		}
		if c.AttachmentFieldID == "" {
			problems = append(problems, where+": attachment_field_id is required")
		}
		variant, _ := ticket.VariantFor(t)
		attrs := make([]string, 0, 8)
		for _, a := range append(variant.Attributes(), commonSecondaryAttrs...) {
			attrs = append(attrs, string(a))
		}
		requireFields(where, c, attrs)
	}
	for t := range r.secondary {
		if !t.HasSecondary() {
			problems = append(problems, fmt.Sprintf("secondary[%s]: not a type with secondary records", t))
		}
	}

	for _, name := range requiredCatalogNames {
		c, ok := r.catalog[name]
		if !ok || c.TableID == "" {
			problems = append(problems, fmt.Sprintf("catalog[%s]: table_id is required", name))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("invalid schema registry: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ForType returns the secondary collection of a ticket type. Generic and
// unknown types fail with an unsupported_type error.
func (r *Registry) ForType(t vo.Type) (*Collection, error) {
	c, ok := r.secondary[t]
	if !ok {
		return nil, errors.NewUnsupportedTypeError(
			"ticket type has no linked collection",
			fmt.Sprintf("type %q", t),
		)
	}
	return c, nil
}

func (r *Registry) Tickets() *Collection {
	return &r.tickets
}

func (r *Registry) Audit() *Collection {
	return &r.audit
}

// Catalog returns a named lookup collection.
func (r *Registry) Catalog(name string) (*Collection, error) {
	c, ok := r.catalog[name]
	if !ok {
		return nil, errors.NewNotFoundError("catalog not found", name)
	}
	return c, nil
}

// Document renders the registry back to YAML, as printed by the schema command.
func (r *Registry) Document() ([]byte, error) {
	f := registryFile{
		Tickets:   r.tickets,
		Audit:     r.audit,
		Secondary: make(map[string]Collection, len(r.secondary)),
		Catalog:   make(map[string]Collection, len(r.catalog)),
	}
	for t, c := range r.secondary {
		f.Secondary[t.String()] = *c
	}
	for n, c := range r.catalog {
		f.Catalog[n] = *c
	}
	return yaml.Marshal(f)
}
