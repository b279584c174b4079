package ticket

import (
	"fmt"

	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
)

// Attribute is a canonical secondary-record attribute. The schema registry
// translates each one to the literal field name of a collection.
type Attribute string

const (
	AttrName                Attribute = "name"
	AttrIdentityNumber      Attribute = "identityNumber"
	AttrIdentityExpiry      Attribute = "identityExpiry"
	AttrSubtype             Attribute = "subtype"
	AttrAgent               Attribute = "agent"
	AttrTicketBackReference Attribute = "ticketBackReference"
	AttrCheckIn             Attribute = "checkIn"
	AttrCheckOut            Attribute = "checkOut"
	AttrAttachments         Attribute = "attachments"
)

// Variant names the kind of secondary record a ticket type owns.
type Variant string

const (
	VariantGuest   Variant = "guest"
	VariantVisitor Variant = "visitor"
	VariantWorker  Variant = "worker"
)

// VariantFor maps a ticket type to its secondary variant.
func VariantFor(t vo.Type) (Variant, bool) {
	switch t {
	case vo.TypeInOut:
		return VariantGuest, true
	case vo.TypeVisit:
		return VariantVisitor, true
	case vo.TypeMaintenance:
		return VariantWorker, true
	default:
		return "", false
	}
}

// Attributes lists the attributes a variant writes on creation.
func (v Variant) Attributes() []Attribute {
	switch v {
	case VariantGuest:
		return []Attribute{AttrName, AttrIdentityNumber, AttrIdentityExpiry}
	case VariantVisitor:
		return []Attribute{AttrName, AttrIdentityNumber, AttrIdentityExpiry, AttrSubtype}
	case VariantWorker:
		return []Attribute{AttrName, AttrIdentityNumber, AttrIdentityExpiry, AttrSubtype, AttrAgent}
	default:
		return nil
	}
}

// Entity is one person listed on a creation request.
type Entity struct {
	Name           string `json:"name"`
	IdentityNumber string `json:"cnic"`
	IdentityExpiry string `json:"cnicExpiry"`
}

// SecondaryFields is the closed set of secondary-record payloads.
type SecondaryFields interface {
	Variant() Variant
	// Values returns the non-empty canonical attributes of the record.
	Values() map[Attribute]any
	isSecondaryFields()
}

type GuestFields struct {
	Entity
}

type VisitorFields struct {
	Entity
	Subtype string
}

type WorkerFields struct {
	Entity
	Subtype string
	Agent   string
}

func (GuestFields) Variant() Variant   { return VariantGuest }
func (VisitorFields) Variant() Variant { return VariantVisitor }
func (WorkerFields) Variant() Variant  { return VariantWorker }

func (GuestFields) isSecondaryFields()   {}
func (VisitorFields) isSecondaryFields() {}
func (WorkerFields) isSecondaryFields()  {}

func (f GuestFields) Values() map[Attribute]any {
	return f.Entity.values()
}

func (f VisitorFields) Values() map[Attribute]any {
	m := f.Entity.values()
	putNonEmpty(m, AttrSubtype, f.Subtype)
	return m
}

func (f WorkerFields) Values() map[Attribute]any {
	m := f.Entity.values()
	putNonEmpty(m, AttrSubtype, f.Subtype)
	putNonEmpty(m, AttrAgent, f.Agent)
	return m
}

func (e Entity) values() map[Attribute]any {
	m := make(map[Attribute]any, 5)
	putNonEmpty(m, AttrName, SanitizeText(CleanValue(e.Name)))
	putNonEmpty(m, AttrIdentityNumber, CleanValue(e.IdentityNumber))
	putNonEmpty(m, AttrIdentityExpiry, CleanValue(e.IdentityExpiry))
	return m
}

func putNonEmpty(m map[Attribute]any, a Attribute, v string) {
	if v != "" {
		m[a] = v
	}
}

// NewSecondaryFields builds the variant payload for effective type t.
func NewSecondaryFields(t vo.Type, e Entity, subtype, agent string) (SecondaryFields, error) {
	variant, ok := VariantFor(t)
	if !ok {
		return nil, fmt.Errorf("ticket type %q has no secondary records", t)
	}
	switch variant {
	case VariantGuest:
		return GuestFields{Entity: e}, nil
	case VariantVisitor:
		return VisitorFields{Entity: e, Subtype: subtype}, nil
	default:
		return WorkerFields{Entity: e, Subtype: subtype, Agent: agent}, nil
	}
}

// PresenceChange is a check-in or check-out stamp on a secondary record.
type PresenceChange string

const (
	PresenceIn  PresenceChange = "in"
	PresenceOut PresenceChange = "out"
)

func NewPresenceChange(s string) (PresenceChange, error) {
	switch PresenceChange(CleanValue(s)) {
	case PresenceIn:
		return PresenceIn, nil
	case PresenceOut:
		return PresenceOut, nil
	default:
		return "", fmt.Errorf(`invalid status %q: use "in" or "out"`, s)
	}
}

// Attribute returns the canonical attribute the change stamps.
func (p PresenceChange) Attribute() Attribute {
	if p == PresenceIn {
		return AttrCheckIn
	}
	return AttrCheckOut
}
