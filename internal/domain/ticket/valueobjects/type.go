package valueobjects

import "strings"

// Type is the ticket category stored in the primary collection. Types other
// than the three below are generic and carry no secondary records.
type Type string

const (
	TypeInOut       Type = "In/Out"
	TypeVisit       Type = "Visit"
	TypeMaintenance Type = "Maintenance"
)

var secondaryTypes = map[Type]bool{
	TypeInOut:       true,
	TypeVisit:       true,
	TypeMaintenance: true,
}

func NewType(s string) Type {
	return Type(strings.TrimSpace(s))
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsEmpty() bool {
	return t == ""
}

// HasSecondary reports whether tickets of this type fan out to a secondary collection.
func (t Type) HasSecondary() bool {
	return secondaryTypes[t]
}

func (t Type) IsInOut() bool {
	return t == TypeInOut
}

func (t Type) IsVisit() bool {
	return t == TypeVisit
}

func (t Type) IsMaintenance() bool {
	return t == TypeMaintenance
}

// SecondaryTypes lists the types that own a secondary collection, in a stable order.
func SecondaryTypes() []Type {
	return []Type{TypeInOut, TypeVisit, TypeMaintenance}
}
