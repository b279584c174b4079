package ticket

import (
	"fmt"
	"strconv"
	"strings"

	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
)

// DraftInput is a ticket creation request as decoded from the wire. Every
// value is a raw string because multipart forms carry nothing else.
type DraftInput struct {
	ApartmentID        string
	Type               string
	Title              string
	Purpose            string
	Priority           string
	Status             string
	Arrival            string
	Departure          string
	Occupancy          string
	Parking            string
	VisitSubtype       string
	MaintenanceSubtype string
	Agent              string
}

// Draft is a normalised ticket ready to be written to the primary collection.
type Draft struct {
	ApartmentID   *int
	NominalType   vo.Type
	EffectiveType vo.Type
	Title         string
	Purpose       string
	Priority      vo.Priority
	Status        vo.TicketStatus
	Arrival       string
	Departure     string
	Occupancy     *int
	Parking       string
	// Subtype is the visit or maintenance subtype that decided EffectiveType.
	Subtype string
	Agent   string
}

// NewDraft normalises in. Apartment id and occupancy that do not parse as
// integers are dropped rather than rejected.
func NewDraft(in DraftInput) (*Draft, error) {
	visitSubtype := CleanValue(in.VisitSubtype)
	maintenanceSubtype := CleanValue(in.MaintenanceSubtype)
	nominal := vo.NewType(CleanValue(in.Type))

	effective := ResolveEffectiveType(nominal, visitSubtype, maintenanceSubtype)
	if effective.IsEmpty() {
		return nil, fmt.Errorf("ticket type is required")
	}

	priority, err := vo.NewPriority(CleanValue(in.Priority))
	if err != nil {
		return nil, err
	}

	subtype := ""
	switch {
	case visitSubtype != "":
		subtype = visitSubtype
	case maintenanceSubtype != "":
		subtype = maintenanceSubtype
	}

	return &Draft{
		ApartmentID:   ParseOptionalInt(in.ApartmentID),
		NominalType:   nominal,
		EffectiveType: effective,
		Title:         SanitizeText(CleanValue(in.Title)),
		Purpose:       SanitizeText(CleanValue(in.Purpose)),
		Priority:      priority,
		Status:        vo.StatusOrDefault(CleanValue(in.Status)),
		Arrival:       CleanValue(in.Arrival),
		Departure:     CleanValue(in.Departure),
		Occupancy:     ParseOptionalInt(in.Occupancy),
		Parking:       CleanValue(in.Parking),
		Subtype:       subtype,
		Agent:         CleanValue(in.Agent),
	}, nil
}

// ResolveEffectiveType applies the reclassification rule: a visit subtype makes
// the ticket a Visit, otherwise a maintenance subtype makes it Maintenance.
func ResolveEffectiveType(nominal vo.Type, visitSubtype, maintenanceSubtype string) vo.Type {
	switch {
	case strings.TrimSpace(visitSubtype) != "":
		return vo.TypeVisit
	case strings.TrimSpace(maintenanceSubtype) != "":
		return vo.TypeMaintenance
	default:
		return nominal
	}
}

// ParseOptionalInt returns nil for empty or non-integer input.
func ParseOptionalInt(s string) *int {
	s = CleanValue(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// CleanValue trims s and treats the literal strings browsers send for unset
// form fields as empty.
func CleanValue(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "undefined", "null":
		return ""
	}
	return s
}
