package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
)

func TestResolveEffectiveType(t *testing.T) {
	tests := []struct {
		name        string
		nominal     vo.Type
		visit       string
		maintenance string
		want        vo.Type
	}{
		{"nominal kept", vo.TypeInOut, "", "", vo.TypeInOut},
		{"visit subtype wins", "Complaint", "Foodpanda", "", vo.TypeVisit},
		{"maintenance subtype", vo.TypeInOut, "", "Plumbing", vo.TypeMaintenance},
		{"visit beats maintenance", vo.TypeMaintenance, "Guest", "Plumbing", vo.TypeVisit},
		{"blank subtype ignored", "Parking", "  ", "", "Parking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveEffectiveType(tt.nominal, tt.visit, tt.maintenance))
		})
	}
}

func TestParseOptionalInt(t *testing.T) {
	n := ParseOptionalInt(" 12 ")
	require.NotNil(t, n)
	assert.Equal(t, 12, *n)

	assert.Nil(t, ParseOptionalInt(""))
	assert.Nil(t, ParseOptionalInt("undefined"))
	assert.Nil(t, ParseOptionalInt("A-12"))
	assert.Nil(t, ParseOptionalInt("3.5"))
}

func TestNewDraft_Normalises(t *testing.T) {
	d, err := NewDraft(DraftInput{
		ApartmentID:  "not-a-number",
		Type:         "Complaint",
		Title:        "<b>Guest</b> arrival & parking",
		Purpose:      "undefined",
		Priority:     "high",
		Arrival:      "undefined",
		Departure:    "2026-03-02T10:00:00Z",
		Occupancy:    "3",
		VisitSubtype: "Guest",
	})
	require.NoError(t, err)

	assert.Nil(t, d.ApartmentID)
	assert.Equal(t, vo.NewType("Complaint"), d.NominalType)
	assert.Equal(t, vo.TypeVisit, d.EffectiveType)
	assert.Equal(t, "Guest arrival & parking", d.Title)
	assert.Empty(t, d.Purpose)
	assert.Equal(t, vo.PriorityHigh, d.Priority)
	assert.Equal(t, vo.StatusOpen, d.Status)
	assert.Empty(t, d.Arrival)
	assert.Equal(t, "2026-03-02T10:00:00Z", d.Departure)
	require.NotNil(t, d.Occupancy)
	assert.Equal(t, 3, *d.Occupancy)
	assert.Equal(t, "Guest", d.Subtype)
}

func TestNewDraft_Errors(t *testing.T) {
	_, err := NewDraft(DraftInput{Title: "no type"})
	assert.EqualError(t, err, "ticket type is required")

	_, err = NewDraft(DraftInput{Type: "In/Out", Priority: "whenever"})
	assert.ErrorContains(t, err, "invalid priority")
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText(`<script>alert(1)</script>hello`))
	assert.Equal(t, "Tom & Jerry", SanitizeText("Tom & Jerry"))
	assert.Equal(t, "", SanitizeText(""))
}
