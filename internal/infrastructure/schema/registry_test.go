package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namuve/frontdesk/internal/domain/ticket"
	vo "github.com/namuve/frontdesk/internal/domain/ticket/valueobjects"
	"github.com/namuve/frontdesk/internal/shared/errors"
)

func TestDefault_EmbeddedRegistryIsValid(t *testing.T) {
	r := Default()

	assert.Equal(t, "tblt7O90EhETDjXraHk", r.Tickets().TableID)
	assert.Equal(t, "tblgBUXf5G1HdpzxXiW", r.Audit().TableID)
	assert.Equal(t, "id", r.Audit().FieldKeyType())
	assert.Equal(t, "name", r.Tickets().FieldKeyType())
}

func TestForType_LiteralNames(t *testing.T) {
	r := Default()

	tests := []struct {
		typ        vo.Type
		tableID    string
		attachment string
		name       string
		checkIn    string
	}{
		{vo.TypeInOut, "tblRmHEtBZSwi7HoTCz", "fldJdomUaG2ufpuQj45", "Name ", "Check in Date "},
		{vo.TypeVisit, "tbl2D1gLavfJn6GMe0o", "fldqdP9sU0QwBmf6An8", "Visitor Name", "Check in Date "},
		{vo.TypeMaintenance, "tblxBUElSacHNStAJU2", "fldfyMH1DGwYsJlzTGy", "Name", "Start Time "},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			c, err := r.ForType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.tableID, c.TableID)
			assert.Equal(t, tt.attachment, c.AttachmentFieldID)

			name, ok := c.FieldOf(ticket.AttrName)
			require.True(t, ok)
			assert.Equal(t, tt.name, name)

			checkIn, _ := c.FieldOf(ticket.AttrCheckIn)
			assert.Equal(t, tt.checkIn, checkIn)

			backRef, _ := c.FieldOf(ticket.AttrTicketBackReference)
			assert.Equal(t, "Ticket ID ", backRef)
		})
	}
}

func TestForType_Unsupported(t *testing.T) {
	_, err := Default().ForType("Complaint")
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedTypeError(err))
}

func TestTranslate(t *testing.T) {
	c, err := Default().ForType(vo.TypeMaintenance)
	require.NoError(t, err)

	out, err := c.Translate(map[ticket.Attribute]any{
		ticket.AttrName:           "Bilal",
		ticket.AttrIdentityNumber: "35202",
		ticket.AttrAgent:          "Usman",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Name": "Bilal", "CNIC": "35202", "Agent": "Usman"}, out)

	guests, _ := Default().ForType(vo.TypeInOut)
	_, err = guests.Translate(map[ticket.Attribute]any{ticket.AttrAgent: "Usman"})
	assert.ErrorContains(t, err, `no field for attribute "agent"`)
}

func TestFilterField(t *testing.T) {
	tickets := Default().Tickets()
	// the ticket table is filtered by literal field name
	assert.Equal(t, "ID ", tickets.FilterField(TicketBusinessID))
	assert.Equal(t, "Apartment ID ", tickets.FilterField(TicketApartmentID))

	withIDs := &Collection{
		Fields:   map[string]string{TicketBusinessID: "ID "},
		FieldIDs: map[string]string{TicketBusinessID: "fldAbc"},
	}
	assert.Equal(t, "fldAbc", withIDs.FilterField(TicketBusinessID))
}

func TestCatalog(t *testing.T) {
	r := Default()

	agents, err := r.Catalog(CatalogAgents)
	require.NoError(t, err)
	assert.Equal(t, "Agent", agents.ValueField)

	_, err = r.Catalog("buildings")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestParse_ReportsMissingMappings(t *testing.T) {
	doc := strings.Replace(string(embeddedRegistry), `      agent: "Agent"`+"\n", "", 1)
	doc = strings.Replace(doc, "  apartments:\n    table_id: tblW8KQtEUKhIyY4ARm\n", "", 1)

	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `secondary[Maintenance]: field "agent" is not mapped`)
	assert.Contains(t, err.Error(), "catalog[apartments]: table_id is required")
}

func TestParse_RejectsGenericSecondary(t *testing.T) {
	doc := string(embeddedRegistry) + "\n" // keep valid base
	doc = strings.Replace(doc, "secondary:\n", "secondary:\n  \"Complaint\":\n    table_id: tblX\n", 1)

	_, err := Parse([]byte(doc))
	assert.ErrorContains(t, err, "secondary[Complaint]: not a type with secondary records")
}

func TestLoad_FileOverrideAndDocumentRoundTrip(t *testing.T) {
	out, err := Default().Document()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	c, err := r.ForType(vo.TypeVisit)
	require.NoError(t, err)
	subtype, _ := c.FieldOf(ticket.AttrSubtype)
	assert.Equal(t, "Type", subtype)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read schema registry")
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse([]byte("tickets: [unterminated"))
	assert.ErrorContains(t, err, "decode schema registry")
}
