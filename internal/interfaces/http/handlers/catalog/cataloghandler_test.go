package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/interfaces/http/handlers/testutil"
	"github.com/namuve/frontdesk/internal/shared/errors"
)

type mockOptionsUC struct {
	catalogs []string
	err      error
}

func (m *mockOptionsUC) Execute(_ context.Context, catalog string) ([]string, error) {
	m.catalogs = append(m.catalogs, catalog)
	return []string{"Foodpanda", "Guest"}, m.err
}

type mockApartmentsUC struct{}

func (mockApartmentsUC) Execute(_ context.Context) ([]record.Record, error) {
	return []record.Record{{ID: "recApt000001", Fields: record.Fields{"Apartment": "1203"}}}, nil
}

func TestCatalogHandler_Options(t *testing.T) {
	opts := &mockOptionsUC{}
	h := NewCatalogHandler(opts, mockApartmentsUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/agents", nil)
	h.Agents(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data map[string][]string
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, []string{"Foodpanda", "Guest"}, data["agents"])

	c, _ = testutil.NewTestContext(http.MethodGet, "/api/options/tickets", nil)
	h.TicketOptions(c)
	c, _ = testutil.NewTestContext(http.MethodGet, "/api/options/maintenance", nil)
	h.MaintenanceOptions(c)

	assert.Equal(t, []string{schema.CatalogAgents, schema.CatalogTicketOptions, schema.CatalogMaintenanceOptions}, opts.catalogs)
}

func TestCatalogHandler_OptionsError(t *testing.T) {
	h := NewCatalogHandler(&mockOptionsUC{err: errors.NewStoreUnavailableError("failed to fetch agents")}, mockApartmentsUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/agents", nil)
	h.Agents(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCatalogHandler_Apartments(t *testing.T) {
	h := NewCatalogHandler(&mockOptionsUC{}, mockApartmentsUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/apartments", nil)
	h.Apartments(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recApt000001"`)
}
