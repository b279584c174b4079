package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	apperrors "github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

type mockStore struct {
	record.Store
	ListFunc func(ctx context.Context, tableID string, q record.Query) ([]record.Record, error)
}

func (m *mockStore) List(ctx context.Context, tableID string, q record.Query) ([]record.Record, error) {
	return m.ListFunc(ctx, tableID, q)
}

func TestListOptions_DistinctSorted(t *testing.T) {
	store := &mockStore{ListFunc: func(ctx context.Context, tableID string, q record.Query) ([]record.Record, error) {
		assert.Equal(t, "tbl9sp7R28EfuHajL7d", tableID)
		return []record.Record{
			{ID: "rec1", Fields: record.Fields{"Agent": "Usman"}},
			{ID: "rec2", Fields: record.Fields{"Agent": "Ahmed "}},
			{ID: "rec3", Fields: record.Fields{"Agent": "Usman"}},
			{ID: "rec4", Fields: record.Fields{}},
		}, nil
	}}
	uc := NewListOptionsUseCase(store, schema.Default(), logger.NewNop())

	got, err := uc.Execute(context.Background(), schema.CatalogAgents)

	require.NoError(t, err)
	assert.Equal(t, []string{"Ahmed", "Usman"}, got)
}

func TestListOptions_Errors(t *testing.T) {
	uc := NewListOptionsUseCase(&mockStore{}, schema.Default(), logger.NewNop())
	_, err := uc.Execute(context.Background(), "colours")
	assert.True(t, apperrors.IsNotFoundError(err))

	failing := &mockStore{ListFunc: func(ctx context.Context, tableID string, q record.Query) ([]record.Record, error) {
		return nil, errors.New("timeout")
	}}
	uc = NewListOptionsUseCase(failing, schema.Default(), logger.NewNop())
	_, err = uc.Execute(context.Background(), schema.CatalogTicketOptions)
	assert.True(t, apperrors.IsStoreUnavailableError(err))
}

func TestListApartments_Passthrough(t *testing.T) {
	store := &mockStore{ListFunc: func(ctx context.Context, tableID string, q record.Query) ([]record.Record, error) {
		assert.Equal(t, "tblW8KQtEUKhIyY4ARm", tableID)
		return nil, nil
	}}
	uc := NewListApartmentsUseCase(store, schema.Default(), logger.NewNop())

	got, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
