package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

// ListOptionsUseCase returns the distinct values of a catalog collection's
// value column, such as ticket types or agent names.
type ListOptionsUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
}

func NewListOptionsUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *ListOptionsUseCase {
	return &ListOptionsUseCase{store: store, registry: registry, logger: logger}
}

func (uc *ListOptionsUseCase) Execute(ctx context.Context, catalog string) ([]string, error) {
	c, err := uc.registry.Catalog(catalog)
	if err != nil {
		return nil, err
	}
	if c.ValueField == "" {
		return nil, errors.NewInternalError("catalog has no value field", catalog)
	}

	records, err := uc.store.List(ctx, c.TableID, record.Query{})
	if err != nil {
		uc.logger.Errorw("failed to list catalog", "error", err, "catalog", catalog)
		return nil, errors.NewStoreUnavailableError("failed to fetch "+catalog, record.ErrorDetail(err))
	}

	seen := make(map[string]bool, len(records))
	options := make([]string, 0, len(records))
	for i := range records {
		v := strings.TrimSpace(ticket.FormatBusinessID(records[i].Value(c.ValueField)))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		options = append(options, v)
	}
	sort.Strings(options)
	return options, nil
}

// ListApartmentsUseCase returns the apartment collection as stored.
type ListApartmentsUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
}

func NewListApartmentsUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *ListApartmentsUseCase {
	return &ListApartmentsUseCase{store: store, registry: registry, logger: logger}
}

func (uc *ListApartmentsUseCase) Execute(ctx context.Context) ([]record.Record, error) {
	c, err := uc.registry.Catalog(schema.CatalogApartments)
	if err != nil {
		return nil, err
	}
	records, err := uc.store.List(ctx, c.TableID, record.Query{})
	if err != nil {
		uc.logger.Errorw("failed to list apartments", "error", err)
		return nil, errors.NewStoreUnavailableError("failed to fetch apartments", record.ErrorDetail(err))
	}
	if records == nil {
		records = []record.Record{}
	}
	return records, nil
}
