package usecases

import (
	"context"

	"github.com/namuve/frontdesk/internal/domain/record"
)

type mockStore struct {
	UpdateFunc     func(ctx context.Context, tableID, recordID string, fields record.Fields) (*record.Record, error)
	DeleteFunc     func(ctx context.Context, tableID, recordID string) error
	SearchFunc     func(ctx context.Context, tableID string, terms []string) ([]record.Record, error)
	UploadFileFunc func(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error)

	searchTerms []string
	updated     record.Fields
	uploadField string
}

func (m *mockStore) Create(ctx context.Context, tableID string, records []record.Fields, keyType record.KeyType) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) Get(ctx context.Context, tableID, recordID string) (*record.Record, error) {
	return nil, nil
}

func (m *mockStore) Update(ctx context.Context, tableID, recordID string, fields record.Fields) (*record.Record, error) {
	m.updated = fields
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tableID, recordID, fields)
	}
	return &record.Record{ID: recordID, Fields: fields}, nil
}

func (m *mockStore) Delete(ctx context.Context, tableID, recordID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tableID, recordID)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, tableID string, terms []string) ([]record.Record, error) {
	m.searchTerms = terms
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, tableID, terms)
	}
	return nil, nil
}

func (m *mockStore) Filter(ctx context.Context, tableID string, filter record.Filter, take int) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) List(ctx context.Context, tableID string, q record.Query) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) UploadFile(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error) {
	m.uploadField = fieldID
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, tableID, recordID, fieldID, file)
	}
	return &record.Record{ID: recordID, Fields: record.Fields{}}, nil
}

func (m *mockStore) Ping(ctx context.Context) error {
	return nil
}

type notFoundError struct{}

func (notFoundError) Error() string  { return "store get: status 404" }
func (notFoundError) NotFound() bool { return true }
