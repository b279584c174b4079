package services

import (
	"context"
	"sync"

	"github.com/namuve/frontdesk/internal/domain/record"
)

type uploadCall struct {
	TableID  string
	RecordID string
	FieldID  string
	FileName string
}

type mockStore struct {
	UploadFileFunc func(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error)

	mu      sync.Mutex
	uploads []uploadCall
}

func (m *mockStore) Create(ctx context.Context, tableID string, records []record.Fields, keyType record.KeyType) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) Get(ctx context.Context, tableID, recordID string) (*record.Record, error) {
	return nil, nil
}

func (m *mockStore) Update(ctx context.Context, tableID, recordID string, fields record.Fields) (*record.Record, error) {
	return nil, nil
}

func (m *mockStore) Delete(ctx context.Context, tableID, recordID string) error {
	return nil
}

func (m *mockStore) Search(ctx context.Context, tableID string, terms []string) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) Filter(ctx context.Context, tableID string, filter record.Filter, take int) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) List(ctx context.Context, tableID string, q record.Query) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) UploadFile(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error) {
	m.mu.Lock()
	m.uploads = append(m.uploads, uploadCall{TableID: tableID, RecordID: recordID, FieldID: fieldID, FileName: file.Name})
	m.mu.Unlock()
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, tableID, recordID, fieldID, file)
	}
	return &record.Record{ID: recordID}, nil
}

func (m *mockStore) Ping(ctx context.Context) error {
	return nil
}
