package usecases

import (
	"context"
	"sync"

	"github.com/namuve/frontdesk/internal/application/ticket/services"
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
)

type createCall struct {
	TableID string
	Records []record.Fields
}

type updateCall struct {
	RecordID string
	Fields   record.Fields
}

type mockStore struct {
	CreateFunc     func(ctx context.Context, tableID string, records []record.Fields, keyType record.KeyType) ([]record.Record, error)
	GetFunc        func(ctx context.Context, tableID, recordID string) (*record.Record, error)
	UpdateFunc     func(ctx context.Context, tableID, recordID string, fields record.Fields) (*record.Record, error)
	FilterFunc     func(ctx context.Context, tableID string, filter record.Filter, take int) ([]record.Record, error)
	ListFunc       func(ctx context.Context, tableID string, q record.Query) ([]record.Record, error)
	UploadFileFunc func(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error)

	mu      sync.Mutex
	creates []createCall
	updates []updateCall
	filters []record.Filter
	gets    int
}

func (m *mockStore) Create(ctx context.Context, tableID string, records []record.Fields, keyType record.KeyType) ([]record.Record, error) {
	m.mu.Lock()
	m.creates = append(m.creates, createCall{TableID: tableID, Records: records})
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tableID, records, keyType)
	}
	return nil, nil
}

func (m *mockStore) Get(ctx context.Context, tableID, recordID string) (*record.Record, error) {
	m.mu.Lock()
	m.gets++
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tableID, recordID)
	}
	return nil, nil
}

func (m *mockStore) Update(ctx context.Context, tableID, recordID string, fields record.Fields) (*record.Record, error) {
	m.mu.Lock()
	m.updates = append(m.updates, updateCall{RecordID: recordID, Fields: fields})
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tableID, recordID, fields)
	}
	return nil, nil
}

func (m *mockStore) Delete(ctx context.Context, tableID, recordID string) error {
	return nil
}

func (m *mockStore) Search(ctx context.Context, tableID string, terms []string) ([]record.Record, error) {
	return nil, nil
}

func (m *mockStore) Filter(ctx context.Context, tableID string, filter record.Filter, take int) ([]record.Record, error) {
	m.mu.Lock()
	m.filters = append(m.filters, filter)
	m.mu.Unlock()
	if m.FilterFunc != nil {
		return m.FilterFunc(ctx, tableID, filter, take)
	}
	return nil, nil
}

func (m *mockStore) List(ctx context.Context, tableID string, q record.Query) ([]record.Record, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tableID, q)
	}
	return nil, nil
}

func (m *mockStore) UploadFile(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, tableID, recordID, fieldID, file)
	}
	return &record.Record{ID: recordID}, nil
}

func (m *mockStore) Ping(ctx context.Context) error {
	return nil
}

type mockAudit struct {
	mu      sync.Mutex
	entries []ticket.AuditEntry
}

func (m *mockAudit) Emit(ctx context.Context, entry ticket.AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

type mockUploader struct {
	UploadFunc func(ctx context.Context, collection *schema.Collection, created []services.CreatedRef, files services.FileSet) services.UploadReport
	calls      int
}

func (m *mockUploader) Upload(ctx context.Context, collection *schema.Collection, created []services.CreatedRef, files services.FileSet) services.UploadReport {
	m.calls++
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, collection, created, files)
	}
	return services.UploadReport{Uploaded: []string{}}
}

type mockIdempotency struct {
	BeginFunc func(ctx context.Context, key string) ([]byte, error)
	completed map[string][]byte
	released  []string
}

func (m *mockIdempotency) Begin(ctx context.Context, key string) ([]byte, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockIdempotency) Complete(ctx context.Context, key string, response []byte) error {
	if m.completed == nil {
		m.completed = map[string][]byte{}
	}
	m.completed[key] = response
	return nil
}

func (m *mockIdempotency) Release(ctx context.Context, key string) error {
	m.released = append(m.released, key)
	return nil
}

type notFoundError struct{}

func (notFoundError) Error() string  { return "store update: status 404" }
func (notFoundError) NotFound() bool { return true }
