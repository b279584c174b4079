package audit

import (
	"context"
	"sync"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
)

type mockStore struct {
	CreateFunc func(ctx context.Context, tableID string, records []record.Fields, keyType record.KeyType) ([]record.Record, error)
	ListFunc   func(ctx context.Context, tableID string, q record.Query) ([]record.Record, error)
}

func (m *mockStore) Create(ctx context.Context, tableID string, records []record.Fields, keyType record.KeyType) ([]record.Record, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tableID, records, keyType)
	}
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
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tableID, q)
	}
	return nil, nil
}

func (m *mockStore) UploadFile(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error) {
	return nil, nil
}

func (m *mockStore) Ping(ctx context.Context) error {
	return nil
}

type mockSink struct {
	name        string
	DeliverFunc func(ctx context.Context, entry ticket.AuditEntry) error

	mu      sync.Mutex
	calls   int
	entries []ticket.AuditEntry
}

func (m *mockSink) Name() string { return m.name }

func (m *mockSink) Deliver(ctx context.Context, entry ticket.AuditEntry) error {
	m.mu.Lock()
	m.calls++
	m.entries = append(m.entries, entry)
	m.mu.Unlock()
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, entry)
	}
	return nil
}

func (m *mockSink) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockEmitter struct {
	entries []ticket.AuditEntry
}

func (m *mockEmitter) Emit(ctx context.Context, entry ticket.AuditEntry) {
	m.entries = append(m.entries, entry)
}
