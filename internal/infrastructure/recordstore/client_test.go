package recordstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/shared/config"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.StoreConfig{BaseURL: srv.URL + "/api/", Token: "secret", TimeoutSeconds: 5, SearchLimit: 1000}
	return NewClient(cfg, logger.NewNop(), opts...), &calls
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_Create(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/table/tblTickets/record", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "name", body["fieldKeyType"])
		records := body["records"].([]any)
		require.Len(t, records, 2)
		fields := records[0].(map[string]any)["fields"].(map[string]any)
		assert.Equal(t, "Leak", fields["Title"])
		assert.Equal(t, "Open", fields["Status "])

		writeJSON(w, http.StatusOK, `{"records":[{"id":"recA","fields":{"ID ":65}},{"id":"recB","fields":{}}]}`)
	})

	recs, err := c.Create(context.Background(), "tblTickets", []record.Fields{
		{"Title": "Leak", "Status ": "Open"},
		{"Title": "Noise"},
	}, "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "recA", recs[0].ID)
	assert.Equal(t, json.Number("65"), recs[0].Fields["ID "])
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestClient_GetNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/table/tblTickets/record/recMissing", r.URL.Path)
		assert.Equal(t, "name", r.URL.Query().Get("fieldKeyType"))
		writeJSON(w, http.StatusNotFound, `{"message":"record not found"}`)
	})

	_, err := c.Get(context.Background(), "tblTickets", "recMissing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, record.IsNotFound(err))

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get", se.Op)
	assert.Equal(t, `{"message":"record not found"}`, se.Detail())
}

func TestClient_NoRetryOnServerError(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, `upstream down`)
	})

	_, err := c.Update(context.Background(), "tblTickets", "recA", record.Fields{"Status ": "Closed"})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "status 502: upstream down")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestClient_UpdateBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"fields": map[string]any{"Status ": "Closed"}}, body["record"])
		assert.Equal(t, "name", body["fieldKeyType"])
		writeJSON(w, http.StatusOK, `{"id":"recA","fields":{"Status ":"Closed"}}`)
	})

	rec, err := c.Update(context.Background(), "tblTickets", "recA", record.Fields{"Status ": "Closed"})
	require.NoError(t, err)
	assert.Equal(t, "Closed", rec.String("Status "))
}

func TestClient_SearchRepeatsTerms(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"65", "Ticket ID ", "true"}, q["search"])
		assert.Equal(t, "1000", q.Get("take"))
		writeJSON(w, http.StatusOK, `{"records":[{"id":"rec1","fields":{"Ticket ID ":65}}]}`)
	})

	recs, err := c.Search(context.Background(), "tblGuests", []string{"65", "Ticket ID ", "true"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestClient_FilterEncodesPredicate(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.JSONEq(t,
			`{"conjunction":"and","filterSet":[{"fieldId":"fldID","operator":"is","value":65}]}`,
			r.URL.Query().Get("filter"))
		assert.Equal(t, "1", r.URL.Query().Get("take"))
		writeJSON(w, http.StatusOK, `{"records":[]}`)
	})

	recs, err := c.Filter(context.Background(), "tblTickets", record.Is("fldID", 65), 1)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestClient_ListKeyType(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id", r.URL.Query().Get("fieldKeyType"))
		assert.Equal(t, "20", r.URL.Query().Get("take"))
		writeJSON(w, http.StatusOK, `{"records":[{"id":"rec1","fields":{"fldAction":"Created"},"createdTime":"2026-03-01T09:30:00.000Z"}]}`)
	})

	recs, err := c.List(context.Background(), "tblAudit", record.Query{Take: 20, KeyType: record.KeyTypeID})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2026-03-01T09:30:00.000Z", recs[0].CreatedTime)
}

func TestClient_UploadFile(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/table/tblGuests/record/recG1/fldAtt/uploadAttachment", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cnic.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "PNGDATA", string(data))
		writeJSON(w, http.StatusOK, `{"id":"recG1","fields":{"Attachments":[{"id":"act1","name":"cnic.png"}]}}`)
	})

	rec, err := c.UploadFile(context.Background(), "tblGuests", "recG1", "fldAtt", record.File{
		Name: "cnic.png", ContentType: "image/png", Content: []byte("PNGDATA"),
	})
	require.NoError(t, err)
	assert.Equal(t, "recG1", rec.ID)
}

func TestClient_DeleteAndPing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			assert.Equal(t, "/api/table/tblVisit/record/recV1", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			assert.Equal(t, "/api/table/tblTickets/record", r.URL.Path)
			writeJSON(w, http.StatusOK, `{"records":[]}`)
		}
	}, WithPingTable("tblTickets"))

	require.NoError(t, c.Delete(context.Background(), "tblVisit", "recV1"))
	require.NoError(t, c.Ping(context.Background()))
}

func TestClient_PingWithoutTable(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Error(t, c.Ping(context.Background()))
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestClient_TransportErrorAndTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))

	_, err := c.Get(context.Background(), "tblTickets", "recA")
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.StatusCode)
	assert.NotEmpty(t, se.Detail())
}

func TestClient_MetricsAndSpans(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/recMissing") {
			writeJSON(w, http.StatusNotFound, `{}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"recA","fields":{}}`)
	}, WithMetrics(m), WithTracerProvider(tp))

	_, err := c.Get(context.Background(), "tblTickets", "recA")
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "tblTickets", "recMissing")
	require.Error(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(m.StoreRequestDuration))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "recordstore.get", spans[0].Name())
	assert.Equal(t, "Error", spans[1].Status().Code.String())
}
