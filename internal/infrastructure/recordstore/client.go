// Package recordstore is the HTTP client of the external record store.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/shared/config"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/metrics"
	"github.com/namuve/frontdesk/internal/shared/utils/logutil"
)

const (
	// Maximum response body read from the store (8MB)
	maxResponseSize = 8 << 20
	// Upstream bodies are cut to this length in logs
	maxLoggedBody = 512

	tracerName = "github.com/namuve/frontdesk/internal/infrastructure/recordstore"
)

// Client implements record.Store over the store's REST API.
type Client struct {
	baseURL     string
	token       string
	searchLimit int
	pingTableID string
	httpClient  *http.Client
	logger      logger.Interface
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

var _ record.Store = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// WithPingTable names the collection Ping reads from.
func WithPingTable(tableID string) Option {
	return func(c *Client) { c.pingTableID = tableID }
}

func NewClient(cfg *config.StoreConfig, log logger.Interface, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.Token,
		searchLimit: cfg.SearchLimit,
		httpClient:  &http.Client{Timeout: cfg.GetTimeout()},
		logger:      log,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createRequest struct {
	Records      []createRecord `json:"records"`
	FieldKeyType record.KeyType `json:"fieldKeyType"`
	Typecast     bool           `json:"typecast"`
}

type createRecord struct {
	Fields record.Fields `json:"fields"`
}

type updateRequest struct {
	Record       createRecord   `json:"record"`
	FieldKeyType record.KeyType `json:"fieldKeyType"`
	Typecast     bool           `json:"typecast"`
}

type recordsResponse struct {
	Records []record.Record `json:"records"`
}

func (c *Client) Create(ctx context.Context, tableID string, records []record.Fields, keyType record.KeyType) ([]record.Record, error) {
	if keyType == "" {
		keyType = record.KeyTypeName
	}
	req := createRequest{
		Records:      make([]createRecord, len(records)),
		FieldKeyType: keyType,
		Typecast:     true,
	}
	for i, f := range records {
		req.Records[i] = createRecord{Fields: f}
	}

	var resp recordsResponse
	if err := c.doJSON(ctx, "create", http.MethodPost, tablePath(tableID), nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *Client) Get(ctx context.Context, tableID, recordID string) (*record.Record, error) {
	q := url.Values{"fieldKeyType": {string(record.KeyTypeName)}}
	var rec record.Record
	if err := c.doJSON(ctx, "get", http.MethodGet, recordPath(tableID, recordID), q, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Update(ctx context.Context, tableID, recordID string, fields record.Fields) (*record.Record, error) {
	req := updateRequest{
		Record:       createRecord{Fields: fields},
		FieldKeyType: record.KeyTypeName,
		Typecast:     true,
	}
	var rec record.Record
	if err := c.doJSON(ctx, "update", http.MethodPatch, recordPath(tableID, recordID), nil, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Delete(ctx context.Context, tableID, recordID string) error {
	return c.doJSON(ctx, "delete", http.MethodDelete, recordPath(tableID, recordID), nil, nil, nil)
}

func (c *Client) Search(ctx context.Context, tableID string, terms []string) ([]record.Record, error) {
	q := c.listQuery(record.Query{})
	for _, t := range terms {
		q.Add("search", t)
	}
	var resp recordsResponse
	if err := c.doJSON(ctx, "search", http.MethodGet, tablePath(tableID), q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *Client) Filter(ctx context.Context, tableID string, filter record.Filter, take int) ([]record.Record, error) {
	encoded, err := json.Marshal(filter)
	if err != nil {
		return nil, &StoreError{Op: "filter", Err: fmt.Errorf("encode filter: %w", err)}
	}
	q := c.listQuery(record.Query{Take: take})
	q.Set("filter", string(encoded))

	var resp recordsResponse
	if err := c.doJSON(ctx, "filter", http.MethodGet, tablePath(tableID), q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *Client) List(ctx context.Context, tableID string, query record.Query) ([]record.Record, error) {
	var resp recordsResponse
	if err := c.doJSON(ctx, "list", http.MethodGet, tablePath(tableID), c.listQuery(query), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// UploadFile sends file as the multipart part "file" to one attachment field.
func (c *Client) UploadFile(ctx context.Context, tableID, recordID, fieldID string, file record.File) (*record.Record, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, &StoreError{Op: "upload", Err: fmt.Errorf("create multipart part: %w", err)}
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, &StoreError{Op: "upload", Err: fmt.Errorf("write multipart part: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &StoreError{Op: "upload", Err: fmt.Errorf("close multipart writer: %w", err)}
	}

	path := recordPath(tableID, recordID) + "/" + url.PathEscape(fieldID) + "/uploadAttachment"
	var rec record.Record
	if err := c.do(ctx, "upload", http.MethodPost, path, nil, &buf, mw.FormDataContentType(), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Ping reads a single record from the ping table.
func (c *Client) Ping(ctx context.Context) error {
	if c.pingTableID == "" {
		return &StoreError{Op: "ping", Err: fmt.Errorf("no ping table configured")}
	}
	_, err := c.List(ctx, c.pingTableID, record.Query{Take: 1})
	return err
}

func (c *Client) listQuery(query record.Query) url.Values {
	q := url.Values{}
	keyType := query.KeyType
	if keyType == "" {
		keyType = record.KeyTypeName
	}
	q.Set("fieldKeyType", string(keyType))

	take := query.Take
	if take <= 0 {
		take = c.searchLimit
	}
	if take > 0 {
		q.Set("take", strconv.Itoa(take))
	}
	return q
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &StoreError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, query, body, contentType, out)
}

// do performs exactly one request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	ctx, span := c.tracer.Start(ctx, "recordstore."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("store.op", op),
			attribute.String("http.request.method", method),
			attribute.String("store.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	status, err := c.roundTrip(ctx, op, method, path, query, body, contentType, out)
	elapsed := time.Since(start)

	c.metrics.ObserveStoreRequest(op, status, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	c.logger.Debugw("store request",
		"op", op,
		"method", method,
		"path", path,
		"status", status,
		"elapsed", elapsed,
	)
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string, out any) (int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, &StoreError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &StoreError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, &StoreError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(data))
		c.logger.Debugw("store returned error status",
			"op", op,
			"status", resp.StatusCode,
			"body", logutil.TruncateForLog(text, maxLoggedBody),
		)
		return resp.StatusCode, &StoreError{Op: op, StatusCode: resp.StatusCode, Body: text}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return resp.StatusCode, &StoreError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return resp.StatusCode, nil
}

func tablePath(tableID string) string {
	return "/table/" + url.PathEscape(tableID) + "/record"
}

func recordPath(tableID, recordID string) string {
	return tablePath(tableID) + "/" + url.PathEscape(recordID)
}
