package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/shared/constants"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext creates a test gin.Context with the given method, path, and optional body.
func NewTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// SetActor sets the username and request id the actor middleware would set.
func SetActor(c *gin.Context, username, requestID string) {
	c.Set(constants.ContextKeyUsername, username)
	c.Set(constants.ContextKeyRequestID, requestID)
}

// SetURLParam sets a URL parameter on the gin context.
func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// SetQueryParams sets query parameters on the gin context.
func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// NewMultipartContext creates a test gin.Context carrying a multipart form.
// files maps form field names to file contents.
func NewMultipartContext(method, path string, values map[string]string, files map[string][]byte) (*gin.Context, *httptest.ResponseRecorder) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range values {
		_ = mw.WriteField(k, v)
	}
	for field, content := range files {
		part, _ := mw.CreateFormFile(field, field+".bin")
		_, _ = part.Write(content)
	}
	_ = mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// ParseResponse parses the JSON response body into the target struct.
func ParseResponse(w *httptest.ResponseRecorder, target any) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// APIResponse mirrors utils.APIResponse for test assertions.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ErrorInfo mirrors utils.ErrorInfo for test assertions.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewMockLogger returns a no-op logger.Interface for tests.
func NewMockLogger() logger.Interface {
	return &mockLogger{}
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)             {}
func (m *mockLogger) Info(msg string, args ...any)              {}
func (m *mockLogger) Warn(msg string, args ...any)              {}
func (m *mockLogger) Error(msg string, args ...any)             {}
func (m *mockLogger) Fatal(msg string, args ...any)             {}
func (m *mockLogger) With(args ...any) logger.Interface         { return m }
func (m *mockLogger) Named(name string) logger.Interface        { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any)   {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)    {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)    {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any)   {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...any)   {}
