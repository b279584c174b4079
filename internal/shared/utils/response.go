package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/shared/errors"
)

// APIResponse is the envelope of every JSON body the service writes.
type APIResponse struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	Message   string     `json:"message,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// ErrorInfo carries the AppError taxonomy to clients. Details holds the
// upstream store text for store_unavailable errors.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// errorTypeRateLimited has no AppError counterpart; only middleware emits it.
const errorTypeRateLimited = "rate_limited"

func SuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// CreatedResponse writes 201. The message defaults to a generic one.
func CreatedResponse(c *gin.Context, data any, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusCreated, msg, data)
}

func OKResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorResponse writes a failure produced outside the use cases (panics,
// throttling). The error type follows the status code.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	errType := string(errors.ErrorTypeInternal)
	switch {
	case statusCode == http.StatusTooManyRequests:
		errType = errorTypeRateLimited
	case statusCode == http.StatusNotFound:
		errType = string(errors.ErrorTypeNotFound)
	case statusCode >= 400 && statusCode < 500:
		errType = string(errors.ErrorTypeBadRequest)
	}
	writeError(c, statusCode, ErrorInfo{Type: errType, Message: message})
}

// ErrorResponseWithError maps an AppError onto its status code. Any other
// error becomes an opaque 500 so internal text never reaches the client.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		writeError(c, http.StatusInternalServerError, ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		})
		return
	}
	writeError(c, appErr.Code, ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// writeError echoes the request id so a failed call can be matched to its
// log lines and audit entries.
func writeError(c *gin.Context, statusCode int, info ErrorInfo) {
	c.JSON(statusCode, APIResponse{
		Success:   false,
		Error:     &info,
		RequestID: GetRequestID(c),
	})
}
