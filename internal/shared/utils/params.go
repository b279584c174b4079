package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/shared/constants"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/id"
)

// ParseRecordIDParam reads a store record id from a URL path parameter.
// entityName is used in error messages (e.g., "ticket", "linked record").
func ParseRecordIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	rid := c.Param(paramName)
	if rid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if !id.IsRecordID(rid) {
		return "", errors.NewValidationError(
			"invalid "+entityName+" ID format, expected "+id.RecordPrefix+"xxxxx",
		)
	}

	return rid, nil
}

// GetUsername returns the acting username set by the actor middleware.
func GetUsername(c *gin.Context) string {
	if v := c.GetString(constants.ContextKeyUsername); v != "" {
		return v
	}
	return constants.AnonymousUser
}

// GetRequestID returns the request id set by the request id middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
