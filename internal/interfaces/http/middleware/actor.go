package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/namuve/frontdesk/internal/shared/constants"
)

// maxHeaderValue bounds client-supplied identifiers before they reach logs
// and the audit trail.
const maxHeaderValue = 128

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := sanitizeHeader(c.GetHeader(constants.HeaderXRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, rid)
		c.Header(constants.HeaderXRequestID, rid)
		c.Next()
	}
}

// Actor records the acting username from X-Username. Authentication happens
// upstream; the header is trusted as given.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := sanitizeHeader(c.GetHeader(constants.HeaderXUsername))
		if username == "" {
			username = constants.AnonymousUser
		}
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

func sanitizeHeader(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)
	if len(v) > maxHeaderValue {
		v = v[:maxHeaderValue]
	}
	return v
}
