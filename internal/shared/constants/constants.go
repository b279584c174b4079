package constants

const (
	// HTTP Headers
	HeaderContentType    = "Content-Type"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXUsername      = "X-Username"
	HeaderIdempotencyKey = "Idempotency-Key"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyRequestID = "request_id"
	ContextKeyUsername  = "username"

	// AnonymousUser is recorded as the actor when no username header is sent.
	AnonymousUser = "anonymous"
)
