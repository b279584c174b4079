// Package webhook delivers audit entries to an external automation webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/shared/biztime"
	"github.com/namuve/frontdesk/internal/shared/config"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/utils/logutil"
)

const (
	SinkName = "webhook"

	// Response bodies are only read for logging
	maxResponseSize = 64 << 10
	maxLoggedBody   = 256
)

// Payload is the body the webhook receives. The first four key names are
// fixed by the receiving workflow; the ticket keys were added later and are
// ignored by older workflows.
type Payload struct {
	TicketStatus    string `json:"Ticket Status"`
	ApartmentNumber string `json:"Apartment Number"`
	Action          string `json:"Action"`
	ManagedBy       string `json:"Managed by"`
	TicketType      string `json:"Ticket Type"`
	TicketID        string `json:"Ticket ID"`
	Timestamp       string `json:"Timestamp"`
}

func PayloadFor(entry ticket.AuditEntry) Payload {
	p := Payload{
		TicketStatus:    entry.Status.String(),
		ApartmentNumber: entry.Apartment,
		Action:          entry.Action,
		ManagedBy:       entry.Username,
		TicketType:      entry.TicketType.String(),
		TicketID:        entry.BusinessID,
	}
	if !entry.Timestamp.IsZero() {
		p.Timestamp = biztime.FormatStoreTime(entry.Timestamp)
	}
	return p
}

func (p Payload) query() url.Values {
	return url.Values{
		"Ticket Status":    {p.TicketStatus},
		"Apartment Number": {p.ApartmentNumber},
		"Action":           {p.Action},
		"Managed by":       {p.ManagedBy},
		"Ticket Type":      {p.TicketType},
		"Ticket ID":        {p.TicketID},
		"Timestamp":        {p.Timestamp},
	}
}

// StatusError is returned when the webhook answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.StatusCode)
}

// Notifier posts audit entries to a single webhook URL.
type Notifier struct {
	url        string
	method     string
	httpClient *http.Client
	logger     logger.Interface
}

func NewNotifier(cfg *config.WebhookConfig, log logger.Interface) *Notifier {
	method := strings.ToUpper(strings.TrimSpace(cfg.Method))
	if method != http.MethodGet {
		method = http.MethodPost
	}
	return &Notifier{
		url:        strings.TrimSpace(cfg.URL),
		method:     method,
		httpClient: &http.Client{Timeout: cfg.GetTimeout()},
		logger:     log,
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool {
	return n.url != ""
}

func (n *Notifier) Name() string {
	return SinkName
}

// Deliver sends one entry. GET webhooks receive the payload as query parameters.
func (n *Notifier) Deliver(ctx context.Context, entry ticket.AuditEntry) error {
	if !n.Enabled() {
		return nil
	}
	payload := PayloadFor(entry)

	var (
		req *http.Request
		err error
	)
	if n.method == http.MethodGet {
		target := n.url
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target+sep+payload.query().Encode(), nil)
	} else {
		body, mErr := json.Marshal(payload)
		if mErr != nil {
			return fmt.Errorf("failed to encode webhook payload: %w", mErr)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call webhook: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(data))
		n.logger.Debugw("webhook returned error status",
			"status", resp.StatusCode,
			"body", logutil.TruncateForLog(text, maxLoggedBody),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: text}
	}

	n.logger.Debugw("webhook delivered",
		"action", entry.Action,
		"apartment", entry.Apartment,
		"business_id", entry.BusinessID,
		"status", resp.StatusCode,
	)
	return nil
}
