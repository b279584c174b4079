package usecases

import (
	"context"

	"github.com/namuve/frontdesk/internal/application/ticket/dto"
	"github.com/namuve/frontdesk/internal/application/ticket/services"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketDTO, error)
}

// AuditEmitter accepts audit entries for best-effort delivery.
type AuditEmitter interface {
	Emit(ctx context.Context, entry ticket.AuditEntry)
}

type AttachmentUploader interface {
	Upload(ctx context.Context, collection *schema.Collection, created []services.CreatedRef, files services.FileSet) services.UploadReport
}

// IdempotencyStore deduplicates ticket creations that carry an Idempotency-Key.
type IdempotencyStore interface {
	Begin(ctx context.Context, key string) ([]byte, error)
	Complete(ctx context.Context, key string, response []byte) error
	Release(ctx context.Context, key string) error
}
