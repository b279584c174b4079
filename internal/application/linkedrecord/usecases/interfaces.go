package usecases

import (
	"context"

	"github.com/namuve/frontdesk/internal/application/linkedrecord/dto"
)

type GetLinkedRecordsExecutor interface {
	Execute(ctx context.Context, query GetLinkedRecordsQuery) ([]dto.LinkedRecord, error)
}

type UpdateLinkedRecordExecutor interface {
	Execute(ctx context.Context, cmd UpdateLinkedRecordCommand) (*dto.LinkedRecord, error)
}

type UploadLinkedAttachmentExecutor interface {
	Execute(ctx context.Context, cmd UploadLinkedAttachmentCommand) (*dto.LinkedRecord, error)
}

type ChangePresenceExecutor interface {
	Execute(ctx context.Context, cmd ChangePresenceCommand) (*ChangePresenceResult, error)
}

type RemoveLinkedRecordExecutor interface {
	Execute(ctx context.Context, cmd RemoveLinkedRecordCommand) error
}
