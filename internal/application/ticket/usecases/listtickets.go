package usecases

import (
	"context"

	"github.com/namuve/frontdesk/internal/application/ticket/dto"
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	ApartmentID string
}

type ListTicketsUseCase struct {
	store    record.Store
	registry *schema.Registry
	logger   logger.Interface
}

func NewListTicketsUseCase(store record.Store, registry *schema.Registry, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{store: store, registry: registry, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketDTO, error) {
	tickets := uc.registry.Tickets()

	records, err := uc.store.List(ctx, tickets.TableID, record.Query{})
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewStoreUnavailableError("failed to fetch tickets", record.ErrorDetail(err))
	}

	apartment := ticket.CleanValue(query.ApartmentID)
	out := make([]ticket.Ticket, 0, len(records))
	for i := range records {
		t := ticketFromRecord(tickets, &records[i])
		if apartment != "" && !ticket.BusinessIDMatches(t.ApartmentID, apartment) {
			continue
		}
		out = append(out, t)
	}
	return dto.ToTicketDTOs(out), nil
}
