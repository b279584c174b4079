package http

import (
	"github.com/namuve/frontdesk/internal/application/audit"
	catalogUsecases "github.com/namuve/frontdesk/internal/application/catalog/usecases"
	linkedUsecases "github.com/namuve/frontdesk/internal/application/linkedrecord/usecases"
	"github.com/namuve/frontdesk/internal/application/ticket/services"
	ticketUsecases "github.com/namuve/frontdesk/internal/application/ticket/usecases"
	"github.com/namuve/frontdesk/internal/infrastructure/cache"
)

type allUseCases struct {
	createTicket *ticketUsecases.CreateTicketUseCase
	updateTicket *ticketUsecases.UpdateTicketUseCase
	listTickets  *ticketUsecases.ListTicketsUseCase

	getLinked      *linkedUsecases.GetLinkedRecordsUseCase
	updateLinked   *linkedUsecases.UpdateLinkedRecordUseCase
	uploadLinked   *linkedUsecases.UploadLinkedAttachmentUseCase
	changePresence *linkedUsecases.ChangePresenceUseCase
	removeLinked   *linkedUsecases.RemoveLinkedRecordUseCase

	logActivity  *audit.LogActivityUseCase
	listActivity *audit.ListRecentActivityUseCase

	listOptions    *catalogUsecases.ListOptionsUseCase
	listApartments *catalogUsecases.ListApartmentsUseCase
}

func (c *Container) newUseCases() *allUseCases {
	store, registry, m := c.deps.Store, c.deps.Registry, c.deps.Metrics

	var idempotency ticketUsecases.IdempotencyStore
	if c.deps.Redis != nil {
		idempotency = cache.NewIdempotencyStore(c.deps.Redis, c.cfg.Idempotency.GetTTL())
	}
	uploader := services.NewAttachmentUploader(store, c.log, m)

	return &allUseCases{
		createTicket: ticketUsecases.NewCreateTicketUseCase(store, registry, uploader, c.fanout, idempotency, c.log, m),
		updateTicket: ticketUsecases.NewUpdateTicketUseCase(store, registry, c.fanout, c.log),
		listTickets:  ticketUsecases.NewListTicketsUseCase(store, registry, c.log),

		getLinked:      linkedUsecases.NewGetLinkedRecordsUseCase(store, registry, c.log),
		updateLinked:   linkedUsecases.NewUpdateLinkedRecordUseCase(store, registry, c.log),
		uploadLinked:   linkedUsecases.NewUploadLinkedAttachmentUseCase(store, registry, c.log),
		changePresence: linkedUsecases.NewChangePresenceUseCase(store, registry, c.log),
		removeLinked:   linkedUsecases.NewRemoveLinkedRecordUseCase(store, registry, c.log),

		logActivity:  audit.NewLogActivityUseCase(c.fanout, c.log),
		listActivity: audit.NewListRecentActivityUseCase(store, registry, c.log),

		listOptions:    catalogUsecases.NewListOptionsUseCase(store, registry, c.log),
		listApartments: catalogUsecases.NewListApartmentsUseCase(store, registry, c.log),
	}
}
