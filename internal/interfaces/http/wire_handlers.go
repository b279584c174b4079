package http

import (
	"context"

	activityHandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/activity"
	catalogHandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/catalog"
	"github.com/namuve/frontdesk/internal/interfaces/http/handlers/common"
	linkedHandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/linkedrecord"
	ticketHandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/ticket"
)

type allHandlers struct {
	health       *common.HealthHandler
	ticket       *ticketHandlers.TicketHandler
	linkedRecord *linkedHandlers.LinkedRecordHandler
	activity     *activityHandlers.ActivityHandler
	catalog      *catalogHandlers.CatalogHandler
}

func (c *Container) newHandlers() *allHandlers {
	checks := map[string]common.Check{"store": c.deps.Store.Ping}
	if c.deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.deps.Redis.Ping(ctx).Err() }
	}

	maxUpload := int64(c.cfg.Server.MaxUploadMB) << 20

	return &allHandlers{
		health: common.NewHealthHandler(checks, c.log),
		ticket: ticketHandlers.NewTicketHandler(
			c.ucs.createTicket, c.ucs.updateTicket, c.ucs.listTickets, c.log, maxUpload,
		),
		linkedRecord: linkedHandlers.NewLinkedRecordHandler(
			c.ucs.getLinked, c.ucs.updateLinked, c.ucs.uploadLinked, c.ucs.changePresence, c.ucs.removeLinked, c.log,
		),
		activity: activityHandlers.NewActivityHandler(c.ucs.logActivity, c.ucs.listActivity, c.log),
		catalog:  catalogHandlers.NewCatalogHandler(c.ucs.listOptions, c.ucs.listApartments, c.log),
	}
}
