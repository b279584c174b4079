package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
	// WriteLimit, when set, guards ticket creation.
	WriteLimit gin.HandlerFunc
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	{
		create := []gin.HandlerFunc{config.TicketHandler.CreateTicket}
		if config.WriteLimit != nil {
			create = append([]gin.HandlerFunc{config.WriteLimit}, create...)
		}
		tickets.POST("", create...)
		tickets.GET("", config.TicketHandler.ListTickets)
		// record_id / business_id carried in the body
		tickets.PATCH("", config.TicketHandler.UpdateTicket)
		tickets.PATCH("/:id", config.TicketHandler.UpdateTicket)
	}
}
