package routes

import (
	"github.com/gin-gonic/gin"

	activityhandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/activity"
	cataloghandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/catalog"
)

type ActivityRouteConfig struct {
	ActivityHandler *activityhandlers.ActivityHandler
}

func SetupActivityRoutes(api *gin.RouterGroup, config *ActivityRouteConfig) {
	activity := api.Group("/activity")
	{
		activity.POST("", config.ActivityHandler.LogActivity)
		activity.GET("", config.ActivityHandler.ListActivity)
	}
}

type CatalogRouteConfig struct {
	CatalogHandler *cataloghandlers.CatalogHandler
}

func SetupCatalogRoutes(api *gin.RouterGroup, config *CatalogRouteConfig) {
	h := config.CatalogHandler
	api.GET("/options/tickets", h.TicketOptions)
	api.GET("/options/maintenance", h.MaintenanceOptions)
	api.GET("/agents", h.Agents)
	api.GET("/apartments", h.Apartments)
}
