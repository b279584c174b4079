package routes

import (
	"github.com/gin-gonic/gin"

	linkedhandlers "github.com/namuve/frontdesk/internal/interfaces/http/handlers/linkedrecord"
)

type LinkedRecordRouteConfig struct {
	LinkedRecordHandler *linkedhandlers.LinkedRecordHandler
}

func SetupLinkedRecordRoutes(api *gin.RouterGroup, config *LinkedRecordRouteConfig) {
	h := config.LinkedRecordHandler
	linked := api.Group("/linked-records")
	{
		linked.GET("", h.GetLinkedRecords)

		linked.POST("/:id/attachments", h.UploadAttachment)
		linked.POST("/:id/presence", h.ChangePresence)

		linked.PATCH("/:id", h.UpdateLinkedRecord)
		linked.DELETE("/:id", h.RemoveLinkedRecord)
	}
}
