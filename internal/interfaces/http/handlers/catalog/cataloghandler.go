package catalog

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/utils"
)

type listOptionsExecutor interface {
	Execute(ctx context.Context, catalog string) ([]string, error)
}

type listApartmentsExecutor interface {
	Execute(ctx context.Context) ([]record.Record, error)
}

type CatalogHandler struct {
	optionsUC    listOptionsExecutor
	apartmentsUC listApartmentsExecutor
	logger       logger.Interface
}

func NewCatalogHandler(optionsUC listOptionsExecutor, apartmentsUC listApartmentsExecutor, logger logger.Interface) *CatalogHandler {
	return &CatalogHandler{optionsUC: optionsUC, apartmentsUC: apartmentsUC, logger: logger}
}

// TicketOptions handles GET /api/options/tickets
func (h *CatalogHandler) TicketOptions(c *gin.Context) {
	h.list(c, schema.CatalogTicketOptions, "options")
}

// MaintenanceOptions handles GET /api/options/maintenance
func (h *CatalogHandler) MaintenanceOptions(c *gin.Context) {
	h.list(c, schema.CatalogMaintenanceOptions, "options")
}

// Agents handles GET /api/agents
func (h *CatalogHandler) Agents(c *gin.Context) {
	h.list(c, schema.CatalogAgents, "agents")
}

func (h *CatalogHandler) list(c *gin.Context, catalog, key string) {
	values, err := h.optionsUC.Execute(c.Request.Context(), catalog)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, gin.H{key: values})
}

// Apartments handles GET /api/apartments
func (h *CatalogHandler) Apartments(c *gin.Context) {
	records, err := h.apartmentsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, gin.H{"records": records})
}
