package activity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/application/audit"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/utils"
)

type logActivityExecutor interface {
	Execute(ctx context.Context, cmd audit.LogActivityCommand) error
}

type listActivityExecutor interface {
	Execute(ctx context.Context, limit int) ([]audit.Activity, error)
}

type LogActivityRequest struct {
	Action     string `json:"action"`
	Status     string `json:"status" binding:"required"`
	Apartment  string `json:"apartment" binding:"required"`
	TicketType string `json:"ticket_type"`
	TicketID   string `json:"ticket_id"`
}

type ActivityHandler struct {
	logUC  logActivityExecutor
	listUC listActivityExecutor
	logger logger.Interface
}

func NewActivityHandler(logUC logActivityExecutor, listUC listActivityExecutor, logger logger.Interface) *ActivityHandler {
	return &ActivityHandler{logUC: logUC, listUC: listUC, logger: logger}
}

// LogActivity handles POST /api/activity. Delivery is asynchronous; 202 only
// means the entry was accepted.
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	var req LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	err := h.logUC.Execute(c.Request.Context(), audit.LogActivityCommand{
		Action:     req.Action,
		Status:     req.Status,
		Apartment:  req.Apartment,
		TicketType: req.TicketType,
		BusinessID: req.TicketID,
		Username:   utils.GetUsername(c),
		RequestID:  utils.GetRequestID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Activity accepted", nil)
}

// ListActivity handles GET /api/activity?limit=
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("limit must be a non-negative integer", raw))
			return
		}
		limit = n
	}

	result, err := h.listUC.Execute(c.Request.Context(), limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
