package ticket

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/application/ticket/services"
	"github.com/namuve/frontdesk/internal/application/ticket/usecases"
	"github.com/namuve/frontdesk/internal/interfaces/http/handlers/upload"
	"github.com/namuve/frontdesk/internal/shared/constants"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/utils"
)

// HeaderIdempotentReplay marks a creation response served from the idempotency store.
const HeaderIdempotentReplay = "Idempotent-Replayed"

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	logger         logger.Interface
	maxUploadBytes int64
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	logger logger.Interface,
	maxUploadBytes int64,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		updateTicketUC: updateTicketUC,
		listTicketsUC:  listTicketsUC,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateTicket handles POST /api/tickets. Multipart forms carry the entity
// list as guests_data JSON plus one file per attachment slot.
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var (
		req   CreateTicketRequest
		files services.FileSet
		err   error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		files, err = h.bindMultipart(c, &req)
	} else {
		err = c.ShouldBindJSON(&req)
		if err != nil {
			err = errors.NewValidationError("invalid request body", err.Error())
		}
	}
	if err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd, err := req.ToCommand(utils.GetUsername(c), utils.GetRequestID(c), c.GetHeader(constants.HeaderIdempotencyKey))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	cmd.Files = files

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Replayed {
		c.Header(HeaderIdempotentReplay, "true")
	}
	utils.CreatedResponse(c, result, "Ticket created successfully")
}

func (h *TicketHandler) bindMultipart(c *gin.Context, req *CreateTicketRequest) (services.FileSet, error) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.NewValidationError("request body too large")
		}
		return nil, errors.NewValidationError("invalid multipart form", err.Error())
	}

	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	for key, dst := range req.formFields() {
		*dst = value(key)
	}
	req.ApartmentID = FlexString(value("apartment_id"))
	req.Occupancy = FlexString(value("occupancy"))

	files := services.FileSet{}
	for name, headers := range form.File {
		key, ok := services.ParseSlotKey(name)
		if !ok || len(headers) == 0 {
			h.logger.Debugw("ignoring unrecognised upload field", "field", name)
			continue
		}
		f, err := upload.ReadFile(headers[0])
		if err != nil {
			return nil, errors.NewValidationError("unreadable upload", err.Error())
		}
		files[key] = f
	}
	return files, nil
}

// ListTickets handles GET /api/tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	query := usecases.ListTicketsQuery{ApartmentID: c.Query("apartment_id")}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// UpdateTicket handles PATCH /api/tickets/:id and PATCH /api/tickets. The
// path id, when present, wins over record_id in the body.
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := req.ToCommand(c.Param("id"), utils.GetUsername(c), utils.GetRequestID(c))

	result, err := h.updateTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}
