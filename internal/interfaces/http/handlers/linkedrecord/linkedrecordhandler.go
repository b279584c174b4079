package linkedrecord

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/application/linkedrecord/usecases"
	"github.com/namuve/frontdesk/internal/interfaces/http/handlers/upload"
	"github.com/namuve/frontdesk/internal/shared/errors"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/utils"
)

type LinkedRecordHandler struct {
	getUC      usecases.GetLinkedRecordsExecutor
	updateUC   usecases.UpdateLinkedRecordExecutor
	uploadUC   usecases.UploadLinkedAttachmentExecutor
	presenceUC usecases.ChangePresenceExecutor
	removeUC   usecases.RemoveLinkedRecordExecutor
	logger     logger.Interface
}

func NewLinkedRecordHandler(
	getUC usecases.GetLinkedRecordsExecutor,
	updateUC usecases.UpdateLinkedRecordExecutor,
	uploadUC usecases.UploadLinkedAttachmentExecutor,
	presenceUC usecases.ChangePresenceExecutor,
	removeUC usecases.RemoveLinkedRecordExecutor,
	logger logger.Interface,
) *LinkedRecordHandler {
	return &LinkedRecordHandler{
		getUC:      getUC,
		updateUC:   updateUC,
		uploadUC:   uploadUC,
		presenceUC: presenceUC,
		removeUC:   removeUC,
		logger:     logger,
	}
}

// GetLinkedRecords handles GET /api/linked-records?ticket_id=&type=
func (h *LinkedRecordHandler) GetLinkedRecords(c *gin.Context) {
	query := usecases.GetLinkedRecordsQuery{
		BusinessID: c.Query("ticket_id"),
		Type:       c.Query("type"),
	}

	result, err := h.getUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// UpdateLinkedRecord handles PATCH /api/linked-records/:id
func (h *LinkedRecordHandler) UpdateLinkedRecord(c *gin.Context) {
	recordID, err := utils.ParseRecordIDParam(c, "id", "linked record")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateLinkedRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateLinkedRecordCommand{
		RecordID: recordID,
		Type:     req.Type,
		Fields:   req.Fields,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Linked record updated successfully", result)
}

// UploadAttachment handles POST /api/linked-records/:id/attachments
func (h *LinkedRecordHandler) UploadAttachment(c *gin.Context) {
	recordID, err := utils.ParseRecordIDParam(c, "id", "linked record")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file is required", err.Error()))
		return
	}
	file, err := upload.ReadFile(fh)
	if err != nil {
		h.logger.Warnw("failed to read upload", "error", err, "record_id", recordID)
		utils.ErrorResponseWithError(c, errors.NewValidationError("unreadable upload", err.Error()))
		return
	}

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadLinkedAttachmentCommand{
		RecordID: recordID,
		Type:     c.PostForm("type"),
		File:     file,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment uploaded successfully")
}

// ChangePresence handles POST /api/linked-records/:id/presence
func (h *LinkedRecordHandler) ChangePresence(c *gin.Context) {
	recordID, err := utils.ParseRecordIDParam(c, "id", "linked record")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.presenceUC.Execute(c.Request.Context(), usecases.ChangePresenceCommand{
		RecordID: recordID,
		Type:     req.ticketType(),
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Presence recorded", result)
}

// RemoveLinkedRecord handles DELETE /api/linked-records/:id?type=
func (h *LinkedRecordHandler) RemoveLinkedRecord(c *gin.Context) {
	recordID, err := utils.ParseRecordIDParam(c, "id", "linked record")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.removeUC.Execute(c.Request.Context(), usecases.RemoveLinkedRecordCommand{
		RecordID: recordID,
		Type:     c.Query("type"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
