package api_router

import (
	"github.com/noteledger/note-ledger-service/internal/app"
	pkgapp "github.com/noteledger/note-ledger-service/pkg/app"
	"github.com/noteledger/note-ledger-service/pkg/code"
	"github.com/noteledger/note-ledger-service/pkg/convert"
	apperrors "github.com/noteledger/note-ledger-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AttachmentHandler attachment API router handler
// AttachmentHandler 附件 API 路由处理器
type AttachmentHandler struct {
	*Handler
}

// NewAttachmentHandler creates AttachmentHandler instance
// NewAttachmentHandler 创建 AttachmentHandler 实例
func NewAttachmentHandler(a *app.App) *AttachmentHandler {
	return &AttachmentHandler{
		Handler: NewHandler(a),
	}
}

// Upload uploads an attachment to a note
// @Summary Upload an attachment
// @Description 上传附件到笔记，要求写权限，超过大小上限拒绝。
// @Tags Attachment
// @Security UserAuthToken
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Note ID"
// @Param file formData file true "Attachment File"
// @Success 200 {object} pkgapp.Res{data=dto.AttachmentDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Too Large / Permission Denied"
// @Router /api/note/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.App.Logger().Error("AttachmentHandler.Upload.FormFile err", zap.Error(err))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	attachmentDTO, err := h.App.AttachmentService.Upload(ctx, uid, noteID(c), fileHeader)
	if err != nil {
		h.logError(ctx, "AttachmentHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(attachmentDTO))
}

// List lists attachments of a note
// @Summary List attachments
// @Description 获取笔记的附件列表，要求读权限。
// @Tags Attachment
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.AttachmentDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Not Found"
// @Router /api/note/{id}/attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	attachments, err := h.App.AttachmentService.List(ctx, uid, noteID(c))
	if err != nil {
		h.logError(ctx, "AttachmentHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(attachments))
}

// Delete deletes an attachment
// @Summary Delete an attachment
// @Description 删除附件，要求对所属笔记的写权限。存储端删除为尽力而为。
// @Tags Attachment
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Not Found / Permission Denied"
// @Router /api/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	attachmentID := convert.StrTo(c.Param("id")).MustInt64()

	err := h.App.AttachmentService.Delete(ctx, uid, attachmentID)
	if err != nil {
		h.logError(ctx, "AttachmentHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
