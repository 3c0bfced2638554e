package api_router

import (
	"github.com/noteledger/note-ledger-service/internal/app"
	"github.com/noteledger/note-ledger-service/internal/dto"
	pkgapp "github.com/noteledger/note-ledger-service/pkg/app"
	"github.com/noteledger/note-ledger-service/pkg/code"
	"github.com/noteledger/note-ledger-service/pkg/convert"
	apperrors "github.com/noteledger/note-ledger-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShareHandler share API router handler
// ShareHandler 笔记共享 API 路由处理器
type ShareHandler struct {
	*Handler
}

// NewShareHandler creates ShareHandler instance
// NewShareHandler 创建 ShareHandler 实例
func NewShareHandler(a *app.App) *ShareHandler {
	return &ShareHandler{
		Handler: NewHandler(a),
	}
}

// Share shares a note with another user
// @Summary Share a note
// @Description 将笔记共享给指定用户，重复共享按更新授权类型处理。仅拥有者可操作，不能共享给自己。
// @Tags Share
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param params body dto.ShareUpsertRequest true "Share Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.ShareDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Permission Denied / Target User Not Found"
// @Router /api/note/{id}/share [post]
func (h *ShareHandler) Share(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareUpsertRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ShareHandler.Share.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	shareDTO, err := h.App.ShareService.Share(ctx, uid, noteID(c), params)
	if err != nil {
		h.logError(ctx, "ShareHandler.Share", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(shareDTO))
}

// Revoke revokes a share grant
// @Summary Revoke a share
// @Description 撤销对指定用户的共享，仅拥有者可操作。撤销后对方立即失去访问。
// @Tags Share
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Param uid path int true "Shared User UID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Not Found / Permission Denied"
// @Router /api/note/{id}/share/{uid} [delete]
func (h *ShareHandler) Revoke(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	sharedUID := convert.StrTo(c.Param("uid")).MustInt64()

	err := h.App.ShareService.Revoke(ctx, uid, noteID(c), sharedUID)
	if err != nil {
		h.logError(ctx, "ShareHandler.Revoke", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List lists share grants of a note
// @Summary List shares
// @Description 获取笔记的全部共享记录，仅拥有者可见。
// @Tags Share
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.ShareDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Not Found / Permission Denied"
// @Router /api/note/{id}/shares [get]
func (h *ShareHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	shares, err := h.App.ShareService.List(ctx, uid, noteID(c))
	if err != nil {
		h.logError(ctx, "ShareHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(shares))
}
