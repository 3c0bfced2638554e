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

// NoteHandler note API router handler
// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler creates NoteHandler instance
// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// noteID 解析路径中的笔记 ID
func noteID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("id")).MustInt64()
}

// Create creates a note
// @Summary Create a note
// @Description 创建笔记，初始版本为 1，创建者为拥有者。
// @Tags Note
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters"
// @Router /api/note [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	noteDTO, err := h.App.NoteService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(noteDTO))
}

// Get retrieves a note
// @Summary Get a note
// @Description 获取笔记全文，要求读权限。无关联用户得到"笔记不存在"。
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Not Found"
// @Router /api/note/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	noteDTO, err := h.App.NoteService.Get(ctx, uid, noteID(c))
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(noteDTO))
}

// Update updates a note with optimistic locking
// @Summary Update a note
// @Description 更新笔记，携带读取时的版本号，版本不一致时拒绝提交。
// @Tags Note
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param params body dto.NoteUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Version Conflict / Permission Denied"
// @Router /api/note/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	noteDTO, err := h.App.NoteService.Update(ctx, uid, noteID(c), params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(noteDTO))
}

// Delete soft-deletes a note
// @Summary Delete a note
// @Description 软删除笔记，仅拥有者可操作，版本历史保留。
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Not Found / Permission Denied"
// @Router /api/note/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	err := h.App.NoteService.Delete(ctx, uid, noteID(c))
	if err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Revert reverts a note to a historical version
// @Summary Revert a note
// @Description 回滚笔记到指定历史版本。回滚生成一个内容等于目标版本的新版本，历史不被改写。仅拥有者可操作。
// @Tags Note
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param params body dto.NoteRevertRequest true "Revert Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Version Conflict / Permission Denied"
// @Router /api/note/{id}/revert [post]
func (h *NoteHandler) Revert(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteRevertRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Revert.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	noteDTO, err := h.App.NoteService.Revert(ctx, uid, noteID(c), params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Revert", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(noteDTO))
}

// List lists accessible notes, optionally filtered by keyword
// @Summary List notes
// @Description 分页获取当前用户可访问的笔记（自有 + 被共享），携带 keyword 时按标题和内容搜索。
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page Size"
// @Param keyword query string false "Search Keyword"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "Success"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: h.App.Config().App.DefaultPageSize,
		MaxPageSize:     h.App.Config().App.MaxPageSize,
	})

	var (
		items []*dto.NoteListItemDTO
		count int64
		err   error
	)
	if keyword := c.Query("keyword"); keyword != "" {
		items, count, err = h.App.NoteService.Search(ctx, uid, keyword, page, pageSize)
	} else {
		items, count, err = h.App.NoteService.List(ctx, uid, page, pageSize)
	}
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, items, int(count))
}
