package api_router

import (
	"github.com/noteledger/note-ledger-service/internal/app"
	pkgapp "github.com/noteledger/note-ledger-service/pkg/app"
	"github.com/noteledger/note-ledger-service/pkg/code"
	"github.com/noteledger/note-ledger-service/pkg/convert"
	apperrors "github.com/noteledger/note-ledger-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteVersionHandler note version API router handler
// NoteVersionHandler 笔记版本 API 路由处理器
type NoteVersionHandler struct {
	*Handler
}

// NewNoteVersionHandler creates NoteVersionHandler instance
// NewNoteVersionHandler 创建 NoteVersionHandler 实例
func NewNoteVersionHandler(a *app.App) *NoteVersionHandler {
	return &NoteVersionHandler{
		Handler: NewHandler(a),
	}
}

// List lists versions of a note
// @Summary List note versions
// @Description 按版本号降序分页获取笔记的版本历史（不含正文），要求读权限。
// @Tags NoteVersion
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Param page query int false "Page"
// @Param pageSize query int false "Page Size"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "Success"
// @Router /api/note/{id}/versions [get]
func (h *NoteVersionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: h.App.Config().App.DefaultPageSize,
		MaxPageSize:     h.App.Config().App.MaxPageSize,
	})

	versions, count, err := h.App.VersionService.List(ctx, uid, noteID(c), page, pageSize)
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, versions, int(count))
}

// Get retrieves a specific version of a note
// @Summary Get a note version
// @Description 获取笔记指定版本的完整快照（含正文），要求读权限。
// @Tags NoteVersion
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Param version path int true "Version Number"
// @Success 200 {object} pkgapp.Res{data=dto.NoteVersionDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Not Found"
// @Router /api/note/{id}/versions/{version} [get]
func (h *NoteVersionHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	version := convert.StrTo(c.Param("version")).MustInt64()

	versionDTO, err := h.App.VersionService.Get(ctx, uid, noteID(c), version)
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(versionDTO))
}

// Diff computes the content diff between two versions
// @Summary Diff two note versions
// @Description 计算笔记两个版本之间的内容差异补丁，要求读权限。
// @Tags NoteVersion
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Param from query int true "From Version"
// @Param to query int true "To Version"
// @Success 200 {object} pkgapp.Res{data=dto.NoteVersionDiffDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Not Found / Invalid Parameters"
// @Router /api/note/{id}/diff [get]
func (h *NoteVersionHandler) Diff(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	from := convert.StrTo(c.Query("from")).MustInt64()
	to := convert.StrTo(c.Query("to")).MustInt64()
	if from < 1 || to < 1 {
		response.ToResponse(code.ErrorNoteInvalidVersion)
		return
	}

	diffDTO, err := h.App.VersionService.Diff(ctx, uid, noteID(c), from, to)
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diffDTO))
}
