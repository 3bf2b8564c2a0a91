package api_router

import (
	"github.com/haierkeys/simple-note-service/internal/app"
	"github.com/haierkeys/simple-note-service/internal/dto"
	pkgapp "github.com/haierkeys/simple-note-service/pkg/app"
	"github.com/haierkeys/simple-note-service/pkg/code"
	apperrors "github.com/haierkeys/simple-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// invalidParams 输出 422，detail 中列出所有字段错误
func invalidParams(c *gin.Context, errs pkgapp.ValidErrors) {
	pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs))
}

// bindID 绑定路径中的笔记 ID
func (h *NoteHandler) bindID(c *gin.Context) (int64, bool) {
	params := &dto.NoteIDRequest{}
	if valid, errs := pkgapp.BindUriAndValid(c, params); !valid {
		h.App.Logger().Debug("NoteHandler.bindID err", zap.Error(errs))
		invalidParams(c, errs)
		return 0, false
	}
	return params.ID, true
}

// List 获取全部笔记
// @Summary 获取笔记列表
// @Produce json
// @Success 200 {array} dto.NoteDTO "成功"
// @Router /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	notes, err := h.App.NoteService.List(ctx)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToData(notes)
}

// Get 获取单条笔记
// @Summary 获取笔记详情
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 404 {object} pkgapp.ErrorRes "Note not found"
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToData(note)
}

// Create 创建笔记
// @Summary 创建笔记
// @Accept json
// @Produce json
// @Param params body dto.NoteWriteRequest true "笔记内容"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 422 {object} pkgapp.ErrorRes "参数错误"
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	params := &dto.NoteWriteRequest{}

	// 参数绑定和验证
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		h.App.Logger().Debug("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		invalidParams(c, errs)
		return
	}
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToData(note)
}

// Update 更新笔记
// @Summary 更新笔记
// @Accept json
// @Produce json
// @Param id path int true "笔记 ID"
// @Param params body dto.NoteWriteRequest true "笔记内容"
// @Success 200 {object} dto.NoteMessageResponse "成功"
// @Failure 404 {object} pkgapp.ErrorRes "Note not found"
// @Failure 422 {object} pkgapp.ErrorRes "参数错误"
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	params := &dto.NoteWriteRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		h.App.Logger().Debug("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		invalidParams(c, errs)
		return
	}
	ctx := c.Request.Context()

	msg, err := h.App.NoteService.Update(ctx, id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToData(msg)
}

// Delete 删除笔记
// @Summary 删除笔记
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} dto.NoteMessageResponse "成功"
// @Failure 404 {object} pkgapp.ErrorRes "Note not found"
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	msg, err := h.App.NoteService.Delete(ctx, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToData(msg)
}
