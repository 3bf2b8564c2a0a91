package api_router

import (
	"github.com/haierkeys/simple-note-service/internal/app"
	pkgapp "github.com/haierkeys/simple-note-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// VersionHandler 版本信息 API 路由处理器
type VersionHandler struct {
	*Handler
}

// VersionResponse 版本信息响应
type VersionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	pkgapp.VersionInfo
}

// NewVersionHandler 创建 VersionHandler 实例
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{
		Handler: NewHandler(a),
	}
}

// ServerVersion 返回服务名称、描述与版本
// @Summary Get server version info
// @Tags System
// @Produce json
// @Success 200 {object} VersionResponse "Success"
// @Router /version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	pkgapp.NewResponse(c).ToData(VersionResponse{
		Name:        app.Name,
		Description: app.Description,
		VersionInfo: h.App.Version(),
	})
}
