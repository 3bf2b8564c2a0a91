package api_router

import (
	pkgapp "github.com/haierkeys/simple-note-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// RootGreeting 根路径返回的问候语
const RootGreeting = "This is the application backend."

// Root 返回服务问候语
// @Summary 服务问候
// @Produce json
// @Success 200 {string} string "This is the application backend."
// @Router / [get]
func Root(c *gin.Context) {
	pkgapp.NewResponse(c).ToData(RootGreeting)
}
