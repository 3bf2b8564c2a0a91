package api_router

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// Expvar 导出系统运行时指标 (expvar)
func Expvar() gin.HandlerFunc {
	return gin.WrapH(expvar.Handler())
}
