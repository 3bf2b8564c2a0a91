package middleware

import (
	"github.com/haierkeys/simple-note-service/pkg/app"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAppName    = "X-App-Name"
	HeaderAppVersion = "X-App-Version"
)

// AppInfoWithConfig 注入应用名称与版本，并写入响应头
func AppInfoWithConfig(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Header(HeaderAppName, name)
		c.Header(HeaderAppVersion, version)

		c.Next()
	}
}
