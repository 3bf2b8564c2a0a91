package middleware

import (
	"net/http"
	"strings"

	"github.com/haierkeys/simple-note-service/pkg/app"
	"github.com/haierkeys/simple-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// MIMEJSON 唯一接受的请求体类型
const MIMEJSON = "application/json"

// RequireJSON rejects POST and PUT requests whose media type is not application/json with 415.
// Parameters such as charset are ignored. Other methods pass through untouched.
// RequireJSON 对 POST/PUT 请求校验 Content-Type
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut:
		default:
			c.Next()
			return
		}

		if !strings.EqualFold(c.ContentType(), MIMEJSON) {
			app.NewResponse(c).ToResponse(code.ErrorUnsupportedMediaType)
			c.Abort()
			return
		}

		c.Next()
	}
}
