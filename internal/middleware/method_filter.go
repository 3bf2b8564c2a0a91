package middleware

import (
	"net/http"
	"strings"

	"github.com/haierkeys/simple-note-service/pkg/app"
	"github.com/haierkeys/simple-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// DefaultAllowedMethods 服务接受的请求方法
var DefaultAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// AllowMethods rejects every request whose method is not listed with 405.
// It must be registered on the engine so unknown paths are covered too.
// AllowMethods 拒绝不在列表内的请求方法
func AllowMethods(methods ...string) gin.HandlerFunc {
	if len(methods) == 0 {
		methods = DefaultAllowedMethods
	}
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[strings.ToUpper(m)] = struct{}{}
	}
	allowHeader := strings.Join(methods, ", ")

	return func(c *gin.Context) {
		if _, ok := allowed[c.Request.Method]; ok {
			c.Next()
			return
		}

		c.Header("Allow", allowHeader)
		app.NewResponse(c).ToResponse(code.ErrorMethodNotAllowed.WithArgs(c.Request.Method))
		c.Abort()
	}
}
