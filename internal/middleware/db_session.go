package middleware

import (
	"github.com/haierkeys/simple-note-service/internal/dao"
	"github.com/haierkeys/simple-note-service/pkg/app"
	"github.com/haierkeys/simple-note-service/pkg/code"
	"github.com/haierkeys/simple-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DBSession binds one store session to the request and releases it on every exit path,
// panics included. Handlers reach it through the request context.
// DBSession 为每个请求绑定一个数据库会话，请求结束后释放
func DBSession(d *dao.Dao, lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, release, err := d.Session(c.Request.Context())
		defer release()

		if err != nil {
			lg.Error("acquire db session failed",
				zap.String(logger.FieldPath, c.Request.URL.Path),
				zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
				zap.Error(err),
			)
			app.NewResponse(c).ToResponse(code.ErrorDBNotReady)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(dao.ContextWithSession(c.Request.Context(), s))
		c.Next()
	}
}
