package middleware

import (
	"time"

	"github.com/haierkeys/simple-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogWithLogger 创建访问日志中间件（注入日志器）
func AccessLogWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		startTime := time.Now()
		c.Next()

		timeCost := time.Since(startTime)

		fields := []zap.Field{
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String(logger.FieldPath, path),
			zap.String("query", query),
			zap.Int(logger.FieldStatus, c.Writer.Status()),
			zap.Duration(logger.FieldDuration, timeCost),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		}
		if traceID := GetTraceIDFromGin(c); traceID != "" {
			fields = append(fields, zap.String(logger.FieldTraceID, traceID))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String(logger.FieldError, errs))
		}

		lg.Info("access", fields...)
	}
}
