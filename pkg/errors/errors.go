package errors

import (
	"errors"
	"time"

	"github.com/haierkeys/simple-note-service/internal/middleware"
	"github.com/haierkeys/simple-note-service/pkg/app"
	"github.com/haierkeys/simple-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code *code.Code
	// TraceID 请求追踪ID
	TraceID string
	// Cause 原始错误
	Cause error
	// Timestamp 错误发生时间
	Timestamp time.Time
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Code.Msg() + ": " + e.Cause.Error()
	}
	return e.Code.Msg()
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match the wrapped code
func (e *AppError) Is(target error) bool {
	return e.Code.Is(target)
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// ErrorResponse 统一错误响应处理
// Codes render with their own status and message; anything else is a 500 with no internals exposed
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)
	response := app.NewResponse(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		response.ToResponse(appErr.Code)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		response.ToResponse(codeErr)
		return
	}

	response.ToResponse(code.ErrorServerInternal)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 从错误链中获取 AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
