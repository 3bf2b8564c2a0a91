package app

import (
	"strings"

	"github.com/haierkeys/simple-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// ErrorRes is the error body: a human readable detail plus per-field errors on validation failures
// ErrorRes 错误响应结构：detail 为错误描述，验证失败时附带字段错误
type ErrorRes struct {
	Detail string      `json:"detail"`
	Errors ValidErrors `json:"errors,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

func GetAccessHost(c *gin.Context) string {
	AccessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		AccessProto = "http" + "://"
	} else {
		AccessProto = proto + "://"
	}
	return AccessProto + c.Request.Host
}

// ToResponse writes a code: success codes emit their data as the body, error codes emit ErrorRes
// ToResponse 输出到浏览器：成功码直接输出 data，错误码输出 ErrorRes
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	if codeObj.Status() {
		r.send(codeObj.StatusCode(), codeObj.Data())
		return
	}

	content := ErrorRes{Detail: codeObj.Msg()}
	if errs, ok := codeObj.Data().(ValidErrors); ok && codeObj.HaveData() {
		content.Errors = errs
	}
	if codeObj.HaveDetails() {
		content.Detail = content.Detail + ": " + strings.Join(codeObj.Details(), ", ")
	}
	r.send(codeObj.StatusCode(), content)
}

// ToData writes data with 200 OK
// ToData 直接输出数据
func (r *Response) ToData(data interface{}) {
	r.ToResponse(code.Success.WithData(data))
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
