package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// HTTP 状态码
	httpStatus int
	// 状态
	status bool
	// 错误消息
	Lang lang
	// 格式化参数
	args []interface{}
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers an error code bound to an HTTP status
// NewError 注册一个绑定 HTTP 状态码的错误码
func NewError(code int, httpStatus int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()

	return &Code{code: code, httpStatus: httpStatus, status: false, Lang: l}
}

var sussCodes = map[int]string{}

func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, httpStatus: http.StatusOK, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本
// Registered codes are package-level values, every With* call works on a copy.
func (e *Code) Clone() *Code {
	details := make([]string, len(e.details))
	copy(details, e.details)
	return &Code{
		code:        e.code,
		httpStatus:  e.httpStatus,
		status:      e.status,
		Lang:        e.Lang,
		args:        e.args,
		data:        e.data,
		haveData:    e.haveData,
		details:     details,
		haveDetails: e.haveDetails,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

// Msg returns the localized message, formatted with WithArgs values when present
func (e *Code) Msg() string {
	if len(e.args) > 0 {
		return fmt.Sprintf(e.Lang.GetMessage(), e.args...)
	}
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// WithArgs 设置消息格式化参数
func (e *Code) WithArgs(args ...interface{}) *Code {
	c := e.Clone()
	c.args = args
	return c
}

// Is reports whether target is the same registered code
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code
}

func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
