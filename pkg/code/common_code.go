package code

import "net/http"

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal       = NewError(500, http.StatusInternalServerError, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI          = NewError(404, http.StatusNotFound, lang{en: "Not Found", zh_cn: "找不到接口"})
	ErrorMethodNotAllowed     = NewError(405, http.StatusMethodNotAllowed, lang{en: "Method %s not allowed", zh_cn: "不允许使用 %s 方法"})
	ErrorUnsupportedMediaType = NewError(415, http.StatusUnsupportedMediaType, lang{en: "Only application/json requests are accepted", zh_cn: "仅接受 application/json 请求"})
	ErrorInvalidParams        = NewError(422, http.StatusUnprocessableEntity, lang{en: "Invalid params", zh_cn: "入参错误"})
	ErrorTooManyRequests      = NewError(429, http.StatusTooManyRequests, lang{en: "Too Many Requests", zh_cn: "请求过多"})

	ErrorDBQuery      = NewError(505, http.StatusInternalServerError, lang{en: "Database query error", zh_cn: "数据库查询错误"})
	ErrorDBNotReady   = NewError(506, http.StatusInternalServerError, lang{en: "Database engine is not initialized", zh_cn: "数据库引擎未初始化"})
	ErrorNoteNotFound = NewError(1001, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
)
