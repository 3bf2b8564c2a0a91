// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "time"

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Creator     *string    `json:"creator"`
	TimeCreated time.Time  `json:"time_created"`
	TimeUpdated *time.Time `json:"time_updated"`
}

// NoteIDRequest Path parameter identifying a note, any integer is accepted and unknown ids are 404
// NoteIDRequest 笔记 ID 路径参数
type NoteIDRequest struct {
	ID int64 `uri:"id" json:"id"`
}

// NoteWriteRequest Body accepted by create and update
// title and content must be present; content may be empty, title may not
// NoteWriteRequest 创建和更新笔记的请求体
type NoteWriteRequest struct {
	Title   *string `json:"title" binding:"required,notblank"`
	Content *string `json:"content" binding:"required"`
	Creator *string `json:"creator"`
}

// NoteMessageResponse Confirmation returned by update and delete
// NoteMessageResponse 更新和删除的确认消息
type NoteMessageResponse struct {
	Message string `json:"message"`
}
