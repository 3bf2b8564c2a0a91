// Package domain 定义领域模型和接口
package domain

import (
	"errors"
	"time"
)

// ErrNoteNotFound is returned by repositories when no row matches the id
var ErrNoteNotFound = errors.New("note not found")

// Note 笔记领域模型
type Note struct {
	ID          int64
	Title       string
	Content     string
	Creator     *string
	TimeCreated time.Time
	TimeUpdated *time.Time
}

// Apply overwrites the writable fields, id and timestamps are left untouched
func (n *Note) Apply(title, content string, creator *string) {
	n.Title = title
	n.Content = content
	n.Creator = creator
}

// CreatorOr returns the creator, or fallback when the note has none
func (n *Note) CreatorOr(fallback string) string {
	if n.Creator == nil || *n.Creator == "" {
		return fallback
	}
	return *n.Creator
}
