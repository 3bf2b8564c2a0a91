// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// List 获取全部笔记，按 ID 升序
	List(ctx context.Context) ([]*Note, error)

	// GetByID 根据ID获取笔记，不存在时返回 ErrNoteNotFound
	GetByID(ctx context.Context, id int64) (*Note, error)

	// Create 创建笔记，返回提交后的数据
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 更新笔记的 title/content/creator 并刷新 time_updated
	Update(ctx context.Context, note *Note) (*Note, error)

	// Delete 物理删除笔记
	Delete(ctx context.Context, id int64) error
}
