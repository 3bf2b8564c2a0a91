package dao

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/simple-note-service/internal/domain"
	"github.com/haierkeys/simple-note-service/internal/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将 DAO Note 转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	note := &domain.Note{}
	_ = copier.Copy(note, m)
	return note
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	m := &model.Note{}
	_ = copier.Copy(m, note)
	return m
}

func (r *noteRepository) first(db *gorm.DB, id int64) (*model.Note, error) {
	m := &model.Note{}
	err := db.Where("id = ?", id).Take(m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List 获取全部笔记
func (r *noteRepository) List(ctx context.Context) ([]*domain.Note, error) {
	db, release, err := r.dao.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var ms []*model.Note
	if err := db.Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	db, release, err := r.dao.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	m, err := r.first(db, id)
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	db, release, err := r.dao.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	m := r.toModel(note)
	m.ID = 0
	m.TimeUpdated = nil

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}

	// Reload so the caller sees what was committed
	// 重新加载，返回提交后的数据
	saved, err := r.first(db, m.ID)
	if err != nil {
		return nil, err
	}
	return r.toDomain(saved), nil
}

// Update 更新笔记
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	db, release, err := r.dao.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		// MySQL reports zero affected rows for unchanged values, so locate first
		if _, err := r.first(tx, note.ID); err != nil {
			return err
		}
		return tx.Model(&model.Note{}).Where("id = ?", note.ID).Updates(map[string]interface{}{
			"title":        note.Title,
			"content":      note.Content,
			"creator":      note.Creator,
			"time_updated": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	saved, err := r.first(db, note.ID)
	if err != nil {
		return nil, err
	}
	return r.toDomain(saved), nil
}

// Delete 物理删除笔记
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	db, release, err := r.dao.conn(ctx)
	if err != nil {
		return err
	}
	defer release()

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Note{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNoteNotFound
		}
		return nil
	})
}
