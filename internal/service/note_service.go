// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/haierkeys/simple-note-service/internal/domain"
	"github.com/haierkeys/simple-note-service/internal/dto"
	"github.com/haierkeys/simple-note-service/pkg/code"
	apperrors "github.com/haierkeys/simple-note-service/pkg/errors"
	"github.com/haierkeys/simple-note-service/pkg/logger"

	"github.com/jinzhu/copier"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// List 获取全部笔记
	List(ctx context.Context) ([]*dto.NoteDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, id int64) (*dto.NoteDTO, error)

	// Create 创建笔记
	Create(ctx context.Context, params *dto.NoteWriteRequest) (*dto.NoteDTO, error)

	// Update 覆盖笔记的 title/content/creator
	Update(ctx context.Context, id int64, params *dto.NoteWriteRequest) (*dto.NoteMessageResponse, error)

	// Delete 删除笔记
	Delete(ctx context.Context, id int64) (*dto.NoteMessageResponse, error)
}

type noteService struct {
	noteRepo domain.NoteRepository
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, lg *zap.Logger) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &noteService{
		noteRepo: noteRepo,
		logger:   lg,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteService) domainToDTO(note *domain.Note) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	out := &dto.NoteDTO{}
	_ = copier.Copy(out, note)
	return out
}

// storeError maps repository failures onto response codes.
// Store internals are logged and never leave the process.
func (s *noteService) storeError(err error, action string, id int64) error {
	if errors.Is(err, domain.ErrNoteNotFound) {
		return code.ErrorNoteNotFound
	}
	s.logger.Error("note store failed",
		zap.String(logger.FieldAction, action),
		zap.Int64(logger.FieldNoteID, id),
		zap.Error(err),
	)
	return apperrors.NewAppError(code.ErrorDBQuery, pkgerrors.Wrap(err, action))
}

func (s *noteService) List(ctx context.Context) ([]*dto.NoteDTO, error) {
	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, s.storeError(err, "list notes", 0)
	}

	out := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, s.domainToDTO(n))
	}
	return out, nil
}

func (s *noteService) Get(ctx context.Context, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get note", id)
	}
	return s.domainToDTO(note), nil
}

func (s *noteService) Create(ctx context.Context, params *dto.NoteWriteRequest) (*dto.NoteDTO, error) {
	note := &domain.Note{}
	note.Apply(*params.Title, *params.Content, params.Creator)

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, s.storeError(err, "create note", 0)
	}

	s.logger.Info("note created",
		zap.Int64(logger.FieldNoteID, created.ID),
		zap.String(logger.FieldAction, "create"),
	)
	return s.domainToDTO(created), nil
}

func (s *noteService) Update(ctx context.Context, id int64, params *dto.NoteWriteRequest) (*dto.NoteMessageResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get note", id)
	}

	note.Apply(*params.Title, *params.Content, params.Creator)

	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, s.storeError(err, "update note", id)
	}

	s.logger.Info("note updated",
		zap.Int64(logger.FieldNoteID, updated.ID),
		zap.String(logger.FieldAction, "update"),
	)
	return &dto.NoteMessageResponse{
		Message: fmt.Sprintf("Note: %s was successfully updated (id: %d)", updated.Title, updated.ID),
	}, nil
}

func (s *noteService) Delete(ctx context.Context, id int64) (*dto.NoteMessageResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get note", id)
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return nil, s.storeError(err, "delete note", id)
	}

	s.logger.Info("note deleted",
		zap.Int64(logger.FieldNoteID, id),
		zap.String(logger.FieldAction, "delete"),
	)
	// title captured before the row went away
	return &dto.NoteMessageResponse{
		Message: fmt.Sprintf("Note: %s was successfully deleted (id: %d)", note.Title, note.ID),
	}, nil
}
