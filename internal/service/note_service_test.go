package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/haierkeys/simple-note-service/internal/domain"
	"github.com/haierkeys/simple-note-service/internal/dto"
	"github.com/haierkeys/simple-note-service/pkg/code"
	apperrors "github.com/haierkeys/simple-note-service/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNoteRepo keeps notes in memory
type mockNoteRepo struct {
	domain.NoteRepository
	notes  map[int64]*domain.Note
	nextID int64
	err    error
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: map[int64]*domain.Note{}}
}

func (m *mockNoteRepo) List(ctx context.Context) ([]*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Note, 0, len(m.notes))
	for _, n := range m.notes {
		c := *n
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	n, ok := m.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	c := *n
	return &c, nil
}

func (m *mockNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	c := *note
	c.ID = m.nextID
	c.TimeCreated = time.Now()
	m.notes[c.ID] = &c
	out := c
	return &out, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	old, ok := m.notes[note.ID]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	now := time.Now()
	old.Apply(note.Title, note.Content, note.Creator)
	old.TimeUpdated = &now
	out := *old
	return &out, nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func strPtr(s string) *string { return &s }

func writeReq(title, content string, creator *string) *dto.NoteWriteRequest {
	return &dto.NoteWriteRequest{Title: &title, Content: &content, Creator: creator}
}

func TestNoteService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(newMockNoteRepo(), nil)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Len(t, list, 0)

	created, err := svc.Create(ctx, writeReq("Test Note", "This is a test note", strPtr("Tester")))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Test Note", created.Title)
	assert.Equal(t, "Tester", *created.Creator)
	assert.Nil(t, created.TimeUpdated)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Content, got.Content)

	msg, err := svc.Update(ctx, created.ID, writeReq("Updated Note", "", nil))
	require.NoError(t, err)
	assert.Equal(t, "Note: Updated Note was successfully updated (id: 1)", msg.Message)

	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.TimeCreated.Equal(got.TimeCreated))
	assert.Nil(t, got.Creator)
	assert.NotNil(t, got.TimeUpdated)

	msg, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Note: Updated Note was successfully deleted (id: 1)", msg.Message)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(newMockNoteRepo(), nil)

	_, err := svc.Get(ctx, 99)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, err = svc.Update(ctx, 99, writeReq("a", "b", nil))
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, err = svc.Delete(ctx, 99)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_StoreFailureHidesCause(t *testing.T) {
	ctx := context.Background()
	repo := newMockNoteRepo()
	repo.err = errors.New("disk I/O error")
	svc := NewNoteService(repo, nil)

	_, err := svc.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, code.ErrorDBQuery)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 500, appErr.Code.StatusCode())
	assert.NotContains(t, appErr.Code.Msg(), "disk")
	assert.Contains(t, appErr.Error(), "list notes: disk I/O error")
}

func TestNoteService_ListOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(newMockNoteRepo(), nil)

	for _, title := range []string{"c", "a", "b"} {
		_, err := svc.Create(ctx, writeReq(title, "x", nil))
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].Title, list[1].Title, list[2].Title})
	assert.Less(t, list[0].ID, list[1].ID)
	assert.Less(t, list[1].ID, list[2].ID)
}
