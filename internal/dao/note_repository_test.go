package dao

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/simple-note-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNoteRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDao(t))

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	created, err := repo.Create(ctx, &domain.Note{Title: "Test Note", Content: "This is a test note", Creator: strPtr("Tester")})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Test Note", created.Title)
	assert.Equal(t, "Tester", *created.Creator)
	assert.False(t, created.TimeCreated.IsZero())
	assert.Nil(t, created.TimeUpdated)

	second, err := repo.Create(ctx, &domain.Note{Title: "Second", Content: ""})
	require.NoError(t, err)
	assert.Greater(t, second.ID, created.ID)
	assert.Nil(t, second.Creator)

	notes, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, created.ID, notes[0].ID)
	assert.Equal(t, second.ID, notes[1].ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "This is a test note", got.Content)

	got.Apply("Updated", "Changed", nil)
	updated, err := repo.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated", updated.Title)
	assert.Nil(t, updated.Creator)
	require.NotNil(t, updated.TimeUpdated)
	assert.True(t, created.TimeCreated.Equal(updated.TimeCreated))
	assert.False(t, updated.TimeUpdated.Before(updated.TimeCreated))

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNoteNotFound)
}

func TestNoteRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDao(t))

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)

	_, err = repo.Update(ctx, &domain.Note{ID: 42, Title: "x", Content: "y"})
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 42), domain.ErrNoteNotFound)
}

func TestNoteRepository_UsesRequestSession(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	sqlDB, err := d.Db.DB()
	require.NoError(t, err)

	s, release, err := d.Session(context.Background())
	require.NoError(t, err)
	ctx := ContextWithSession(context.Background(), s)

	_, err = repo.Create(ctx, &domain.Note{Title: "bound", Content: "c"})
	require.NoError(t, err)
	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	// the request session is the only connection checked out
	assert.Equal(t, 1, sqlDB.Stats().InUse)

	release()
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestNoteRepository_WithTracing(t *testing.T) {
	ctx := context.Background()
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		URL:          "sqlite:///" + filepath.Join(t.TempDir(), "notes.db"),
		AutoMigrate:  true,
		MaxIdleConns: 2,
		MaxOpenConns: 4,
		Tracing:      true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	assert.Len(t, db.Config.Plugins, 1)

	repo := NewNoteRepository(New(db))
	created, err := repo.Create(ctx, &domain.Note{Title: "Traced", Content: "c"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Traced", got.Title)
}
