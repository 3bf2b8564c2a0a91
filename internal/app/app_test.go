package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/simple-note-service/internal/dao"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewApp_RequiresDependencies(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	_, err = NewApp(nil, zap.NewNop(), nil)
	assert.Error(t, err)

	_, err = NewApp(cfg, nil, nil)
	assert.Error(t, err)

	_, err = NewApp(cfg, zap.NewNop(), nil)
	assert.ErrorIs(t, err, dao.ErrNotInitialized)
}

func TestNewApp_Lifecycle(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	cfg.Database.URL = "sqlite:///" + filepath.Join(t.TempDir(), "notes.db")

	db, err := dao.NewDBEngineWithConfig(cfg.GetDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)

	a, err := NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	assert.NotNil(t, a.NoteService)
	assert.Equal(t, Version, a.Version().Version)
	require.NoError(t, a.Ping(context.Background()))

	notes, err := a.NoteService.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)

	require.NoError(t, a.Shutdown(context.Background()))
	// 重复关闭直接返回
	require.NoError(t, a.Shutdown(context.Background()))

	assert.Error(t, a.Ping(context.Background()))
}
