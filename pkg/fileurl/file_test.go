package fileurl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePathAndIsExist(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "config", "nested", "config.yaml")
	assert.False(t, IsExist(dst))
	assert.False(t, IsExist(filepath.Dir(dst)))

	require.NoError(t, CreatePath(dst, os.ModePerm))
	assert.True(t, IsExist(filepath.Dir(dst)))
	assert.False(t, IsExist(dst))

	require.NoError(t, os.WriteFile(dst, []byte("x"), 0644))
	assert.True(t, IsExist(dst))
}
