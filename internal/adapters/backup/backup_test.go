package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/configsmith/device-reconciler/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("generated filename embeds host and timestamp", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(Config{DirPath: dir}, log.NewNop())
		store.now = func() time.Time {
			return time.Date(2016, 7, 16, 22, 28, 34, 0, time.UTC)
		}

		path, err := store.Write(ctx, "lb1", "hostname lb1\n")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "lb1_config.2016-07-16@22:28:34"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hostname lb1\n", string(data))
	})

	t.Run("explicit filename wins", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(Config{DirPath: dir, Filename: "backup.cfg"}, log.NewNop())

		path, err := store.Write(ctx, "lb1", "x")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "backup.cfg"), path)
	})

	t.Run("missing directory is created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "backups")
		store := NewFileStore(Config{DirPath: dir, Filename: "b.cfg"}, log.NewNop())

		_, err := store.Write(ctx, "lb1", "x")
		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
