// Package backup persists raw running-config snapshots to local files
// before a run mutates the device.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/configsmith/device-reconciler/internal/core/ports"
	"github.com/configsmith/device-reconciler/internal/errors"
)

const (
	defaultDir      = "backup"
	timestampLayout = "2006-01-02@15:04:05"
)

type Config struct {
	// Filename overrides the generated <host>_config.<date>@<time> name.
	Filename string
	// DirPath is created if absent; defaults to ./backup.
	DirPath string
}

type FileStore struct {
	cfg    Config
	logger ports.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewFileStore(cfg Config, logger ports.Logger) *FileStore {
	return &FileStore{cfg: cfg, logger: logger, now: time.Now}
}

// Write stores contents under the configured directory and returns the full
// path of the backup file.
func (s *FileStore) Write(ctx context.Context, host, contents string) (string, error) {
	dir := s.cfg.DirPath
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.CodeBackupError, "failed to create backup directory "+dir)
	}

	name := s.cfg.Filename
	if name == "" {
		name = fmt.Sprintf("%s_config.%s", host, s.now().Format(timestampLayout))
	}
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return "", errors.Wrap(err, errors.CodeBackupError, "failed to write backup file "+path)
	}

	s.logger.Debugf(ctx, "Wrote backup file %s (%d bytes)", path, len(contents))
	return path, nil
}

var _ ports.BackupStore = (*FileStore)(nil)
