package database

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrSnapshotUnsupported is returned by Snapshot for engines other than SQLite.
var ErrSnapshotUnsupported = errors.New("snapshots are only supported for sqlite databases")

// Snapshot writes a consistent copy of a SQLite database to path. The file
// must not exist yet.
func (d Database) Snapshot(ctx context.Context, path string) error {
	if d.db.Dialector.Name() != "sqlite" {
		return ErrSnapshotUnsupported
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("snapshot target %s already exists", path)
	}
	if err := d.db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return fmt.Errorf("vacuum into %s: %w", path, err)
	}
	return nil
}
