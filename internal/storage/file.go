package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/session"
)

// FileStore implements Storage with a single JSON save file. It is the
// default backend: one player, one save slot.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ Storage = (*FileStore)(nil)

// NewFileStore creates a file-backed session store writing to path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

func (f *FileStore) SaveSession(ctx context.Context, snap *session.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot corrupt the save.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	f.logger.Info("Game saved", "path", f.path)
	return nil
}

// LoadSession reads the save file. Passing uuid.Nil loads whatever save is
// present; a concrete id must match the saved session or the result is
// (nil, nil), the same contract as a Redis miss.
func (f *FileStore) LoadSession(ctx context.Context, id uuid.UUID) (*session.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save file: %w", err)
	}
	if id != uuid.Nil && snap.ID != id {
		return nil, nil
	}
	return &snap, nil
}

func (f *FileStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

// Ping verifies the save directory is writable.
func (f *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(f.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save path parent is not a directory: %s", dir)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
