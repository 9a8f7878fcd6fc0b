package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// FileStore persists address book snapshots at a fixed path using one
// codec.
type FileStore struct {
	path  string
	codec Codec
}

// NewFileStore creates a FileStore writing to path with codec.
func NewFileStore(path string, codec Codec) *FileStore {
	return &FileStore{path: path, codec: codec}
}

// Path returns the snapshot path.
func (s *FileStore) Path() string { return s.path }

// Save writes the book as one atomic snapshot. The document is
// marshaled up front, written to a temp sibling, synced, then renamed
// over the destination, so a failed save leaves the destination either
// untouched or fully written, never truncated. The temp file is
// removed on any failure.
func (s *FileStore) Save(b *book.Book) error {
	data, err := s.codec.Marshal(Snapshot(b))
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("snapshot: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("snapshot: writing %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("snapshot: chmod %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("snapshot: syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("snapshot: renaming into %s: %w", s.path, err)
	}
	committed = true
	return nil
}

// Load reads the snapshot back into records.
// Returns (records, true, nil) on success, (nil, false, nil) when the
// file does not exist, and (nil, false, err) on unreadable or
// undecodable content. Never returns a partial record set; keeping the
// in-memory book untouched on a failed load is the caller's side of
// the contract.
func (s *FileStore) Load() ([]contact.Record, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("snapshot: reading %s: %w", s.path, err)
	}

	doc, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, false, err
	}
	records, err := Restore(doc)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}
