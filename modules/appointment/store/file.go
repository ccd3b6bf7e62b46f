package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"appointment-sync/core/logger"
)

// FileAccessor keeps one store's records as a JSON array on disk. The mutex
// spans every load-mutate-save cycle so interleaved appends cannot lose
// records when the surrounding system serves concurrent requests.
type FileAccessor struct {
	path string
	mu   sync.Mutex
}

func NewFileAccessor(path string) *FileAccessor {
	return &FileAccessor{path: path}
}

func (f *FileAccessor) List() []RawRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileAccessor) Append(record RawRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records := f.load()
	records = append(records, record)
	return f.save(records)
}

func (f *FileAccessor) ReplaceAll(records []RawRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(records)
}

// load returns the backing collection, treating a missing, empty, or corrupt
// file as an empty collection.
func (f *FileAccessor) load() []RawRecord {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("FileAccessor:List:ReadError", "path", f.path, "error", err)
		}
		return []RawRecord{}
	}
	if len(data) == 0 {
		return []RawRecord{}
	}

	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("FileAccessor:List:CorruptFile", "path", f.path, "error", err)
		return []RawRecord{}
	}
	return records
}

// save writes the full collection, creating the data directory on first use.
// The write goes through a temp file and rename so a crash mid-write leaves
// the previous collection intact.
func (f *FileAccessor) save(records []RawRecord) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return os.Rename(tmp, f.path)
}
