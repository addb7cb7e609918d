package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/fileio"
	"github.com/doeshing/organize-desk/internal/pkg/filesystem"
	"github.com/doeshing/organize-desk/internal/ports"
)

// FileStore appends run logs to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path, defaulting to
// ~/.organize-desk/runlogs.jsonl.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(filesystem.AppDir(), "runlogs.jsonl")
	}
	return &FileStore{path: path}
}

// Save implements ports.RunLogRepository.
func (f *FileStore) Save(record domain.RunLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Get returns the record with the given id.
func (f *FileStore) Get(id string) (domain.RunLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.readAll()
	if err != nil {
		return domain.RunLog{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.RunLog{}, domain.ErrRunLogNotFound
}

// List returns records newest first.
func (f *FileStore) List(limit int) ([]domain.RunLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.readAll()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Delete removes one record.
func (f *FileStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.readAll()
	if err != nil {
		return err
	}
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return domain.ErrRunLogNotFound
	}
	return f.rewrite(kept)
}

// Clear removes the log file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Prune keeps the newest keep records.
func (f *FileStore) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.readAll()
	if err != nil {
		return err
	}
	if len(records) <= keep {
		return nil
	}
	return f.rewrite(records[:keep])
}

// ExportJSON writes all records to dest as jsonl, newest first.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.List(0)
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// readAll loads every decodable record, newest first. Corrupt lines are skipped.
func (f *FileStore) readAll() ([]domain.RunLog, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.RunLog
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.RunLog
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	// appended oldest first; reverse before the stable sort so ties keep newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// rewrite stores records (newest first) back in append order.
func (f *FileStore) rewrite(records []domain.RunLog) error {
	var buf bytes.Buffer
	for i := len(records) - 1; i >= 0; i-- {
		data, err := json.Marshal(records[i])
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	return fileio.WriteAtomic(f.path, buf.Bytes(), domain.SecureFilePermissions, false)
}

func writeJSONL(dest string, records []domain.RunLog) error {
	var buf bytes.Buffer
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return fileio.WriteAtomic(dest, buf.Bytes(), domain.FilePermissions, false)
}

var _ ports.RunLogRepository = (*FileStore)(nil)
