package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/pkg/filesystem"
	"github.com/doeshing/organize-desk/internal/ports"
)

const timestampLayout = time.RFC3339Nano

// SQLiteStore persists run logs in a SQLite database. When the database
// cannot be opened every call is served by a jsonl FileStore next to it.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the run log database, defaulting to
// ~/.organize-desk/runlogs.db.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(filesystem.AppDir(), "runlogs.db")
	}
	fallback := NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, fallback: fallback}
	}
	store := &SQLiteStore{db: db, path: path, fallback: fallback}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteStore{path: path, fallback: fallback}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS run_logs (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		command TEXT NOT NULL,
		config_name TEXT,
		config_content TEXT,
		output TEXT,
		exit_code INTEGER,
		duration_ms INTEGER,
		success INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.RunLog) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	output, err := json.Marshal(record.Output)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO run_logs
		(id, timestamp, command, config_name, config_content, output, exit_code, duration_ms, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UTC().Format(timestampLayout),
		string(record.Command),
		record.ConfigName,
		record.ConfigContent,
		string(output),
		record.ExitCode,
		record.DurationMS,
		boolToInt(record.Success),
	)
	return err
}

const selectColumns = "SELECT id, timestamp, command, config_name, config_content, output, exit_code, duration_ms, success FROM run_logs"

// Get returns the record with the given id.
func (s *SQLiteStore) Get(id string) (domain.RunLog, error) {
	if s.db == nil {
		return s.fallback.Get(id)
	}
	rec, err := scanRunLog(s.db.QueryRow(selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RunLog{}, domain.ErrRunLogNotFound
	}
	return rec, err
}

// List returns records newest first.
func (s *SQLiteStore) List(limit int) ([]domain.RunLog, error) {
	if s.db == nil {
		return s.fallback.List(limit)
	}
	builder := strings.Builder{}
	builder.WriteString(selectColumns)
	builder.WriteString(" ORDER BY timestamp DESC, rowid DESC")
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.RunLog
	for rows.Next() {
		rec, err := scanRunLog(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes one record.
func (s *SQLiteStore) Delete(id string) error {
	if s.db == nil {
		return s.fallback.Delete(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM run_logs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRunLogNotFound
	}
	return nil
}

// Clear deletes all run logs.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM run_logs")
	return err
}

// Prune keeps only the newest keep records.
func (s *SQLiteStore) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	if s.db == nil {
		return s.fallback.Prune(keep)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM run_logs WHERE id NOT IN (
		SELECT id FROM run_logs ORDER BY timestamp DESC, rowid DESC LIMIT ?)`, keep)
	return err
}

// ExportJSON writes the run log table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.List(0)
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the sqlite database path, or the jsonl path when running on
// the fallback.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunLog(row rowScanner) (domain.RunLog, error) {
	var (
		rec     domain.RunLog
		ts      string
		command string
		output  string
		success int
	)
	if err := row.Scan(&rec.ID, &ts, &command, &rec.ConfigName, &rec.ConfigContent, &output, &rec.ExitCode, &rec.DurationMS, &success); err != nil {
		return domain.RunLog{}, err
	}
	if t, err := time.Parse(timestampLayout, ts); err == nil {
		rec.Timestamp = t
	}
	rec.Command = domain.Verb(command)
	rec.Success = success == 1
	if output != "" {
		_ = json.Unmarshal([]byte(output), &rec.Output)
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.RunLogRepository = (*SQLiteStore)(nil)
