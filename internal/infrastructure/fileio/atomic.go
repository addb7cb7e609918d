// Package fileio provides atomic file writes for config documents and settings.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/pkg/filesystem"
	"github.com/doeshing/organize-desk/internal/ports"
)

// WriteAtomic writes content to a temp file in the target directory, syncs
// it and renames it over path. With backup set, an existing file is first
// copied to path + ".bak".
func WriteAtomic(path string, content []byte, perm os.FileMode, backup bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".organize-desk-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if backup {
		if _, err := os.Stat(path); err == nil {
			if err := copyFile(path, path+".bak"); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// DocumentFiles reads and writes config documents on the local filesystem.
type DocumentFiles struct {
	// Backup keeps the previous version of a file as <name>.bak.
	Backup bool
}

// Read returns the file contents. A leading ~ is expanded.
func (d DocumentFiles) Read(path string) (string, error) {
	data, err := os.ReadFile(filesystem.ExpandPath(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write replaces the file atomically.
func (d DocumentFiles) Write(path, content string) error {
	return WriteAtomic(filesystem.ExpandPath(path), []byte(content), domain.FilePermissions, d.Backup)
}

var _ ports.DocumentFiles = DocumentFiles{}
