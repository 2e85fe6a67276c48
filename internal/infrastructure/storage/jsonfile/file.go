// Package jsonfile keeps the record collection and the webhook configuration
// in JSON files that are always rewritten as a whole.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/moby/sys/atomicwriter"

	"mtadmin/internal/domain/record"
)

const (
	filePerm = 0o600
	dirPerm  = 0o700
	indent   = "    "
)

// encode renders v the way the files are stored: pretty printed with a
// four space indent and without HTML escaping.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile replaces path with data. Readers never observe a partial file.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return atomicwriter.WriteFile(path, data, filePerm)
}

// readFile returns the file content, or nil when the file does not exist.
// A parent that is not a directory also means the file does not exist.
// Any other failure wraps record.ErrUnreadable.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, os.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %w", record.ErrUnreadable, err)
	}
}

// moveAside renames an unreadable file so the next write cannot clobber it.
func moveAside(path string, now time.Time) (string, error) {
	backup := fmt.Sprintf("%s.corrupt-%s", path, now.Format(record.IDLayout))
	if err := os.Rename(path, backup); err != nil {
		return "", err
	}
	return backup, nil
}
