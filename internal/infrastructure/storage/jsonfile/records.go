package jsonfile

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/moby/sys/atomicwriter"
	"golang.org/x/exp/slog"

	"mtadmin/internal/domain/record"
)

// RecordsFileName is the default name of the record collection file.
const RecordsFileName = "complaints.json"

// RecordStore is the ordered record collection backed by a JSON array.
type RecordStore struct {
	path    string
	log     *slog.Logger
	now     func() time.Time
	mu      sync.RWMutex
	records []*record.Record
	// readErr is set when the file exists but could not be read. Writes are
	// refused while it is set so the file is never replaced blindly.
	readErr error
}

var _ record.Repository = (*RecordStore)(nil)

func NewRecordStore(path string, log *slog.Logger) *RecordStore {
	return &RecordStore{
		path: path,
		log:  log.With("component", "record_store", "path", path),
		now:  time.Now,
	}
}

// Path returns the file backing the store.
func (s *RecordStore) Path() string {
	return s.path
}

// Load reads the collection from disk. A missing file yields an empty
// collection. A file that is not valid JSON is renamed aside, the store
// starts empty and an error wrapping record.ErrCorrupt is returned. A file
// that cannot be read at all is left in place, the store starts empty and
// refuses to write, and an error wrapping record.ErrUnreadable is returned.
// The store stays usable in both cases.
func (s *RecordStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.readErr = nil

	data, err := readFile(s.path)
	if err != nil {
		s.readErr = err
		s.log.Warn("records file cannot be read, starting empty", "error", err)
		return fmt.Errorf("read records %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Debug("no records file, starting empty")
		return nil
	}

	var records []*record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		backup, mvErr := moveAside(s.path, s.now())
		if mvErr != nil {
			s.log.Error("records file unreadable and could not be moved", "error", err, "move_error", mvErr)
			return fmt.Errorf("%w: %s: %v (backup failed: %v)", record.ErrCorrupt, s.path, err, mvErr)
		}
		s.log.Warn("records file unreadable, moved aside", "error", err, "backup", backup)
		return fmt.Errorf("%w: %s moved to %s: %v", record.ErrCorrupt, s.path, backup, err)
	}

	s.records = slices.DeleteFunc(records, func(r *record.Record) bool { return r == nil })
	s.log.Debug("records loaded", "count", len(s.records))
	return nil
}

// Append adds rec at the end of the collection and rewrites the file.
// On a write failure the record stays in memory.
func (s *RecordStore) Append(rec *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec.Clone())
	return s.persist("append")
}

// List returns a copy of the collection in insertion order.
func (s *RecordStore) List() []*record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*record.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

func (s *RecordStore) Get(id string) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", record.ErrNotFound, id)
	}
	return s.records[i].Clone(), nil
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Exists reports whether a record with id is stored.
func (s *RecordStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index(id) >= 0
}

// Update replaces the fields of the first record with id. The key set must
// match the record type. Unchanged fields do not rewrite the file.
func (s *RecordStore) Update(id string, fields record.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", record.ErrNotFound, id)
	}
	if err := record.CheckFields(s.records[i].Type, fields); err != nil {
		return err
	}

	if s.records[i].Fields.Equal(fields) {
		return nil
	}
	s.records[i].Fields = fields.Clone()
	return s.persist("update")
}

// Delete removes the first record with id.
func (s *RecordStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", record.ErrNotFound, id)
	}

	s.records = slices.Delete(s.records, i, i+1)
	return s.persist("delete")
}

// Export writes the collection as CSV. The header is the union of all
// record keys: id, type, field keys in first-seen order, timestamp.
func (s *RecordStore) Export(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return record.ErrEmptyCollection
	}

	header := exportHeader(s.records)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(header))
	for _, r := range s.records {
		for i, key := range header {
			row[i] = r.Value(key)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the CSV export to path. Nothing is created for an
// empty collection.
func (s *RecordStore) ExportFile(path string) error {
	if s.Len() == 0 {
		return record.ErrEmptyCollection
	}

	f, err := atomicwriter.New(path, filePerm)
	if err != nil {
		return &record.PersistenceError{Op: "export", Path: path, Err: err}
	}
	if err := s.Export(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &record.PersistenceError{Op: "export", Path: path, Err: err}
	}
	s.log.Info("records exported", "file", path)
	return nil
}

func (s *RecordStore) index(id string) int {
	return slices.IndexFunc(s.records, func(r *record.Record) bool { return r.ID == id })
}

// persist must be called with the write lock held.
func (s *RecordStore) persist(op string) error {
	if s.readErr != nil {
		s.log.Error("persist records skipped, file was not readable", "op", op, "error", s.readErr)
		return &record.PersistenceError{Op: op, Path: s.path, Err: s.readErr}
	}
	records := s.records
	if records == nil {
		records = []*record.Record{}
	}
	data, err := encode(records)
	if err == nil {
		err = writeFile(s.path, data)
	}
	if err != nil {
		s.log.Error("persist records", "op", op, "error", err)
		return &record.PersistenceError{Op: op, Path: s.path, Err: err}
	}
	s.log.Debug("records persisted", "op", op, "count", len(s.records))
	return nil
}

func exportHeader(records []*record.Record) []string {
	header := []string{"id", "type"}
	seen := map[string]bool{"id": true, "type": true, "timestamp": true}
	for _, r := range records {
		for _, key := range r.Keys() {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}
	return append(header, "timestamp")
}

// DefaultExportName is the file name offered for a CSV export made at t.
func DefaultExportName(t time.Time) string {
	return "complaints_export_" + t.Format(record.IDLayout) + ".csv"
}
