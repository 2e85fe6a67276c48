package jsonfile

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"mtadmin/internal/domain/record"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *RecordStore {
	t.Helper()
	s := NewRecordStore(filepath.Join(t.TempDir(), RecordsFileName), discardLogger())
	require.NoError(t, s.Load())
	return s
}

func warning(id string) *record.Record {
	return &record.Record{
		ID:        id,
		Type:      record.RecTypeWarning,
		Timestamp: "03/07 02:15 pm",
		Fields: record.Fields{
			record.FieldDiscordID:      "123",
			record.FieldPersonInfo:     "",
			record.FieldWarnBan:        "نهائي",
			record.FieldPersonID:       "Offline",
			record.FieldViolation:      "spam <link>",
			record.FieldDecisionSource: "456",
		},
	}
}

func technical(id string) *record.Record {
	return &record.Record{
		ID:        id,
		Type:      record.RecTypeTechnical,
		Timestamp: "03/07 02:16 pm",
		Fields: record.Fields{
			record.FieldComplainantMention: "1",
			record.FieldComplainantClip:    "https://x.com/a?x=1&y=2",
			record.FieldAccusedMention:     "2",
			record.FieldAccusedClip:        "https://x.com/b",
			record.FieldBanLink:            "",
		},
	}
}

func TestRecordStore_LoadMissingFile(t *testing.T) {
	s := newStore(t)

	assert.Empty(t, s.List())
	assert.Zero(t, s.Len())
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "load must not create the file")
}

func TestRecordStore_AppendPersistsAndReloads(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Append(warning("20240307141500")))
	require.NoError(t, s.Append(technical("20240307141600")))

	reloaded := NewRecordStore(s.Path(), discardLogger())
	require.NoError(t, reloaded.Load())

	got := reloaded.List()
	require.Len(t, got, 2)
	assert.Equal(t, warning("20240307141500"), got[0])
	assert.Equal(t, technical("20240307141600"), got[1])
}

func TestRecordStore_FileFormat(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(technical("20240307141600")))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	want := `[
    {
        "id": "20240307141600",
        "type": "technical",
        "complainant_mention": "1",
        "complainant_clip": "https://x.com/a?x=1&y=2",
        "accused_mention": "2",
        "accused_clip": "https://x.com/b",
        "ban_link": "",
        "timestamp": "03/07 02:16 pm"
    }
]
`
	assert.Equal(t, want, string(data))
}

func TestRecordStore_ListReturnsCopies(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(warning("1")))

	got := s.List()
	got[0].Fields[record.FieldViolation] = "changed"

	again, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "spam <link>", again.Fields[record.FieldViolation])
}

func TestRecordStore_Update(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(warning("1")))
	require.NoError(t, s.Append(warning("2")))

	fields := warning("1").Fields
	fields[record.FieldViolation] = "edited"

	require.NoError(t, s.Update("2", fields))
	// applying the same update twice leaves the same state
	require.NoError(t, s.Update("2", fields))

	reloaded := NewRecordStore(s.Path(), discardLogger())
	require.NoError(t, reloaded.Load())
	got, err := reloaded.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Fields[record.FieldViolation])
	assert.Equal(t, record.RecTypeWarning, got.Type)

	first, err := reloaded.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "spam <link>", first.Fields[record.FieldViolation])
}

func TestRecordStore_UpdateUnchangedSkipsWrite(t *testing.T) {
	s := newStore(t)
	rec := warning("1")
	require.NoError(t, s.Append(rec))
	require.NoError(t, os.Remove(s.Path()))

	require.NoError(t, s.Update("1", rec.Fields))
	assert.NoFileExists(t, s.Path())
}

func TestRecordStore_UpdateErrors(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(warning("1")))

	assert.ErrorIs(t, s.Update("missing", warning("x").Fields), record.ErrNotFound)
	assert.ErrorIs(t, s.Update("1", technical("x").Fields), record.ErrFieldMismatch)

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, record.RecTypeWarning, got.Type)
	assert.NoError(t, record.CheckFields(got.Type, got.Fields))
}

func TestRecordStore_Delete(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(warning("1")))
	require.NoError(t, s.Append(technical("2")))
	require.NoError(t, s.Append(warning("3")))

	require.NoError(t, s.Delete("2"))
	assert.ErrorIs(t, s.Delete("2"), record.ErrNotFound)

	reloaded := NewRecordStore(s.Path(), discardLogger())
	require.NoError(t, reloaded.Load())
	got := reloaded.List()
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.False(t, reloaded.Exists("2"))
	assert.True(t, reloaded.Exists("3"))
}

func TestRecordStore_DeleteLastLeavesEmptyArray(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(warning("1")))
	require.NoError(t, s.Delete("1"))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestRecordStore_AppendPersistenceFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewRecordStore(filepath.Join(blocker, RecordsFileName), discardLogger())
	require.NoError(t, s.Load())

	err := s.Append(warning("1"))
	require.Error(t, err)
	assert.True(t, record.IsPersistence(err))

	// the in-memory append is kept
	assert.True(t, s.Exists("1"))
}

func TestRecordStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), RecordsFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewRecordStore(path, discardLogger())
	s.now = func() time.Time { return time.Date(2024, 3, 7, 14, 0, 0, 0, time.UTC) }

	err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrCorrupt)
	assert.Empty(t, s.List())

	backup := path + ".corrupt-20240307140000"
	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))

	// the store keeps working and never touches the backup
	require.NoError(t, s.Append(warning("1")))
	data, err = os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestRecordStore_LoadUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), RecordsFileName)
	require.NoError(t, os.Mkdir(path, 0o700))

	s := NewRecordStore(path, discardLogger())
	err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrUnreadable)
	assert.NotErrorIs(t, err, record.ErrCorrupt)
	assert.Empty(t, s.List())

	// nothing is moved aside and writes are refused
	matches, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Empty(t, matches)

	err = s.Append(warning("1"))
	assert.True(t, record.IsPersistence(err))
	assert.ErrorIs(t, err, record.ErrUnreadable)
	assert.True(t, s.Exists("1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRecordStore_LoadUnderFileParent(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewRecordStore(filepath.Join(blocker, RecordsFileName), discardLogger())
	require.NoError(t, s.Load())
	assert.Empty(t, s.List())
}

func TestRecordStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), RecordsFileName)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	s := NewRecordStore(path, discardLogger())
	require.NoError(t, s.Load())
	assert.Empty(t, s.List())
}

func TestRecordStore_ExportEmpty(t *testing.T) {
	s := newStore(t)

	var buf bytes.Buffer
	assert.ErrorIs(t, s.Export(&buf), record.ErrEmptyCollection)
	assert.Zero(t, buf.Len())

	out := filepath.Join(t.TempDir(), "out.csv")
	assert.ErrorIs(t, s.ExportFile(out), record.ErrEmptyCollection)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRecordStore_ExportUnionHeader(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(warning("1")))
	require.NoError(t, s.Append(technical("2")))

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	wantHeader := []string{
		"id", "type",
		record.FieldDiscordID, record.FieldPersonInfo, record.FieldWarnBan,
		record.FieldPersonID, record.FieldViolation, record.FieldDecisionSource,
		record.FieldComplainantMention, record.FieldComplainantClip,
		record.FieldAccusedMention, record.FieldAccusedClip, record.FieldBanLink,
		"timestamp",
	}
	assert.Equal(t, wantHeader, rows[0])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "warning", rows[1][1])
	assert.Equal(t, "نهائي", rows[1][4])
	assert.Equal(t, "", rows[1][8], "warning rows leave technical columns empty")
	assert.Equal(t, "03/07 02:15 pm", rows[1][13])

	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "https://x.com/a?x=1&y=2", rows[2][9])
}

func TestRecordStore_ExportFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(warning("1")))

	out := filepath.Join(t.TempDir(), DefaultExportName(time.Date(2024, 3, 7, 14, 0, 0, 0, time.UTC)))
	require.NoError(t, s.ExportFile(out))

	assert.Equal(t, "complaints_export_20240307140000.csv", filepath.Base(out))
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
