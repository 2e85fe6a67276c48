package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// IDLayout formats record ids to second granularity (YYYYMMDDHHMMSS).
	IDLayout = "20060102150405"
	// TimestampLayout is the display layout, lowercased after formatting.
	TimestampLayout = "01/02 03:04 PM"
)

const (
	keyID        = "id"
	keyType      = "type"
	keyTimestamp = "timestamp"
)

// Record is one submitted form. On disk the fields are flattened next to
// id, type and timestamp.
type Record struct {
	ID        string
	Type      RecType
	Fields    Fields
	Timestamp string
}

// New builds a record of type typ created at the given instant.
func New(typ RecType, fields Fields, at time.Time) *Record {
	return &Record{
		ID:        at.Format(IDLayout),
		Type:      typ,
		Fields:    fields.Clone(),
		Timestamp: FormatTimestamp(at),
	}
}

// FormatTimestamp renders t as the display timestamp, e.g. "03/07 02:15 pm".
func FormatTimestamp(t time.Time) string {
	return strings.ToLower(t.Format(TimestampLayout))
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Fields = r.Fields.Clone()
	return &c
}

// Keys returns the flattened key order used on disk and in exports:
// id, type, the type's fields, any unexpected fields sorted, timestamp.
func (r *Record) Keys() []string {
	keys := []string{keyID, keyType}
	known := fieldSets[r.Type]
	for _, name := range known {
		if _, ok := r.Fields[name]; ok {
			keys = append(keys, name)
		}
	}
	var extra []string
	for name := range r.Fields {
		if !slices.Contains(known, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	keys = append(keys, extra...)
	return append(keys, keyTimestamp)
}

// Value returns the flattened value stored under key.
func (r *Record) Value(key string) string {
	switch key {
	case keyID:
		return r.ID
	case keyType:
		return string(r.Type)
	case keyTimestamp:
		return r.Timestamp
	default:
		return r.Fields[key]
	}
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, r.Value(key)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Record{Fields: make(Fields, len(raw))}
	for key, val := range raw {
		s, err := decodeJSONString(val)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		switch key {
		case keyID:
			out.ID = s
		case keyType:
			out.Type = RecType(s)
		case keyTimestamp:
			out.Timestamp = s
		default:
			out.Fields[key] = s
		}
	}
	if out.ID == "" {
		return fmt.Errorf("record without %q", keyID)
	}

	*r = out
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func decodeJSONString(raw json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("expected string value: %w", err)
	}
	return s, nil
}

// UniqueID returns base when it is free, otherwise base with the first
// free "-N" suffix starting at 2.
func UniqueID(base string, taken func(id string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if !taken(id) {
			return id
		}
	}
}
