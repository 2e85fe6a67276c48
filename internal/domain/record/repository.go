package record

import "io"

// Repository is the persisted record collection. Every mutation rewrites
// the backing storage as a whole.
type Repository interface {
	Append(rec *Record) error
	List() []*Record
	Get(id string) (*Record, error)
	Update(id string, fields Fields) error
	Delete(id string) error
	Export(w io.Writer) error
}

// Filter narrows a listing of records.
type Filter struct {
	Type RecType
}

// Apply returns the records matching f, preserving order.
func (f Filter) Apply(records []*Record) []*Record {
	if f.Type == "" {
		return records
	}
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r.Type == f.Type {
			out = append(out, r)
		}
	}
	return out
}
