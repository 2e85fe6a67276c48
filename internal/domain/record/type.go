package record

import (
	"fmt"
	"strings"
)

type RecType string

const (
	RecTypeWarning    RecType = "warning"
	RecTypeTechnical  RecType = "technical"
	RecTypeCreateWarn RecType = "create_warn"
	RecTypeCreateBan  RecType = "create_ban"
)

// Types lists every record type in the order the forms are presented.
var Types = []RecType{
	RecTypeWarning,
	RecTypeTechnical,
	RecTypeCreateWarn,
	RecTypeCreateBan,
}

// Validate reports whether t is one of the known record types.
func (t RecType) Validate() error {
	switch t {
	case RecTypeWarning, RecTypeTechnical, RecTypeCreateWarn, RecTypeCreateBan:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
}

func (t RecType) String() string {
	return string(t)
}

// DisplayName returns the human readable form title for the type.
func (t RecType) DisplayName() string {
	switch t {
	case RecTypeWarning:
		return "Support Warn"
	case RecTypeTechnical:
		return "Technical Record"
	case RecTypeCreateWarn:
		return "Create Warn"
	case RecTypeCreateBan:
		return "Create Ban"
	default:
		return "Unknown"
	}
}

// ParseRecType accepts the on-disk spelling as well as the dashed and
// concatenated forms used on the command line ("create-warn", "createwarn").
func ParseRecType(s string) (RecType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch norm {
	case "createwarn":
		norm = string(RecTypeCreateWarn)
	case "createban":
		norm = string(RecTypeCreateBan)
	}

	t := RecType(norm)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}
