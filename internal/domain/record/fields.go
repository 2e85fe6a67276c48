package record

import (
	"fmt"
	"slices"
	"strings"
)

// Field names as they appear in the persisted collection.
const (
	FieldDiscordID      = "discord_id"
	FieldPersonInfo     = "person_info"
	FieldWarnBan        = "warn_ban"
	FieldPersonID       = "person_id"
	FieldViolation      = "violation"
	FieldDecisionSource = "decision_source"

	FieldComplainantMention = "complainant_mention"
	FieldComplainantClip    = "complainant_clip"
	FieldAccusedMention     = "accused_mention"
	FieldAccusedClip        = "accused_clip"
	FieldBanLink            = "ban_link"

	FieldPlayerDiscordID = "player_discord_id"
	FieldPlayerInfo      = "player_info"
	FieldReason          = "reason"
	FieldBanTime         = "ban_time"
	FieldEvidence        = "evidence"
	FieldIsBanned        = "is_banned"
)

// Preset values offered by the forms. They are suggestions, not constraints.
var (
	WarnBanOptions  = []string{"warn 1 + ban 1d", "warn 2 + ban 3d", "warn 3 + ban 7d + إعادة تفعيل", "نهائي", "Banned Perm"}
	PersonIDOptions = []string{PersonIDOffline, "Manual Entry"}
	BanTimeOptions  = []string{"1H", "1D", "3D", "1W"}
	IsBannedOptions = []string{"Yes", "No"}
)

const PersonIDOffline = "Offline"

var fieldSets = map[RecType][]string{
	RecTypeWarning: {
		FieldDiscordID, FieldPersonInfo, FieldWarnBan, FieldPersonID, FieldViolation, FieldDecisionSource,
	},
	RecTypeTechnical: {
		FieldComplainantMention, FieldComplainantClip, FieldAccusedMention, FieldAccusedClip, FieldBanLink,
	},
	RecTypeCreateWarn: {
		FieldPlayerDiscordID, FieldPlayerInfo, FieldReason, FieldBanTime, FieldIsBanned,
	},
	RecTypeCreateBan: {
		FieldPlayerDiscordID, FieldPlayerInfo, FieldReason, FieldEvidence, FieldIsBanned,
	},
}

// FieldSet returns the fixed, ordered field names of a record type.
// The returned slice is a copy.
func FieldSet(t RecType) []string {
	set := fieldSets[t]
	out := make([]string, len(set))
	copy(out, set)
	return out
}

// Fields maps field names to their string values.
type Fields map[string]string

// Get returns the value of name, or "" when absent.
func (f Fields) Get(name string) string {
	return f[name]
}

// Clone returns an independent copy of f.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Equal reports whether f and other hold the same keys and values.
func (f Fields) Equal(other Fields) bool {
	if len(f) != len(other) {
		return false
	}
	for k, v := range f {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// CheckFields verifies that fields carries exactly the key set of t.
func CheckFields(t RecType, fields Fields) error {
	if err := t.Validate(); err != nil {
		return err
	}

	want := fieldSets[t]
	var missing, extra []string
	for _, name := range want {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range fields {
		if !slices.Contains(want, name) {
			extra = append(extra, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	slices.Sort(extra)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(extra, ", "))
	}
	return fmt.Errorf("%w for %s: %s", ErrFieldMismatch, t, strings.Join(parts, "; "))
}

// Complete returns a copy of fields holding every key of t, filling absent
// keys with "" and dropping keys that do not belong to t.
func Complete(t RecType, fields Fields) Fields {
	out := make(Fields, len(fieldSets[t]))
	for _, name := range fieldSets[t] {
		out[name] = fields[name]
	}
	return out
}
