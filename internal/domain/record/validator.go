package record

import (
	"slices"
	"strings"

	"mtadmin/internal/utils/validate"
)

const (
	ReasonRequired   = "required field is empty"
	ReasonNumeric    = "must be a numeric Discord ID"
	ReasonURL        = "must be a valid URL"
	ReasonUnknown    = "unknown field"
	ReasonBadType    = "unknown record type"
	ReasonMissingKey = "field is missing"
)

// Validator checks form input before a record is created or edited.
type Validator interface {
	Normalize(t RecType, fields Fields) Fields
	Validate(t RecType, fields Fields) error
}

type rule struct {
	required []string
	numeric  []string
	urls     []string
	// optionalURLs are checked only when non-empty.
	optionalURLs []string
}

// FormValidator implements the per-form rules of the moderation tool.
type FormValidator struct {
	rules map[RecType]rule
}

// NewFormValidator returns a validator carrying the rules of all four forms.
func NewFormValidator() *FormValidator {
	return &FormValidator{
		rules: map[RecType]rule{
			RecTypeWarning: {
				required: []string{FieldDiscordID, FieldWarnBan, FieldPersonID, FieldViolation, FieldDecisionSource},
				numeric:  []string{FieldDiscordID, FieldDecisionSource},
			},
			RecTypeTechnical: {
				required:     []string{FieldComplainantMention, FieldComplainantClip, FieldAccusedMention, FieldAccusedClip},
				numeric:      []string{FieldComplainantMention, FieldAccusedMention},
				urls:         []string{FieldComplainantClip, FieldAccusedClip},
				optionalURLs: []string{FieldBanLink},
			},
			RecTypeCreateWarn: {
				required: []string{FieldPlayerDiscordID, FieldPlayerInfo, FieldReason, FieldBanTime, FieldIsBanned},
				numeric:  []string{FieldPlayerDiscordID},
			},
			RecTypeCreateBan: {
				required: []string{FieldPlayerDiscordID, FieldPlayerInfo, FieldReason, FieldEvidence, FieldIsBanned},
				numeric:  []string{FieldPlayerDiscordID},
			},
		},
	}
}

// Normalize returns a copy of fields with identifier and link values
// trimmed and every optional field of t present. Unknown keys are kept so
// that Validate can reject them.
func (v *FormValidator) Normalize(t RecType, fields Fields) Fields {
	out := fields.Clone()
	if out == nil {
		out = Fields{}
	}

	r, ok := v.rules[t]
	if !ok {
		return out
	}
	for _, name := range FieldSet(t) {
		if _, present := out[name]; !present {
			out[name] = ""
		}
	}
	for _, name := range slices.Concat(r.numeric, r.urls, r.optionalURLs) {
		out[name] = strings.TrimSpace(out[name])
	}
	return out
}

// Validate reports the first violated rule as a *ValidationError.
// Required fields are checked before formats, matching the order in which
// the forms report problems.
func (v *FormValidator) Validate(t RecType, fields Fields) error {
	r, ok := v.rules[t]
	if !ok {
		return &ValidationError{Field: "type", Reason: ReasonBadType}
	}

	known := fieldSets[t]
	for _, name := range known {
		if _, present := fields[name]; !present {
			return &ValidationError{Field: name, Reason: ReasonMissingKey}
		}
	}
	for _, name := range sortedKeys(fields) {
		if !slices.Contains(known, name) {
			return &ValidationError{Field: name, Reason: ReasonUnknown}
		}
	}

	for _, name := range r.required {
		if strings.TrimSpace(fields[name]) == "" {
			return &ValidationError{Field: name, Reason: ReasonRequired}
		}
	}
	for _, name := range r.numeric {
		if !validate.IsNumeric(fields[name]) {
			return &ValidationError{Field: name, Reason: ReasonNumeric}
		}
	}
	for _, name := range r.urls {
		if !validate.IsURL(fields[name]) {
			return &ValidationError{Field: name, Reason: ReasonURL}
		}
	}
	for _, name := range r.optionalURLs {
		if val := fields[name]; val != "" && !validate.IsURL(val) {
			return &ValidationError{Field: name, Reason: ReasonURL}
		}
	}
	return nil
}

func sortedKeys(f Fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
