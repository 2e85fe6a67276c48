package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func technicalFields() Fields {
	return Fields{
		FieldComplainantMention: "111",
		FieldComplainantClip:    "https://x.com/a",
		FieldAccusedMention:     "222",
		FieldAccusedClip:        "https://x.com/b",
		FieldBanLink:            "",
	}
}

func createWarnFields() Fields {
	return Fields{
		FieldPlayerDiscordID: "999",
		FieldPlayerInfo:      "player",
		FieldReason:          "rdm",
		FieldBanTime:         "1H",
		FieldIsBanned:        "Yes",
	}
}

func createBanFields() Fields {
	return Fields{
		FieldPlayerDiscordID: "999",
		FieldPlayerInfo:      "player",
		FieldReason:          "cheating",
		FieldEvidence:        "https://x.com/clip",
		FieldIsBanned:        "No",
	}
}

func with(f Fields, key, value string) Fields {
	out := f.Clone()
	out[key] = value
	return out
}

func without(f Fields, key string) Fields {
	out := f.Clone()
	delete(out, key)
	return out
}

func TestFormValidator_Validate(t *testing.T) {
	validator := NewFormValidator()

	tests := []struct {
		name       string
		typ        RecType
		fields     Fields
		wantErr    bool
		wantField  string
		wantReason string
	}{
		{
			name:   "valid warning",
			typ:    RecTypeWarning,
			fields: warningFields(),
		},
		{
			name:   "warning person info is optional",
			typ:    RecTypeWarning,
			fields: with(warningFields(), FieldPersonInfo, ""),
		},
		{
			name:       "warning missing violation",
			typ:        RecTypeWarning,
			fields:     with(warningFields(), FieldViolation, ""),
			wantErr:    true,
			wantField:  FieldViolation,
			wantReason: ReasonRequired,
		},
		{
			name:       "warning non numeric discord id",
			typ:        RecTypeWarning,
			fields:     with(warningFields(), FieldDiscordID, "user#1"),
			wantErr:    true,
			wantField:  FieldDiscordID,
			wantReason: ReasonNumeric,
		},
		{
			name:       "warning non numeric decision source",
			typ:        RecTypeWarning,
			fields:     with(warningFields(), FieldDecisionSource, "mod"),
			wantErr:    true,
			wantField:  FieldDecisionSource,
			wantReason: ReasonNumeric,
		},
		{
			name:       "required checked before format",
			typ:        RecTypeWarning,
			fields:     with(with(warningFields(), FieldDiscordID, "abc"), FieldViolation, ""),
			wantErr:    true,
			wantField:  FieldViolation,
			wantReason: ReasonRequired,
		},
		{
			name:       "whitespace only is empty",
			typ:        RecTypeWarning,
			fields:     with(warningFields(), FieldViolation, "  \t"),
			wantErr:    true,
			wantField:  FieldViolation,
			wantReason: ReasonRequired,
		},
		{
			name:   "valid technical without ban link",
			typ:    RecTypeTechnical,
			fields: technicalFields(),
		},
		{
			name:   "valid technical with ban link",
			typ:    RecTypeTechnical,
			fields: with(technicalFields(), FieldBanLink, "https://x.com/ban"),
		},
		{
			name:       "technical non numeric complainant",
			typ:        RecTypeTechnical,
			fields:     with(technicalFields(), FieldComplainantMention, "abc"),
			wantErr:    true,
			wantField:  FieldComplainantMention,
			wantReason: ReasonNumeric,
		},
		{
			name:       "technical malformed clip",
			typ:        RecTypeTechnical,
			fields:     with(technicalFields(), FieldAccusedClip, "clip"),
			wantErr:    true,
			wantField:  FieldAccusedClip,
			wantReason: ReasonURL,
		},
		{
			name:       "technical malformed ban link",
			typ:        RecTypeTechnical,
			fields:     with(technicalFields(), FieldBanLink, "ban"),
			wantErr:    true,
			wantField:  FieldBanLink,
			wantReason: ReasonURL,
		},
		{
			name:   "valid create warn",
			typ:    RecTypeCreateWarn,
			fields: createWarnFields(),
		},
		{
			name:       "create warn requires player info",
			typ:        RecTypeCreateWarn,
			fields:     with(createWarnFields(), FieldPlayerInfo, ""),
			wantErr:    true,
			wantField:  FieldPlayerInfo,
			wantReason: ReasonRequired,
		},
		{
			name:   "valid create ban",
			typ:    RecTypeCreateBan,
			fields: createBanFields(),
		},
		{
			name:       "create ban non numeric player",
			typ:        RecTypeCreateBan,
			fields:     with(createBanFields(), FieldPlayerDiscordID, "12x"),
			wantErr:    true,
			wantField:  FieldPlayerDiscordID,
			wantReason: ReasonNumeric,
		},
		{
			name:       "create ban requires evidence",
			typ:        RecTypeCreateBan,
			fields:     with(createBanFields(), FieldEvidence, ""),
			wantErr:    true,
			wantField:  FieldEvidence,
			wantReason: ReasonRequired,
		},
		{
			name:       "unknown field",
			typ:        RecTypeCreateBan,
			fields:     with(createBanFields(), FieldBanTime, "1H"),
			wantErr:    true,
			wantField:  FieldBanTime,
			wantReason: ReasonUnknown,
		},
		{
			name:       "missing key",
			typ:        RecTypeCreateWarn,
			fields:     without(createWarnFields(), FieldBanTime),
			wantErr:    true,
			wantField:  FieldBanTime,
			wantReason: ReasonMissingKey,
		},
		{
			name:       "unknown type",
			typ:        RecType("appeal"),
			fields:     Fields{},
			wantErr:    true,
			wantField:  "type",
			wantReason: ReasonBadType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.typ, tt.fields)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantReason, verr.Reason)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestFormValidator_Normalize(t *testing.T) {
	validator := NewFormValidator()

	input := Fields{
		FieldComplainantMention: " 111 ",
		FieldComplainantClip:    "https://x.com/a\n",
		FieldAccusedMention:     "222",
		FieldAccusedClip:        "https://x.com/b",
	}

	got := validator.Normalize(RecTypeTechnical, input)

	assert.Equal(t, "111", got[FieldComplainantMention])
	assert.Equal(t, "https://x.com/a", got[FieldComplainantClip])
	assert.Contains(t, got, FieldBanLink)
	assert.Equal(t, "", got[FieldBanLink])
	assert.NoError(t, validator.Validate(RecTypeTechnical, got))

	// input is left untouched
	assert.Equal(t, " 111 ", input[FieldComplainantMention])
	assert.NotContains(t, input, FieldBanLink)
}

func TestFormValidator_NormalizeKeepsFreeText(t *testing.T) {
	validator := NewFormValidator()

	got := validator.Normalize(RecTypeWarning, with(warningFields(), FieldViolation, "  spam  "))

	assert.Equal(t, "  spam  ", got[FieldViolation])
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "discord_id: must be a numeric Discord ID",
		(&ValidationError{Field: FieldDiscordID, Reason: ReasonNumeric}).Error())
	assert.Equal(t, "bad", (&ValidationError{Reason: "bad"}).Error())
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&PersistenceError{Op: "append", Path: "/tmp/c.json", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsPersistence(err))
	assert.False(t, IsPersistence(cause))
	assert.Contains(t, err.Error(), "disk full")
}
