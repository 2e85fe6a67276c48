package message

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mtadmin/internal/domain/record"
)

func TestRenderer_Warning(t *testing.T) {
	r := NewRenderer(nil)

	fields := record.Fields{
		record.FieldDiscordID:      "123",
		record.FieldPersonInfo:     "",
		record.FieldWarnBan:        "Warn 1",
		record.FieldPersonID:       "Offline",
		record.FieldViolation:      "spam",
		record.FieldDecisionSource: "456",
	}

	want := "<@123>\n" +
		"discord : (discord:123)\n" +
		"\nWarn 1\n" +
		"id : Offline\n" +
		"spam\n" +
		"\nby : <@456>\n" +
		"03/07 02:15 pm"
	assert.Equal(t, want, r.Render(record.RecTypeWarning, fields, "03/07 02:15 pm"))

	fields[record.FieldPersonInfo] = "nick"
	want = "<@123>\n" +
		"nick\n" +
		"discord : (discord:123)\n" +
		"\nWarn 1\n" +
		"id : Offline\n" +
		"spam\n" +
		"\nby : <@456>\n" +
		"03/07 02:15 pm"
	assert.Equal(t, want, r.Render(record.RecTypeWarning, fields, "03/07 02:15 pm"))
}

func TestRenderer_Technical(t *testing.T) {
	tests := []struct {
		name    string
		banLink string
		wantEnd string
	}{
		{name: "without ban link", banLink: "", wantEnd: "**Ban Link**\nNot Available"},
		{name: "with ban link", banLink: "https://x.com/ban", wantEnd: "**Ban Link**\nhttps://x.com/ban"},
	}

	r := NewRenderer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := record.Fields{
				record.FieldComplainantMention: "1",
				record.FieldComplainantClip:    "https://x.com/a",
				record.FieldAccusedMention:     "2",
				record.FieldAccusedClip:        "https://x.com/b",
				record.FieldBanLink:            tt.banLink,
			}

			want := "**Complainant Mention**\n<@1>\n" +
				"**Complainant Clip**\nhttps://x.com/a\n\n" +
				"**Accused Mention**\n<@2>\n" +
				"**Accused Clip**\nhttps://x.com/b\n\n" +
				tt.wantEnd
			assert.Equal(t, want, r.Render(record.RecTypeTechnical, fields, ""))
		})
	}
}

func TestRenderer_TechnicalCustomLabels(t *testing.T) {
	r := NewRenderer(Labels{record.FieldBanLink: "رابط الحظر", record.FieldAccusedClip: ""})

	got := r.Render(record.RecTypeTechnical, record.Fields{
		record.FieldComplainantMention: "1",
		record.FieldComplainantClip:    "https://x.com/a",
		record.FieldAccusedMention:     "2",
		record.FieldAccusedClip:        "https://x.com/b",
		record.FieldBanLink:            "",
	}, "")

	assert.Contains(t, got, "**رابط الحظر**\nNot Available")
	assert.Contains(t, got, "**Accused Clip**\n")
}

func TestRenderer_CreateWarn(t *testing.T) {
	r := NewRenderer(nil)

	fields := record.Fields{
		record.FieldPlayerDiscordID: "999",
		record.FieldPlayerInfo:      "player",
		record.FieldReason:          "rdm",
		record.FieldBanTime:         "1H",
		record.FieldIsBanned:        "Yes",
	}

	want := "Player Discord ID\n```999```\n" +
		"Player Info\n```player```\n" +
		"Reason\n```rdm```\n" +
		"Ban Time\n```1H```\n" +
		"is Player Banned ?\n```Yes```"
	assert.Equal(t, want, r.Render(record.RecTypeCreateWarn, fields, "ignored"))
}

func TestRenderer_CreateBan(t *testing.T) {
	r := NewRenderer(nil)

	fields := record.Fields{
		record.FieldPlayerDiscordID: "999",
		record.FieldPlayerInfo:      "player",
		record.FieldReason:          "cheating",
		record.FieldEvidence:        "https://x.com/clip",
		record.FieldIsBanned:        "No",
	}

	want := "Player Discord ID\n```999```\n" +
		"Player Info\n```player```\n" +
		"Reason\n```cheating```\n" +
		"Evidence\n```https://x.com/clip```\n" +
		"is Player Banned ?\n```No```"
	assert.Equal(t, want, r.Render(record.RecTypeCreateBan, fields, ""))
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer(nil)
	rec := &record.Record{
		ID:        "20240101000000",
		Type:      record.RecTypeWarning,
		Timestamp: "01/01 12:00 am",
		Fields: record.Fields{
			record.FieldDiscordID:      "1",
			record.FieldPersonInfo:     "i",
			record.FieldWarnBan:        "w",
			record.FieldPersonID:       "p",
			record.FieldViolation:      "v",
			record.FieldDecisionSource: "2",
		},
	}

	first := r.RenderRecord(rec)
	for range 10 {
		assert.Equal(t, first, r.RenderRecord(rec))
	}
	assert.Empty(t, r.Render(record.RecType("x"), rec.Fields, ""))
}
