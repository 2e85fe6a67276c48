// Package message renders the text posted to the moderation channels.
package message

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"mtadmin/internal/domain/record"
)

// NotAvailable replaces an empty ban link in technical records.
const NotAvailable = "Not Available"

const codeFence = "```"

// Labels maps technical record fields to their section titles.
type Labels map[string]string

// DefaultLabels are the English section titles of the technical form.
func DefaultLabels() Labels {
	return Labels{
		record.FieldComplainantMention: "Complainant Mention",
		record.FieldComplainantClip:    "Complainant Clip",
		record.FieldAccusedMention:     "Accused Mention",
		record.FieldAccusedClip:        "Accused Clip",
		record.FieldBanLink:            "Ban Link",
	}
}

// Block titles of the management forms, in render order.
var (
	createWarnTitles = []blockTitle{
		{record.FieldPlayerDiscordID, "Player Discord ID"},
		{record.FieldPlayerInfo, "Player Info"},
		{record.FieldReason, "Reason"},
		{record.FieldBanTime, "Ban Time"},
		{record.FieldIsBanned, "is Player Banned ?"},
	}
	createBanTitles = []blockTitle{
		{record.FieldPlayerDiscordID, "Player Discord ID"},
		{record.FieldPlayerInfo, "Player Info"},
		{record.FieldReason, "Reason"},
		{record.FieldEvidence, "Evidence"},
		{record.FieldIsBanned, "is Player Banned ?"},
	}
)

type blockTitle struct {
	field string
	title string
}

// Renderer turns validated form input into the channel message.
// It holds no state besides its labels and is safe for concurrent use.
type Renderer struct {
	labels Labels
}

// NewRenderer returns a renderer using labels for technical sections.
// Missing entries fall back to DefaultLabels.
func NewRenderer(labels Labels) *Renderer {
	merged := DefaultLabels()
	for k, v := range labels {
		if v != "" {
			merged[k] = v
		}
	}
	return &Renderer{labels: merged}
}

// Render formats fields of type typ. timestamp is only used by warnings.
// Input is expected to be validated; Render never fails.
func (r *Renderer) Render(typ record.RecType, fields record.Fields, timestamp string) string {
	switch typ {
	case record.RecTypeWarning:
		return r.warning(fields, timestamp)
	case record.RecTypeTechnical:
		return r.technical(fields)
	case record.RecTypeCreateWarn:
		return blocks(createWarnTitles, fields)
	case record.RecTypeCreateBan:
		return blocks(createBanTitles, fields)
	default:
		return ""
	}
}

// RenderRecord renders an existing record with its own timestamp.
func (r *Renderer) RenderRecord(rec *record.Record) string {
	return r.Render(rec.Type, rec.Fields, rec.Timestamp)
}

func (r *Renderer) warning(f record.Fields, timestamp string) string {
	discordID := f.Get(record.FieldDiscordID)

	var b strings.Builder
	b.WriteString(mention(discordID) + "\n")
	if info := f.Get(record.FieldPersonInfo); info != "" {
		b.WriteString(info + "\n")
	}
	b.WriteString("discord : (discord:" + discordID + ")\n")
	b.WriteString("\n" + f.Get(record.FieldWarnBan) + "\n")
	b.WriteString("id : " + f.Get(record.FieldPersonID) + "\n")
	b.WriteString(f.Get(record.FieldViolation) + "\n")
	b.WriteString("\nby : " + mention(f.Get(record.FieldDecisionSource)) + "\n")
	b.WriteString(timestamp)
	return b.String()
}

func (r *Renderer) technical(f record.Fields) string {
	banLink := f.Get(record.FieldBanLink)
	if banLink == "" {
		banLink = NotAvailable
	}

	var b strings.Builder
	r.section(&b, record.FieldComplainantMention, mention(f.Get(record.FieldComplainantMention)))
	b.WriteString("\n")
	r.section(&b, record.FieldComplainantClip, f.Get(record.FieldComplainantClip))
	b.WriteString("\n\n")
	r.section(&b, record.FieldAccusedMention, mention(f.Get(record.FieldAccusedMention)))
	b.WriteString("\n")
	r.section(&b, record.FieldAccusedClip, f.Get(record.FieldAccusedClip))
	b.WriteString("\n\n")
	r.section(&b, record.FieldBanLink, banLink)
	return b.String()
}

func (r *Renderer) section(b *strings.Builder, field, value string) {
	b.WriteString("**" + r.labels[field] + "**\n" + value)
}

func blocks(titles []blockTitle, f record.Fields) string {
	parts := make([]string, len(titles))
	for i, t := range titles {
		parts[i] = t.title + "\n" + codeFence + f.Get(t.field) + codeFence
	}
	return strings.Join(parts, "\n")
}

func mention(id string) string {
	return (&discordgo.User{ID: id}).Mention()
}
