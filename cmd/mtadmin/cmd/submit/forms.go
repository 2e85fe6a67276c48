// cmd/mtadmin/cmd/submit/forms.go
package submit

import (
	"mtadmin/internal/domain/record"
)

var warningCmd = newFormCmd(record.RecTypeWarning, "warning", "Submit a support warning", []field{
	{name: record.FieldDiscordID, prompt: "Discord ID", help: "numeric Discord ID of the warned member"},
	{name: record.FieldPersonInfo, prompt: "Person info", help: "free-form note about the member (optional)"},
	{name: record.FieldWarnBan, prompt: "Warn/Ban", help: "warn and ban ladder step", options: record.WarnBanOptions},
	{name: record.FieldPersonID, prompt: "Person ID", help: "in-game id, or Offline", def: record.PersonIDOffline, options: record.PersonIDOptions},
	{name: record.FieldViolation, prompt: "Violation", help: "what the member did"},
	{name: record.FieldDecisionSource, prompt: "Decision source", help: "numeric Discord ID of the deciding moderator"},
})

var technicalCmd = newFormCmd(record.RecTypeTechnical, "technical", "Submit a technical record", []field{
	{name: record.FieldComplainantMention, prompt: "Complainant Discord ID", help: "numeric Discord ID of the complainant"},
	{name: record.FieldComplainantClip, prompt: "Complainant clip", help: "URL of the complainant's clip"},
	{name: record.FieldAccusedMention, prompt: "Accused Discord ID", help: "numeric Discord ID of the accused"},
	{name: record.FieldAccusedClip, prompt: "Accused clip", help: "URL of the accused's clip"},
	{name: record.FieldBanLink, prompt: "Ban link", help: "URL of the ban, optional"},
})

var createWarnCmd = newFormCmd(record.RecTypeCreateWarn, "create-warn", "Request a warn for a player", []field{
	{name: record.FieldPlayerDiscordID, prompt: "Player Discord ID", help: "numeric Discord ID of the player"},
	{name: record.FieldPlayerInfo, prompt: "Player info", help: "player name or in-game id"},
	{name: record.FieldReason, prompt: "Reason", help: "reason of the warn"},
	{name: record.FieldBanTime, prompt: "Ban time", help: "ban duration", def: record.BanTimeOptions[0], options: record.BanTimeOptions},
	{name: record.FieldIsBanned, prompt: "Is player banned", help: "whether the player is already banned", def: record.IsBannedOptions[0], options: record.IsBannedOptions},
})

var createBanCmd = newFormCmd(record.RecTypeCreateBan, "create-ban", "Request a ban for a player", []field{
	{name: record.FieldPlayerDiscordID, prompt: "Player Discord ID", help: "numeric Discord ID of the player"},
	{name: record.FieldPlayerInfo, prompt: "Player info", help: "player name or in-game id"},
	{name: record.FieldReason, prompt: "Reason", help: "reason of the ban"},
	{name: record.FieldEvidence, prompt: "Evidence", help: "evidence, usually a clip URL"},
	{name: record.FieldIsBanned, prompt: "Is player banned", help: "whether the player is already banned", def: record.IsBannedOptions[0], options: record.IsBannedOptions},
})
