package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dfitzpatrick/componentbot/internal/logger"
	"github.com/sirupsen/logrus"
)

// Sync scope markers, borrowed from the usual sync-command
// conventions: ~ pushes to the current guild, * copies the global
// declarations to the current guild, ^ clears the current guild.
const (
	syncScopeGuild = "~"
	syncScopeCopy  = "*"
	syncScopeClear = "^"
)

// handleSync gates and runs the maintenance sync command. Only the
// deployment owner may invoke it, and only from inside a guild. The
// reply always goes to the invoking channel; sync never fails past
// this boundary.
func (b *Bot) handleSync(m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		b.reply(m.ChannelID, "The sync command can only be used in a server.")
		return
	}
	if m.Author.ID != b.getOwnerID() {
		logger.WithFields(logrus.Fields{
			"user":  m.Author.ID,
			"guild": m.GuildID,
		}).Warn("sync-denied")
		b.reply(m.ChannelID, "Only the bot owner can sync commands.")
		return
	}

	b.reply(m.ChannelID, b.runSync(m.GuildID, args))
}

// runSync pushes the local command declarations to the requested
// scope and returns the user-facing summary. With an explicit guild
// list, a failed push is skipped and the tally reports successes over
// attempts.
func (b *Bot) runSync(currentGuild string, args []string) string {
	session := b.getSession()
	appID := b.getAppID()

	if len(args) == 0 {
		synced, err := session.ApplicationCommandBulkOverwrite(appID, "", b.commands)
		if err != nil {
			logger.WithField("error", err).Error("global-sync-failed")
			return fmt.Sprintf("Failed to sync commands globally: %v", err)
		}
		return fmt.Sprintf("Synced %d commands globally", len(synced))
	}

	switch args[0] {
	case syncScopeGuild, syncScopeCopy:
		synced, err := session.ApplicationCommandBulkOverwrite(appID, currentGuild, b.commands)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"guild": currentGuild,
				"error": err,
			}).Error("guild-sync-failed")
			return fmt.Sprintf("Failed to sync commands to the current guild: %v", err)
		}
		return fmt.Sprintf("Synced %d commands to the current guild.", len(synced))

	case syncScopeClear:
		if _, err := session.ApplicationCommandBulkOverwrite(appID, currentGuild, nil); err != nil {
			logger.WithFields(logrus.Fields{
				"guild": currentGuild,
				"error": err,
			}).Error("guild-clear-failed")
			return fmt.Sprintf("Failed to clear commands in the current guild: %v", err)
		}
		return "Synced 0 commands to the current guild."
	}

	// Explicit guild list: skip failures, tally successes.
	synced := 0
	for _, guildID := range args {
		if _, err := session.ApplicationCommandBulkOverwrite(appID, guildID, b.commands); err != nil {
			logger.WithFields(logrus.Fields{
				"guild": guildID,
				"error": err,
			}).Warn("guild-sync-skipped")
			continue
		}
		synced++
	}
	return fmt.Sprintf("Synced the tree to %d/%d.", synced, len(args))
}

// reply sends a plain channel message, logging rather than returning
// the error: there is nobody upstream to handle it.
func (b *Bot) reply(channelID, content string) {
	if _, err := b.getSession().ChannelMessageSend(channelID, content); err != nil {
		logger.WithFields(logrus.Fields{
			"channel": channelID,
			"error":   err,
		}).Error("failed-to-send-reply")
	}
}
