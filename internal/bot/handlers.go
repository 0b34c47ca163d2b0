package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dfitzpatrick/componentbot/internal/logger"
	"github.com/dfitzpatrick/componentbot/internal/view"
	"github.com/sirupsen/logrus"
)

// handleInteraction dispatches a gateway interaction to the matching
// command or component handler. Failures are isolated to the one
// interaction: they are logged and, where the platform allows it,
// reported to the user, but never crash the process or discard view
// state.
func (b *Bot) handleInteraction(i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		switch data.Name {
		case "help":
			b.handleHelp(i)
		case "start":
			b.handleStart(i)
		default:
			logger.WithField("command", data.Name).Warn("unknown-command")
		}

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		switch {
		case data.CustomID == view.SelectCustomID:
			b.handleSelect(i, data.Values)
		case view.IsButtonID(data.CustomID):
			b.handlePress(i, data.CustomID)
		default:
			logger.WithField("custom_id", data.CustomID).Warn("unknown-component")
		}

	case discordgo.InteractionModalSubmit:
		b.handleModalSubmit(i)
	}
}

// handleHelp replies with a static, ephemeral command listing.
func (b *Bot) handleHelp(i *discordgo.InteractionCreate) {
	var sb strings.Builder
	sb.WriteString("For further help, use /cmd and see the hints that discord provides\n\n")
	sb.WriteString("**Available Commands**\n\n")
	for _, c := range b.commands {
		fmt.Fprintf(&sb, "/%s — %s\n", c.Name, c.Description)
	}

	err := b.getSession().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Bot Help Commands",
				Description: sb.String(),
			}},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.WithField("error", err).Error("failed-to-send-help")
	}
}

// handleStart creates a fresh view and sends its initial render (the
// dropdown alone). The message only exists once the send succeeds, so
// the view is bound and registered afterwards.
func (b *Bot) handleStart(i *discordgo.InteractionCreate) {
	v := view.New()
	session := b.getSession()

	err := session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{view.MakeEmbed("Please choose an option to start")},
			Components: v.Components(),
		},
	})
	if err != nil {
		logger.WithField("error", err).Error("failed-to-send-start-message")
		return
	}

	msg, err := session.InteractionResponse(i.Interaction)
	if err != nil {
		logger.WithField("error", err).Error("failed-to-fetch-start-message")
		return
	}

	if err := v.Bind(msg.ID); err != nil {
		logger.WithField("error", err).Error("failed-to-bind-view")
		return
	}
	if err := b.views.Add(v); err != nil {
		logger.WithField("error", err).Error("failed-to-register-view")
		return
	}

	logger.WithFields(logrus.Fields{
		"message": msg.ID,
		"views":   b.views.Len(),
	}).Debug("view-created")
}

// handleSelect applies a dropdown selection and re-renders the
// message in place.
func (b *Bot) handleSelect(i *discordgo.InteractionCreate, values []string) {
	v, ok := b.lookupView(i)
	if !ok {
		return
	}

	v.Select(values)
	b.updateMessage(i, v)
}

// handlePress logs the press on the view and opens the text-entry
// modal. The modal custom ID carries the message ID so the submission
// routes back to this same view.
func (b *Bot) handlePress(i *discordgo.InteractionCreate, buttonID string) {
	v, ok := b.lookupView(i)
	if !ok {
		return
	}

	if err := v.Press(buttonID); err != nil {
		logger.WithField("error", err).Error("failed-to-press-button")
		b.respondError(i, "That button is not part of this message.")
		return
	}

	err := b.getSession().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: v.Modal().ResponseData(v.MessageID()),
	})
	if err != nil {
		logger.WithField("error", err).Error("failed-to-open-modal")
	}
}

// handleModalSubmit appends the submitted text to the owning view and
// re-renders the message.
func (b *Bot) handleModalSubmit(i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()

	messageID, err := view.ParseModalCustomID(data.CustomID)
	if err != nil {
		logger.WithField("error", err).Warn("unroutable-modal-submit")
		return
	}

	v, ok := b.views.Get(messageID)
	if !ok {
		b.respondError(i, "This component message is no longer active. Use /start to begin again.")
		return
	}

	value, err := extractTextInput(data)
	if err != nil {
		logger.WithField("error", err).Error("failed-to-read-modal-value")
		b.respondError(i, "Could not read the submitted value.")
		return
	}

	v.SubmitModal(value)
	b.updateMessage(i, v)
}

// handleMessage watches for the owner-invoked sync command. All other
// messages are ignored; the bot's interactive surface is slash
// commands and components.
func (b *Bot) handleMessage(m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	content, ok := b.stripPrefix(m.Content)
	if !ok {
		return
	}
	fields := strings.Fields(content)
	if len(fields) == 0 || fields[0] != "sync" {
		return
	}

	b.handleSync(m, fields[1:])
}

// handleMessageDelete drops the view owned by a deleted message; its
// state is unreachable once the message is gone.
func (b *Bot) handleMessageDelete(m *discordgo.MessageDelete) {
	if _, ok := b.views.Get(m.ID); !ok {
		return
	}
	b.views.Remove(m.ID)
	logger.WithField("message", m.ID).Debug("view-discarded")
}

// lookupView resolves the view owning the message a component
// interaction arrived on. A miss means the process restarted since
// the message was sent; the user gets an ephemeral pointer to /start.
func (b *Bot) lookupView(i *discordgo.InteractionCreate) (*view.View, bool) {
	if i.Message == nil {
		logger.Warn("component-interaction-without-message")
		return nil, false
	}
	v, ok := b.views.Get(i.Message.ID)
	if !ok {
		logger.WithField("message", i.Message.ID).Warn("no-view-for-message")
		b.respondError(i, "This component message is no longer active. Use /start to begin again.")
		return nil, false
	}
	return v, true
}

// updateMessage re-renders the view onto the message that triggered
// the interaction. A failed edit (stale message, expired interaction
// window) is surfaced in the log; the view keeps its state for the
// next event.
func (b *Bot) updateMessage(i *discordgo.InteractionCreate, v *view.View) {
	err := b.getSession().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{v.Embed()},
			Components: v.Components(),
		},
	})
	if err != nil {
		logger.WithFields(logrus.Fields{
			"message": v.MessageID(),
			"error":   err,
		}).Error("failed-to-update-message")
	}
}

// respondError sends an ephemeral error notice for an interaction.
func (b *Bot) respondError(i *discordgo.InteractionCreate, text string) {
	err := b.getSession().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.WithField("error", err).Error("failed-to-send-error-response")
	}
}

// stripPrefix removes the command prefix or a bot mention from a
// message, reporting whether one was present.
func (b *Bot) stripPrefix(content string) (string, bool) {
	if b.prefix != "" && strings.HasPrefix(content, b.prefix) {
		return strings.TrimSpace(content[len(b.prefix):]), true
	}
	appID := b.getAppID()
	if appID != "" {
		for _, mention := range []string{"<@" + appID + ">", "<@!" + appID + ">"} {
			if strings.HasPrefix(content, mention) {
				return strings.TrimSpace(content[len(mention):]), true
			}
		}
	}
	return "", false
}

// extractTextInput pulls the single text value out of a submitted
// modal.
func extractTextInput(data discordgo.ModalSubmitInteractionData) (string, error) {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range actionsRow.Components {
			input, ok := c.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if input.CustomID == view.TextInputCustomID {
				return input.Value, nil
			}
		}
	}
	return "", fmt.Errorf("modal %q has no text input %q", data.CustomID, view.TextInputCustomID)
}
