// Package bot owns the Discord boundary: session lifecycle, slash
// command declarations, and the dispatch of interaction events to the
// per-message views. Everything below the Session interface — gateway,
// reconnects, rate limits — belongs to discordgo and is not
// reimplemented here.
package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/dfitzpatrick/componentbot/internal/logger"
	"github.com/dfitzpatrick/componentbot/internal/view"
	"github.com/sirupsen/logrus"
)

// Config carries the settings the bot needs from the loader.
type Config struct {
	Token         string
	OwnerID       string
	CommandPrefix string
}

// Bot wires slash commands and component interactions to views.
type Bot struct {
	mu      sync.RWMutex
	token   string
	prefix  string
	ownerID string
	appID   string
	session Session
	views   *view.Registry

	// commands are the local declarations. They are pushed to the
	// platform only by the owner-invoked sync command.
	commands []*discordgo.ApplicationCommand
}

// New creates a bot. The session is established in Start.
func New(config Config) *Bot {
	return &Bot{
		token:   config.Token,
		prefix:  config.CommandPrefix,
		ownerID: config.OwnerID,
		views:   view.NewRegistry(),
		commands: []*discordgo.ApplicationCommand{
			{
				Name:        "help",
				Description: "See the commands that this bot has to offer",
			},
			{
				Name:        "start",
				Description: "Starts the example with components",
			},
		},
	}
}

// Start opens the gateway connection and begins serving events. When a
// session was injected beforehand (tests), it is used as-is.
func (b *Bot) Start() error {
	logger.WithFields(logrus.Fields{
		"token":  maskSecret(b.token),
		"prefix": b.prefix,
	}).Info("starting-bot")

	b.mu.Lock()
	if b.session == nil {
		session, err := discordgo.New("Bot " + b.token)
		if err != nil {
			b.mu.Unlock()
			return fmt.Errorf("failed to create discord session: %w", err)
		}
		session.Identify.Intents = discordgo.IntentGuilds |
			discordgo.IntentGuildMessages |
			discordgo.IntentMessageContent
		b.session = session
	}
	session := b.session
	b.mu.Unlock()

	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(i)
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.handleMessage(m)
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageDelete) {
		b.handleMessageDelete(m)
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}

	if err := b.resolveApplication(); err != nil {
		session.Close()
		return err
	}

	logger.WithFields(logrus.Fields{
		"app_id": b.appID,
		"owner":  b.ownerID,
	}).Info("bot-started")
	return nil
}

// resolveApplication fetches the application ID (needed for command
// sync) and, unless configured explicitly, the owner ID that gates the
// sync command.
func (b *Bot) resolveApplication() error {
	b.mu.RLock()
	session := b.session
	b.mu.RUnlock()

	app, err := session.Application("@me")
	if err != nil {
		return fmt.Errorf("failed to resolve application: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.appID = app.ID
	if b.ownerID == "" && app.Owner != nil {
		b.ownerID = app.Owner.ID
	}
	return nil
}

// Stop closes the gateway connection and releases the session.
func (b *Bot) Stop() error {
	b.mu.Lock()
	session := b.session
	b.session = nil
	b.mu.Unlock()

	if session == nil {
		return nil
	}

	if err := session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}

	logger.Info("bot-stopped")
	return nil
}

// Views exposes the live view registry.
func (b *Bot) Views() *view.Registry {
	return b.views
}

// Commands returns the local command declarations.
func (b *Bot) Commands() []*discordgo.ApplicationCommand {
	return b.commands
}

func (b *Bot) getSession() Session {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session
}

func (b *Bot) getAppID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.appID
}

func (b *Bot) getOwnerID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ownerID
}
