package bot

import (
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// mockSession implements Session in memory so handlers can be
// exercised without a gateway connection.
type mockSession struct {
	mu sync.Mutex

	handlers []interface{}
	opened   bool
	closed   bool
	openErr  error
	closeErr error

	app    *discordgo.Application
	appErr error

	responses   []*discordgo.InteractionResponse
	respondErr  error
	responseMsg *discordgo.Message
	responseErr error

	bulkCalls  []bulkCall
	failGuilds map[string]bool

	sent    []sentMessage
	sendErr error
}

type bulkCall struct {
	AppID   string
	GuildID string
	Count   int
}

type sentMessage struct {
	Channel string
	Content string
}

func newMockSession() *mockSession {
	return &mockSession{
		app: &discordgo.Application{
			ID:    "app-1",
			Owner: &discordgo.User{ID: "owner-1"},
		},
		responseMsg: &discordgo.Message{ID: "msg-1"},
		failGuilds:  make(map[string]bool),
	}
}

func (m *mockSession) AddHandler(handler interface{}) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
	return func() {}
}

func (m *mockSession) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = true
	return m.openErr
}

func (m *mockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.closeErr
}

func (m *mockSession) Application(appID string) (*discordgo.Application, error) {
	if m.appErr != nil {
		return nil, m.appErr
	}
	return m.app, nil
}

func (m *mockSession) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulkCalls = append(m.bulkCalls, bulkCall{AppID: appID, GuildID: guildID, Count: len(commands)})
	if m.failGuilds[guildID] {
		return nil, errors.New("simulated platform failure")
	}
	return commands, nil
}

func (m *mockSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.respondErr != nil {
		return m.respondErr
	}
	m.responses = append(m.responses, resp)
	return nil
}

func (m *mockSession) InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.responseErr != nil {
		return nil, m.responseErr
	}
	return m.responseMsg, nil
}

func (m *mockSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.sent = append(m.sent, sentMessage{Channel: channelID, Content: content})
	return &discordgo.Message{ID: "sent-id"}, nil
}

func (m *mockSession) lastResponse() *discordgo.InteractionResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responses) == 0 {
		return nil
	}
	return m.responses[len(m.responses)-1]
}

// newTestBot returns a bot wired to a mock session with application
// and owner already resolved, as they would be after Start.
func newTestBot(session *mockSession) *Bot {
	b := New(Config{Token: "test-token", CommandPrefix: "!"})
	b.session = session
	b.appID = "app-1"
	b.ownerID = "owner-1"
	return b
}
