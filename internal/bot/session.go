package bot

import "github.com/bwmarrin/discordgo"

// Session is the slice of discordgo.Session the bot consumes. Keeping
// it as an interface lets tests substitute a mock without a live
// gateway connection.
type Session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	Application(appID string) (*discordgo.Application, error)
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}
