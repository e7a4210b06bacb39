package discord

import (
	"github.com/bwmarrin/discordgo"
)

// SessionHandler is the slice of a Discord session the bot drives. The
// method sets match discordgo.Session, so a session satisfies it directly.
type SessionHandler interface {
	InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, options ...discordgo.RequestOption) error

	// ApplicationCommandBulkOverwrite replaces every command registered for
	// the app in guildID (globally when empty) with cmds
	ApplicationCommandBulkOverwrite(appID string, guildID string, cmds []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)

	Open() error
	Close() error
	AddHandler(handler interface{}) func()
}

// DiscordSession is a gateway session limited to slash-command traffic
type DiscordSession struct {
	*discordgo.Session
}

var _ SessionHandler = (*DiscordSession)(nil)

// NewSession creates a bot session for token
func NewSession(token string) (*DiscordSession, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	// no message content or member events
	s.Identify.Intents = discordgo.IntentsGuilds
	return &DiscordSession{Session: s}, nil
}
