package mock

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// SessionHandler records the calls a bot makes on its Discord session
type SessionHandler struct {
	mock.Mock
}

func (s *SessionHandler) InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	return s.Called(i, r).Error(0)
}

func (s *SessionHandler) ApplicationCommandBulkOverwrite(appID string, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := s.Called(appID, guildID, cmds)
	created, _ := args.Get(0).([]*discordgo.ApplicationCommand)
	return created, args.Error(1)
}

func (s *SessionHandler) Open() error {
	return s.Called().Error(0)
}

func (s *SessionHandler) Close() error {
	return s.Called().Error(0)
}

// AddHandler returns the remove function configured with Return
func (s *SessionHandler) AddHandler(handler interface{}) func() {
	return s.Called(handler).Get(0).(func())
}
