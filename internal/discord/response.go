package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/fadedpez/dugout/internal/types"
)

// ResponseEmoji maps error codes to appropriate emojis
var ResponseEmoji = map[types.ErrorCode]string{
	types.ErrRecordNotFound:  "🔍",
	types.ErrPlayerRequired:  "👤",
	types.ErrPitcherRequired: "⚾",
	types.ErrResultRequired:  "📝",
	types.ErrNothingToUndo:   "↩️",
	types.ErrPlayerExists:    "✋",
	types.ErrPlayerNotFound:  "🤷",
	types.ErrInvalidArgument: "❗",
	types.ErrImportFailed:    "📄",
	types.ErrInternalError:   "💥",
	types.ErrNetworkError:    "🌐",
	types.ErrDatabaseError:   "💾",
}

// Response represents a Discord interaction response
type Response struct {
	Content   string
	Files     []*discordgo.File
	Ephemeral bool
}

// NewResponse creates a new Response
func NewResponse(content string) *Response {
	return &Response{Content: content}
}

// NewEphemeralResponse creates a new ephemeral Response (only visible to the user)
func NewEphemeralResponse(content string) *Response {
	return &Response{Content: content, Ephemeral: true}
}

// NewFileResponse creates a Response carrying an attachment
func NewFileResponse(content string, files ...*discordgo.File) *Response {
	return &Response{Content: content, Files: files}
}

// NewErrorResponse creates a new error Response
func NewErrorResponse(err error) *Response {
	var appErr *types.AppError
	if types.As(err, &appErr) {
		emoji := ResponseEmoji[appErr.Code]
		if emoji == "" {
			emoji = "❌"
		}
		return NewEphemeralResponse(fmt.Sprintf("%s %s", emoji, appErr.Message))
	}
	return NewEphemeralResponse(fmt.Sprintf("❌ An error occurred: %v", err))
}

// CodeBlock wraps text in a Discord code block so tables keep their columns
func CodeBlock(text string) string {
	return "```\n" + text + "```"
}

// SendResponse sends a response to a Discord interaction
func SendResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: r.Content,
			Files:   r.Files,
			Flags:   getFlags(r.Ephemeral),
		},
	})
}

// SendErrorResponse sends an error response
func SendErrorResponse(s SessionHandler, i *discordgo.InteractionCreate, err error) error {
	return SendResponse(s, i, NewErrorResponse(err))
}

// Helper functions

func getFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
