package middlewares

import (
	"strings"

	"github.com/nlypage/intele"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/randomgive/giveaway-bot/cmd/bot"
	"github.com/randomgive/giveaway-bot/pkg/logger/types"
)

type Handler struct {
	bot    *tele.Bot
	layout *layout.Layout
	logger *types.Logger
	input  *intele.InputManager
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		bot:    b.Bot,
		layout: b.Layout,
		logger: b.Logger,
		input:  b.Input,
	}
}

// PrivateChatOnly restricts organizer commands to the private chat with
// the bot.
func (h Handler) PrivateChatOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Chat() == nil || c.Chat().Type != tele.ChatPrivate {
			return c.Reply(h.layout.Text(c, "private_only"))
		}
		return next(c)
	}
}

// ResetInputOnBack middleware clears the input state when the back button
// is pressed or another command arrives mid-prompt.
func (h Handler) ResetInputOnBack(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Callback() != nil {
			if strings.Contains(c.Callback().Data, "back") || strings.Contains(c.Callback().Unique, "back") {
				h.input.Cancel(c.Sender().ID)
			}
		}
		if c.Message() != nil {
			if strings.HasPrefix(c.Message().Text, "/") {
				h.input.Cancel(c.Sender().ID)
			}
		}

		return next(c)
	}
}
