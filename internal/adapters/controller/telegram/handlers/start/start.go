package start

import (
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/randomgive/giveaway-bot/cmd/bot"
	"github.com/randomgive/giveaway-bot/pkg/logger/types"
)

type Handler struct {
	layout *layout.Layout
	logger *types.Logger
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		layout: b.Layout,
		logger: b.Logger,
	}
}

func (h *Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) start command", c.Sender().ID)
	return c.Send(h.layout.Text(c, "start"))
}

func (h *Handler) Help(c tele.Context) error {
	return c.Send(h.layout.Text(c, "help"))
}
