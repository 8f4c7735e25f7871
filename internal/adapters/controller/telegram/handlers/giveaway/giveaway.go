package giveaway

import (
	"context"
	"errors"
	"strconv"

	"github.com/nlypage/intele"
	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/randomgive/giveaway-bot/cmd/bot"
	"github.com/randomgive/giveaway-bot/internal/domain/common/errorz"
	"github.com/randomgive/giveaway-bot/internal/domain/entity"
	"github.com/randomgive/giveaway-bot/internal/domain/service"
	"github.com/randomgive/giveaway-bot/pkg/logger/types"
)

type giveawayService interface {
	Create(raw string) (*entity.Giveaway, bool, error)
	Admit(giveawayID, userID int64) service.Admission
	Recheck(giveawayID, userID int64) service.Admission
	Cancel(giveawayID int64) (bool, error)
	List() []entity.Summary
}

type Handler struct {
	giveawayService giveawayService

	layout *layout.Layout
	logger *types.Logger
	input  *intele.InputManager
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		giveawayService: b.Giveaways,
		layout:          b.Layout,
		logger:          b.Logger,
		input:           b.Input,
	}
}

// NewGiveaway prompts the organizer for a giveaway submission and keeps
// asking until it parses or the organizer backs out.
func (h *Handler) NewGiveaway(c tele.Context) error {
	h.logger.Infof("(user: %d) new giveaway requested", c.Sender().ID)

	inputCollector := collector.New()
	_ = c.Send(
		h.layout.Text(c, "new_giveaway_prompt"),
		h.layout.Markup(c, "giveaway:cancelInput"),
	)

	for {
		message, canceled, errGet := h.input.Get(context.Background(), c.Sender().ID, 0)
		if message != nil {
			inputCollector.Collect(message)
		}
		switch {
		case canceled:
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true, ExcludeLast: true})
			return nil
		case errGet != nil:
			h.logger.Errorf("(user: %d) error while getting giveaway input: %v", c.Sender().ID, errGet)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error"),
				h.layout.Markup(c, "giveaway:cancelInput"),
			)
			continue
		}

		giveaway, published, errCreate := h.giveawayService.Create(message.Text)
		if errCreate != nil {
			h.logger.Infof("(user: %d) giveaway submission rejected: %v", c.Sender().ID, errCreate)
			_ = inputCollector.Send(c,
				h.createErrorText(c, errCreate),
				h.layout.Markup(c, "giveaway:cancelInput"),
			)
			continue
		}

		_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
		if published {
			return c.Send(h.layout.Text(c, "giveaway_published_now", giveaway))
		}
		return c.Send(h.layout.Text(c, "giveaway_scheduled", giveaway))
	}
}

// CancelGiveaway without an argument lists everything cancellable; with a
// channel ID argument it cancels that giveaway.
func (h *Handler) CancelGiveaway(c tele.Context) error {
	args := c.Args()
	if len(args) == 0 {
		summaries := h.giveawayService.List()
		if len(summaries) == 0 {
			return c.Send(h.layout.Text(c, "no_giveaways"))
		}
		return c.Send(h.layout.Text(c, "giveaway_list", summaries))
	}

	giveawayID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.Send(h.layout.Text(c, "invalid_channel_id", args[0]))
	}

	wasActive, err := h.giveawayService.Cancel(giveawayID)
	if err != nil {
		if errors.Is(err, errorz.GiveawayNotFound) {
			return c.Send(h.layout.Text(c, "giveaway_not_found", args[0]))
		}
		h.logger.Errorf("(user: %d) failed to cancel giveaway %d: %v", c.Sender().ID, giveawayID, err)
		return c.Send(h.layout.Text(c, "technical_issues", err.Error()))
	}

	h.logger.Infof("(user: %d) cancelled giveaway %d (active: %t)", c.Sender().ID, giveawayID, wasActive)
	if wasActive {
		return c.Send(h.layout.Text(c, "cancelled_active"))
	}
	return c.Send(h.layout.Text(c, "cancelled_scheduled"))
}

func (h *Handler) createErrorText(c tele.Context, err error) string {
	switch {
	case errors.Is(err, errorz.InvalidGiveawayInput):
		return h.layout.Text(c, "invalid_giveaway_input")
	case errors.Is(err, errorz.ChannelNotFound):
		return h.layout.Text(c, "channel_not_found")
	case errors.Is(err, errorz.GiveawayExists):
		return h.layout.Text(c, "giveaway_exists")
	default:
		return h.layout.Text(c, "technical_issues", err.Error())
	}
}
