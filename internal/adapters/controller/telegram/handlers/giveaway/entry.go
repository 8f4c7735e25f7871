package giveaway

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/randomgive/giveaway-bot/internal/domain/common/errorz"
	"github.com/randomgive/giveaway-bot/internal/domain/service"
)

// Participate handles the entry button under a giveaway announcement.
func (h *Handler) Participate(c tele.Context) error {
	giveawayID, err := callbackGiveawayID(c)
	if err != nil {
		return err
	}

	admission := h.giveawayService.Admit(giveawayID, c.Sender().ID)
	switch admission.Verdict {
	case service.AdmissionInactive:
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "giveaway_inactive"),
			ShowAlert: true,
		})
	case service.AdmissionNotSubscribed:
		_ = c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "not_subscribed_alert"),
			ShowAlert: true,
		})
		// The subscribe prompt with the re-check button goes to the
		// private chat. Sending fails when the user never started the
		// bot; the alert above already told them what to do.
		_, err = c.Bot().Send(
			&tele.User{ID: c.Sender().ID},
			h.layout.Text(c, "subscribe_required", admission),
			h.layout.Markup(c, "giveaway:subscription", struct {
				ID  int64
				URL string
			}{giveawayID, channelURL(admission.ChannelHandle)}),
		)
		if err != nil {
			h.logger.Infof("(user: %d) failed to send subscribe prompt: %v", c.Sender().ID, err)
		}
		return nil
	case service.AdmissionAlreadyEntered:
		return c.Respond(&tele.CallbackResponse{
			Text: h.layout.Text(c, "already_entered"),
		})
	default:
		return c.Respond(&tele.CallbackResponse{
			Text: h.layout.Text(c, "entered"),
		})
	}
}

// CheckSubscription handles the re-check button in the subscribe prompt.
// The admission rule is the same as for Participate, but on success the
// prompt message is edited into a confirmation.
func (h *Handler) CheckSubscription(c tele.Context) error {
	giveawayID, err := callbackGiveawayID(c)
	if err != nil {
		return err
	}

	admission := h.giveawayService.Recheck(giveawayID, c.Sender().ID)
	switch admission.Verdict {
	case service.AdmissionInactive:
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "giveaway_inactive"),
			ShowAlert: true,
		})
	case service.AdmissionNotSubscribed:
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "subscription_still_missing"),
			ShowAlert: true,
		})
	default:
		if errEdit := c.Edit(h.layout.Text(c, "subscription_confirmed")); errEdit != nil {
			if !strings.Contains(errEdit.Error(), "message is not modified") {
				h.logger.Errorf("(user: %d) failed to edit subscribe prompt: %v", c.Sender().ID, errEdit)
			}
		}
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "subscription_confirmed_alert"),
			ShowAlert: true,
		})
	}
}

func callbackGiveawayID(c tele.Context) (int64, error) {
	callback := c.Callback()
	if callback == nil {
		return 0, errorz.InvalidCallbackData
	}
	giveawayID, err := strconv.ParseInt(callback.Data, 10, 64)
	if err != nil {
		return 0, errorz.InvalidCallbackData
	}
	return giveawayID, nil
}

func channelURL(handle string) string {
	return "https://t.me/" + strings.TrimPrefix(handle, "@")
}
