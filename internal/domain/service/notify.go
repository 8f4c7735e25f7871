package service

import (
	"strings"

	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/randomgive/giveaway-bot/internal/domain/entity"
	"github.com/randomgive/giveaway-bot/pkg/logger/types"
)

// NotifyService posts, edits and deletes the bot's channel messages:
// giveaway announcements, results and cancellation notices.
type NotifyService struct {
	bot    *tele.Bot
	layout *layout.Layout
	locale string
	logger *types.Logger
}

func NewNotifyService(bot *tele.Bot, lt *layout.Layout, locale string, logger *types.Logger) *NotifyService {
	return &NotifyService{
		bot:    bot,
		layout: lt,
		locale: locale,
		logger: logger,
	}
}

// LogHook returns a log hook that mirrors entries at or above the given
// level to the specified channel.
func (s *NotifyService) LogHook(channelID int64, locale string, level zapcore.Level) (types.LogHook, error) {
	chat, err := s.bot.ChatByID(channelID)
	if err != nil {
		return nil, err
	}
	return func(log types.Log) {
		if log.Level >= level {
			_, err = s.bot.Send(chat, s.layout.TextLocale(locale, "log", log))
			if err != nil && !strings.Contains(log.Message, "failed to send log to channel") {
				s.logger.Errorf("failed to send log to channel %d: %v\n", channelID, err)
			}
		}
	}, nil
}

// PublishAnnouncement posts the giveaway entry message with its entry
// button and returns a reference to it.
func (s *NotifyService) PublishAnnouncement(giveawayID, channelID int64, text string) (*entity.MessageRef, error) {
	msg, err := s.bot.Send(
		&tele.Chat{ID: channelID},
		text,
		s.layout.MarkupLocale(s.locale, "giveaway:entry", struct{ ID int64 }{giveawayID}),
	)
	if err != nil {
		return nil, err
	}
	return &entity.MessageRef{ChatID: channelID, MessageID: msg.ID}, nil
}

// AnnounceWinners posts the results message. Mentions arrive pre-rendered
// because display-name resolution may have fallen back to bare IDs.
func (s *NotifyService) AnnounceWinners(channelID int64, mentions []string, qualified int) error {
	_, err := s.bot.Send(
		&tele.Chat{ID: channelID},
		s.layout.TextLocale(s.locale, "giveaway_results", struct {
			Winners   string
			Count     int
			Qualified int
		}{strings.Join(mentions, ", "), len(mentions), qualified}),
	)
	return err
}

// AnnounceInsufficient posts the outcome for a giveaway that ended with
// fewer qualified entrants than requested winners.
func (s *NotifyService) AnnounceInsufficient(channelID int64, qualified, required int) error {
	_, err := s.bot.Send(
		&tele.Chat{ID: channelID},
		s.layout.TextLocale(s.locale, "giveaway_insufficient", struct {
			Qualified int
			Required  int
		}{qualified, required}),
	)
	return err
}

// AnnounceCancellation posts the cancellation notice for an active giveaway.
func (s *NotifyService) AnnounceCancellation(channelID int64) error {
	_, err := s.bot.Send(&tele.Chat{ID: channelID}, s.layout.TextLocale(s.locale, "giveaway_cancelled"))
	return err
}

// DeleteAnnouncement removes a previously posted announcement.
func (s *NotifyService) DeleteAnnouncement(ref *entity.MessageRef) error {
	return s.bot.Delete(ref)
}
