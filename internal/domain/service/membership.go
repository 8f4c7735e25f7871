package service

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/randomgive/giveaway-bot/internal/domain/common/errorz"
	"github.com/randomgive/giveaway-bot/pkg/logger/types"
)

// Membership is the verifier's answer for one (channel, user) pair.
type Membership int

const (
	// MembershipUnknown means the check could not be performed: the channel
	// is gone or the bot lacks admin rights in it. Admission and winner
	// selection treat it the same as MembershipNone, failing closed.
	MembershipUnknown Membership = iota
	MembershipNone
	MembershipMember
)

// MembershipService wraps the Telegram chat-member API behind the
// three-outcome verdict the lifecycle engine works with.
type MembershipService struct {
	bot    *tele.Bot
	logger *types.Logger
}

func NewMembershipService(bot *tele.Bot, logger *types.Logger) *MembershipService {
	return &MembershipService{
		bot:    bot,
		logger: logger,
	}
}

// Resolve turns a channel handle (@username or numeric chat ID) into the
// channel's stable ID.
func (s *MembershipService) Resolve(handle string) (int64, error) {
	if strings.HasPrefix(handle, "@") {
		chat, err := s.bot.ChatByUsername(handle)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", errorz.ChannelNotFound, handle)
		}
		return chat.ID, nil
	}

	id, err := strconv.ParseInt(handle, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errorz.ChannelNotFound, handle)
	}
	chat, err := s.bot.ChatByID(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errorz.ChannelNotFound, handle)
	}
	return chat.ID, nil
}

// Verify answers whether the user currently belongs to the channel. The bot
// must be an administrator of the channel for the lookup to succeed.
func (s *MembershipService) Verify(channelID, userID int64) Membership {
	member, err := s.bot.ChatMemberOf(&tele.Chat{ID: channelID}, &tele.User{ID: userID})
	if err != nil {
		s.logger.Errorf("(channel: %d) failed to check membership of user %d: %v", channelID, userID, err)
		return MembershipUnknown
	}

	switch member.Role {
	case tele.Creator, tele.Administrator, tele.Member:
		return MembershipMember
	default:
		return MembershipNone
	}
}

// DisplayName resolves the user's visible name in the channel.
func (s *MembershipService) DisplayName(channelID, userID int64) (string, error) {
	member, err := s.bot.ChatMemberOf(&tele.Chat{ID: channelID}, &tele.User{ID: userID})
	if err != nil {
		return "", err
	}
	if member.User == nil {
		return "", fmt.Errorf("no user in chat member response")
	}

	name := strings.TrimSpace(member.User.FirstName + " " + member.User.LastName)
	if name == "" {
		name = member.User.Username
	}
	if name == "" {
		return "", fmt.Errorf("user %d has no visible name", userID)
	}
	return name, nil
}
