package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/randomgive/giveaway-bot/internal/domain/common/errorz"
	"github.com/randomgive/giveaway-bot/internal/domain/utils/location"
	"github.com/randomgive/giveaway-bot/internal/domain/utils/validator"
)

// GiveawayDraft is a validated giveaway submission, not yet bound to a
// resolved channel.
type GiveawayDraft struct {
	PublishAt     time.Time
	EndAt         time.Time
	ChannelHandle string
	WinnerCount   int
	PostText      string
}

// ParseGiveawayDraft parses the organizer's free-text submission:
//
//	publish time (2006-01-02 15:04)
//	end time (2006-01-02 15:04)
//	channel handle (@username or chat ID)
//	winner count
//	post text (everything that follows)
//
// All violations are reported as errorz.InvalidGiveawayInput.
func ParseGiveawayDraft(raw string) (*GiveawayDraft, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 5 {
		return nil, fmt.Errorf("%w: expected at least 5 lines, got %d", errorz.InvalidGiveawayInput, len(lines))
	}

	publishRaw := strings.TrimSpace(lines[0])
	endRaw := strings.TrimSpace(lines[1])
	handle := strings.TrimSpace(lines[2])
	countRaw := strings.TrimSpace(lines[3])
	postText := strings.TrimSpace(strings.Join(lines[4:], "\n"))

	if !validator.GiveawayTime(publishRaw, nil) {
		return nil, fmt.Errorf("%w: bad publish time %q", errorz.InvalidGiveawayInput, publishRaw)
	}
	if !validator.GiveawayTime(endRaw, nil) {
		return nil, fmt.Errorf("%w: bad end time %q", errorz.InvalidGiveawayInput, endRaw)
	}
	if !validator.GiveawayPeriod(publishRaw, endRaw, nil) {
		return nil, fmt.Errorf("%w: end time must be after publish time", errorz.InvalidGiveawayInput)
	}
	if !validator.ChannelHandle(handle, nil) {
		return nil, fmt.Errorf("%w: bad channel handle %q", errorz.InvalidGiveawayInput, handle)
	}
	if !validator.WinnerCount(countRaw, nil) {
		return nil, fmt.Errorf("%w: winner count must be a positive integer", errorz.InvalidGiveawayInput)
	}
	if postText == "" {
		return nil, fmt.Errorf("%w: empty post text", errorz.InvalidGiveawayInput)
	}

	publishAt, _ := time.ParseInLocation(validator.TimeLayout, publishRaw, location.Location())
	endAt, _ := time.ParseInLocation(validator.TimeLayout, endRaw, location.Location())
	winnerCount, _ := strconv.Atoi(countRaw)

	return &GiveawayDraft{
		PublishAt:     publishAt,
		EndAt:         endAt,
		ChannelHandle: handle,
		WinnerCount:   winnerCount,
		PostText:      postText,
	}, nil
}
