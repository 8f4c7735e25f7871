package errorz

import "errors"

var (
	InvalidCallbackData  = errors.New("invalid callback data")
	InvalidGiveawayInput = errors.New("invalid giveaway input")
	ChannelNotFound      = errors.New("channel not found")
	GiveawayExists       = errors.New("giveaway already exists for this channel")
	GiveawayNotFound     = errors.New("giveaway not found")
)
