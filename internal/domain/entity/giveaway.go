package entity

import (
	"strconv"
	"time"
)

// Giveaway is a subscription-gated prize drawing tied to one channel.
// Its ID equals the resolved channel ID: at most one giveaway per channel
// may exist at a time.
//
// A giveaway with a nil Announcement is scheduled but not yet published;
// once the announcement is posted it becomes active. Concluded and cancelled
// giveaways are removed from storage entirely.
type Giveaway struct {
	ID            int64
	ChannelHandle string
	ChannelID     int64
	PublishAt     time.Time
	EndAt         time.Time
	WinnerCount   int
	PostText      string
	Announcement  *MessageRef
	Entrants      map[int64]struct{}
}

// IsActive reports whether the announcement has been published.
func (g *Giveaway) IsActive() bool {
	return g.Announcement != nil
}

// AddEntrant records the user as an entrant. It reports whether the user
// was added, false means the user had already entered.
func (g *Giveaway) AddEntrant(userID int64) bool {
	if _, ok := g.Entrants[userID]; ok {
		return false
	}
	g.Entrants[userID] = struct{}{}
	return true
}

// Clone returns a deep copy of the giveaway.
func (g *Giveaway) Clone() *Giveaway {
	clone := *g
	clone.Entrants = make(map[int64]struct{}, len(g.Entrants))
	for userID := range g.Entrants {
		clone.Entrants[userID] = struct{}{}
	}
	if g.Announcement != nil {
		announcement := *g.Announcement
		clone.Announcement = &announcement
	}
	return &clone
}

// Summary is a short listing entry for a stored giveaway.
type Summary struct {
	ID            int64
	ChannelHandle string
	Active        bool
}

// MessageRef is an opaque reference to a message posted by the bot.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// MessageSig implements telebot's Editable so a reference can be passed
// directly to Edit and Delete calls.
func (m *MessageRef) MessageSig() (string, int64) {
	return strconv.Itoa(m.MessageID), m.ChatID
}
