package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/randomgive/giveaway-bot/internal/domain/common/errorz"
	"github.com/randomgive/giveaway-bot/internal/domain/dto"
	"github.com/randomgive/giveaway-bot/internal/domain/entity"
	"github.com/randomgive/giveaway-bot/pkg/logger/types"
	"github.com/randomgive/giveaway-bot/pkg/scheduler"
)

const defaultVerifyWorkers = 8

type giveawayStorage interface {
	Create(giveaway *entity.Giveaway) error
	Get(id int64) (*entity.Giveaway, bool)
	Delete(id int64)
	Summaries() []entity.Summary
}

type giveawayScheduler interface {
	Schedule(key scheduler.Key, at time.Time, fn func())
	Cancel(key scheduler.Key) bool
}

type membershipVerifier interface {
	Resolve(handle string) (int64, error)
	Verify(channelID, userID int64) Membership
	DisplayName(channelID, userID int64) (string, error)
}

type giveawayNotifier interface {
	PublishAnnouncement(giveawayID, channelID int64, text string) (*entity.MessageRef, error)
	AnnounceWinners(channelID int64, mentions []string, qualified int) error
	AnnounceInsufficient(channelID int64, qualified, required int) error
	AnnounceCancellation(channelID int64) error
	DeleteAnnouncement(ref *entity.MessageRef) error
}

// AdmissionVerdict is the outcome of an entry attempt.
type AdmissionVerdict int

const (
	// AdmissionInactive means no giveaway exists for the pressed button.
	AdmissionInactive AdmissionVerdict = iota
	// AdmissionNotSubscribed means the verifier could not confirm channel
	// membership; the user was not recorded.
	AdmissionNotSubscribed
	// AdmissionEntered means the user is now recorded as an entrant.
	AdmissionEntered
	// AdmissionAlreadyEntered means the user had entered before; the set
	// of entrants is unchanged.
	AdmissionAlreadyEntered
)

// Admission carries the verdict plus the channel handle the handler needs
// to build a subscribe prompt.
type Admission struct {
	Verdict       AdmissionVerdict
	ChannelHandle string
}

// GiveawayService is the lifecycle engine. It is the only component that
// mutates giveaway storage: creation, publication, entry admission,
// conclusion and cancellation all go through it.
//
// The engine mutex serializes in-memory mutation and is never held across
// Telegram calls; every operation re-checks that its record still exists
// after such a call, since a timer firing and a cancellation may race.
type GiveawayService struct {
	mu sync.Mutex

	storage   giveawayStorage
	scheduler giveawayScheduler
	members   membershipVerifier
	notifier  giveawayNotifier
	logger    *types.Logger

	verifyWorkers int
}

func NewGiveawayService(
	storage giveawayStorage,
	sched giveawayScheduler,
	members membershipVerifier,
	notifier giveawayNotifier,
	logger *types.Logger,
	verifyWorkers int,
) *GiveawayService {
	if verifyWorkers <= 0 {
		verifyWorkers = defaultVerifyWorkers
	}
	return &GiveawayService{
		storage:       storage,
		scheduler:     sched,
		members:       members,
		notifier:      notifier,
		logger:        logger,
		verifyWorkers: verifyWorkers,
	}
}

// Create parses and validates the organizer's submission, resolves the
// target channel and stores a scheduled giveaway. When the publish time has
// already passed the giveaway is published right away; the returned bool
// reports that. At most one giveaway may exist per channel.
func (s *GiveawayService) Create(raw string) (*entity.Giveaway, bool, error) {
	draft, err := dto.ParseGiveawayDraft(raw)
	if err != nil {
		return nil, false, err
	}

	channelID, err := s.members.Resolve(draft.ChannelHandle)
	if err != nil {
		return nil, false, err
	}

	giveaway := &entity.Giveaway{
		ID:            channelID,
		ChannelHandle: draft.ChannelHandle,
		ChannelID:     channelID,
		PublishAt:     draft.PublishAt,
		EndAt:         draft.EndAt,
		WinnerCount:   draft.WinnerCount,
		PostText:      draft.PostText,
		Entrants:      make(map[int64]struct{}),
	}

	s.mu.Lock()
	if err = s.storage.Create(giveaway); err != nil {
		s.mu.Unlock()
		return nil, false, err
	}

	if !giveaway.PublishAt.After(time.Now()) {
		s.mu.Unlock()
		s.Publish(giveaway.ID)
		return giveaway, true, nil
	}

	s.scheduler.Schedule(publishKey(giveaway.ID), giveaway.PublishAt, func() {
		s.Publish(giveaway.ID)
	})
	s.mu.Unlock()

	s.logger.Infof("(giveaway: %d) scheduled, publish at %s, end at %s",
		giveaway.ID, giveaway.PublishAt.Format(time.RFC3339), giveaway.EndAt.Format(time.RFC3339))
	return giveaway, false, nil
}

// Publish posts the announcement and arms the conclude timer. It is a no-op
// when the record is gone (cancelled before the publish timer fired). A send
// failure is terminal for the giveaway: the record is destroyed and the
// failure only reaches the log, since the organizer is offline at fire time.
func (s *GiveawayService) Publish(giveawayID int64) {
	s.mu.Lock()
	giveaway, ok := s.storage.Get(giveawayID)
	if !ok {
		s.mu.Unlock()
		return
	}
	channelID, postText := giveaway.ChannelID, giveaway.PostText
	s.mu.Unlock()

	ref, err := s.notifier.PublishAnnouncement(giveawayID, channelID, postText)
	if err != nil {
		s.logger.Errorf("(giveaway: %d) failed to publish announcement: %v", giveawayID, err)
		s.destroy(giveawayID)
		return
	}

	s.mu.Lock()
	giveaway, ok = s.storage.Get(giveawayID)
	if !ok {
		// Cancelled while the announcement was in flight.
		s.mu.Unlock()
		if errDelete := s.notifier.DeleteAnnouncement(ref); errDelete != nil {
			s.logger.Errorf("(giveaway: %d) failed to delete orphaned announcement: %v", giveawayID, errDelete)
		}
		return
	}
	giveaway.Announcement = ref
	endAt := giveaway.EndAt
	s.scheduler.Schedule(concludeKey(giveawayID), endAt, func() {
		s.Conclude(giveawayID)
	})
	s.mu.Unlock()

	s.logger.Infof("(giveaway: %d) published in channel %d, concludes at %s",
		giveawayID, channelID, endAt.Format(time.RFC3339))
}

// Admit processes an entry attempt. Only users the verifier confirms as
// channel members are recorded; an indeterminate check fails closed. The
// operation is idempotent per user.
func (s *GiveawayService) Admit(giveawayID, userID int64) Admission {
	s.mu.Lock()
	giveaway, ok := s.storage.Get(giveawayID)
	if !ok {
		s.mu.Unlock()
		return Admission{Verdict: AdmissionInactive}
	}
	channelID, handle := giveaway.ChannelID, giveaway.ChannelHandle
	s.mu.Unlock()

	if s.members.Verify(channelID, userID) != MembershipMember {
		return Admission{Verdict: AdmissionNotSubscribed, ChannelHandle: handle}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	giveaway, ok = s.storage.Get(giveawayID)
	if !ok {
		// Concluded or cancelled while the membership check was in flight.
		return Admission{Verdict: AdmissionInactive}
	}
	if !giveaway.AddEntrant(userID) {
		return Admission{Verdict: AdmissionAlreadyEntered, ChannelHandle: handle}
	}
	s.logger.Infof("(giveaway: %d) user %d entered (%d total)", giveawayID, userID, len(giveaway.Entrants))
	return Admission{Verdict: AdmissionEntered, ChannelHandle: handle}
}

// Recheck is the re-check button's path. The admission rule is identical to
// Admit; only the handler's response framing differs.
func (s *GiveawayService) Recheck(giveawayID, userID int64) Admission {
	return s.Admit(giveawayID, userID)
}

// Conclude re-verifies every entrant's membership, draws the winners among
// those still subscribed and announces the result. Entrants who left the
// channel after entering do not qualify. The record is destroyed before the
// announcement is sent so no late entry can race it. No-op when the record
// is gone.
func (s *GiveawayService) Conclude(giveawayID int64) {
	s.mu.Lock()
	giveaway, ok := s.storage.Get(giveawayID)
	if !ok {
		s.mu.Unlock()
		return
	}
	channelID, required := giveaway.ChannelID, giveaway.WinnerCount
	entrants := make([]int64, 0, len(giveaway.Entrants))
	for userID := range giveaway.Entrants {
		entrants = append(entrants, userID)
	}
	s.mu.Unlock()

	qualified := s.qualifiedEntrants(channelID, entrants)

	s.mu.Lock()
	if _, ok = s.storage.Get(giveawayID); !ok {
		// Cancelled during re-verification.
		s.mu.Unlock()
		return
	}
	s.storage.Delete(giveawayID)
	s.mu.Unlock()

	if len(qualified) < required {
		s.logger.Infof("(giveaway: %d) concluded with %d qualified entrants, %d required",
			giveawayID, len(qualified), required)
		if err := s.notifier.AnnounceInsufficient(channelID, len(qualified), required); err != nil {
			s.logger.Errorf("(giveaway: %d) failed to announce insufficient participants: %v", giveawayID, err)
		}
		return
	}

	winners := drawWinners(qualified, required)
	mentions := make([]string, 0, len(winners))
	for _, userID := range winners {
		mentions = append(mentions, s.mention(channelID, userID))
	}
	if err := s.notifier.AnnounceWinners(channelID, mentions, len(qualified)); err != nil {
		s.logger.Errorf("(giveaway: %d) failed to announce winners: %v", giveawayID, err)
		return
	}
	s.logger.Infof("(giveaway: %d) concluded, %d winners drawn from %d qualified entrants",
		giveawayID, len(winners), len(qualified))
}

// Cancel destroys the giveaway in any state and disarms both of its timers.
// For an active giveaway it also posts a cancellation notice and makes a
// best-effort attempt to delete the announcement. The returned bool reports
// whether the giveaway had been active.
func (s *GiveawayService) Cancel(giveawayID int64) (bool, error) {
	s.mu.Lock()
	giveaway, ok := s.storage.Get(giveawayID)
	if !ok {
		s.mu.Unlock()
		return false, errorz.GiveawayNotFound
	}
	s.scheduler.Cancel(publishKey(giveawayID))
	s.scheduler.Cancel(concludeKey(giveawayID))
	s.storage.Delete(giveawayID)
	wasActive := giveaway.IsActive()
	channelID, announcement := giveaway.ChannelID, giveaway.Announcement
	s.mu.Unlock()

	if wasActive {
		if err := s.notifier.AnnounceCancellation(channelID); err != nil {
			s.logger.Errorf("(giveaway: %d) failed to post cancellation notice: %v", giveawayID, err)
		}
		if err := s.notifier.DeleteAnnouncement(announcement); err != nil {
			s.logger.Errorf("(giveaway: %d) failed to delete announcement: %v", giveawayID, err)
		}
	}

	s.logger.Infof("(giveaway: %d) cancelled (active: %t)", giveawayID, wasActive)
	return wasActive, nil
}

// List returns a summary of every scheduled and active giveaway.
func (s *GiveawayService) List() []entity.Summary {
	return s.storage.Summaries()
}

// destroy removes the record and disarms both timers.
func (s *GiveawayService) destroy(giveawayID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler.Cancel(publishKey(giveawayID))
	s.scheduler.Cancel(concludeKey(giveawayID))
	s.storage.Delete(giveawayID)
}

// qualifiedEntrants re-checks membership for every entrant on a bounded
// worker pool, so one slow Telegram call does not serialize the whole draw.
func (s *GiveawayService) qualifiedEntrants(channelID int64, entrants []int64) []int64 {
	if len(entrants) == 0 {
		return nil
	}

	var (
		mu        sync.Mutex
		qualified []int64
	)
	admit := func(userID int64) {
		if s.members.Verify(channelID, userID) == MembershipMember {
			mu.Lock()
			qualified = append(qualified, userID)
			mu.Unlock()
		}
	}

	pool, err := ants.NewPool(s.verifyWorkers)
	if err != nil {
		s.logger.Errorf("failed to create verification pool: %v", err)
		for _, userID := range entrants {
			admit(userID)
		}
		return qualified
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, userID := range entrants {
		userID := userID
		wg.Add(1)
		task := func() {
			defer wg.Done()
			admit(userID)
		}
		if errSubmit := pool.Submit(task); errSubmit != nil {
			task()
		}
	}
	wg.Wait()

	return qualified
}

// mention renders a clickable winner mention, falling back to the bare ID
// when the display name cannot be resolved. The fallback keeps the
// announcement going: a failed lookup must not abort it.
func (s *GiveawayService) mention(channelID, userID int64) string {
	name, err := s.members.DisplayName(channelID, userID)
	if err != nil {
		s.logger.Errorf("(channel: %d) failed to resolve display name of user %d: %v", channelID, userID, err)
		return fmt.Sprintf("<code>%d</code>", userID)
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, userID, name)
}

// drawWinners picks count distinct entrants uniformly at random without
// replacement. Shuffling a copy removes any ordering bias the qualified
// slice may carry.
func drawWinners(qualified []int64, count int) []int64 {
	winners := make([]int64, len(qualified))
	copy(winners, qualified)
	rand.Shuffle(len(winners), func(i, j int) {
		winners[i], winners[j] = winners[j], winners[i]
	})
	return winners[:count]
}

func publishKey(giveawayID int64) scheduler.Key {
	return scheduler.Key{GiveawayID: giveawayID, Phase: scheduler.PhasePublish}
}

func concludeKey(giveawayID int64) scheduler.Key {
	return scheduler.Key{GiveawayID: giveawayID, Phase: scheduler.PhaseConclude}
}
