// Package memory holds the in-process giveaway storage. Giveaway state is
// ephemeral: it does not survive a restart (see Snapshot for the explicit
// extension point around that).
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randomgive/giveaway-bot/internal/domain/common/errorz"
	"github.com/randomgive/giveaway-bot/internal/domain/entity"
)

// GiveawayStorage maps giveaway IDs to records and is the single source of
// truth for lifecycle state.
//
// Concurrency contract: the storage lock only makes individual calls atomic.
// Compound read-modify-write sequences, including mutation of a *Giveaway
// returned by Get, must be serialized by the caller (the lifecycle engine
// holds its own mutex around them).
type GiveawayStorage struct {
	mu        sync.RWMutex
	giveaways map[int64]*entity.Giveaway
}

func NewGiveawayStorage() *GiveawayStorage {
	return &GiveawayStorage{
		giveaways: make(map[int64]*entity.Giveaway),
	}
}

// Create inserts the record, rejecting a second giveaway for the same
// channel with errorz.GiveawayExists.
func (s *GiveawayStorage) Create(giveaway *entity.Giveaway) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.giveaways[giveaway.ID]; ok {
		return errorz.GiveawayExists
	}
	s.giveaways[giveaway.ID] = giveaway
	return nil
}

func (s *GiveawayStorage) Get(id int64) (*entity.Giveaway, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	giveaway, ok := s.giveaways[id]
	return giveaway, ok
}

// Delete removes the record. Deleting an unknown ID is a no-op.
func (s *GiveawayStorage) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.giveaways, id)
}

func (s *GiveawayStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.giveaways)
}

// Summaries returns a listing of every stored giveaway, ordered by ID.
func (s *GiveawayStorage) Summaries() []entity.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]entity.Summary, 0, len(s.giveaways))
	for _, giveaway := range s.giveaways {
		summaries = append(summaries, entity.Summary{
			ID:            giveaway.ID,
			ChannelHandle: giveaway.ChannelHandle,
			Active:        giveaway.IsActive(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

// Snapshot deep-copies every stored record.
func (s *GiveawayStorage) Snapshot() entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	giveaways := make([]*entity.Giveaway, 0, len(s.giveaways))
	for _, giveaway := range s.giveaways {
		giveaways = append(giveaways, giveaway.Clone())
	}
	sort.Slice(giveaways, func(i, j int) bool { return giveaways[i].ID < giveaways[j].ID })

	return entity.Snapshot{
		ID:        uuid.NewString(),
		TakenAt:   time.Now(),
		Giveaways: giveaways,
	}
}

// Restore replaces the storage contents with the snapshot's records. Timers
// are not restored here; whoever reloads a snapshot re-arms them.
func (s *GiveawayStorage) Restore(snapshot entity.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.giveaways = make(map[int64]*entity.Giveaway, len(snapshot.Giveaways))
	for _, giveaway := range snapshot.Giveaways {
		s.giveaways[giveaway.ID] = giveaway.Clone()
	}
}
