package entity

import "time"

// Snapshot is a point-in-time copy of every stored giveaway. Giveaway state
// lives in process memory only; the snapshot API is the extension point for
// anyone who wants to dump and reload it around a restart.
type Snapshot struct {
	ID        string
	TakenAt   time.Time
	Giveaways []*Giveaway
}
