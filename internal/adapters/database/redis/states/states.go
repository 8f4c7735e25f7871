package states

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nlypage/intele/storage"
	"github.com/redis/go-redis/v9"
)

// Storage keeps per-user input states in redis, implementing the state
// storage contract of the intele input manager.
type Storage struct {
	redis *redis.Client
}

var _ storage.StateStorage = (*Storage)(nil)

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Set(userID int64, state string, expiration time.Duration) error {
	return s.redis.Set(context.Background(), fmt.Sprintf("%d", userID), state, expiration).Err()
}

// Get returns the user's current input state. An absent key is not an
// error: it reads as the empty state.
func (s *Storage) Get(userID int64) (string, error) {
	state, err := s.redis.Get(context.Background(), fmt.Sprintf("%d", userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return state, nil
}

func (s *Storage) Delete(userID int64) {
	s.redis.Del(context.Background(), fmt.Sprintf("%d", userID))
}
