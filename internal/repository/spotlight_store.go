package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const spotlightKey = "dashboard:employee_of_week"

// SpotlightStore holds the current employee-of-the-week selection. An empty
// name means nobody is selected.
type SpotlightStore interface {
	Set(ctx context.Context, characterName string) error
	Get(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type spotlightStore struct {
	client *redis.Client
}

// NewSpotlightStore returns a Redis-backed implementation.
func NewSpotlightStore(client *redis.Client) SpotlightStore {
	return &spotlightStore{client: client}
}

func (s *spotlightStore) Set(ctx context.Context, characterName string) error {
	return s.client.Set(ctx, spotlightKey, characterName, 0).Err()
}

func (s *spotlightStore) Get(ctx context.Context) (string, error) {
	name, err := s.client.Get(ctx, spotlightKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}

func (s *spotlightStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, spotlightKey).Err()
}
