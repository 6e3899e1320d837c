package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const noticeKeyPrefix = "dashboard:notice:"

// NoticeStore keeps transient warning notices, keyed by the warned
// character's name and expiring on their own. Only the warned identity
// reads its notice.
type NoticeStore interface {
	Put(ctx context.Context, characterName, message string, ttl time.Duration) error
	Get(ctx context.Context, characterName string) (string, error)
}

type noticeStore struct {
	client *redis.Client
}

// NewNoticeStore returns a Redis-backed implementation.
func NewNoticeStore(client *redis.Client) NoticeStore {
	return &noticeStore{client: client}
}

func (s *noticeStore) Put(ctx context.Context, characterName, message string, ttl time.Duration) error {
	return s.client.Set(ctx, noticeKeyPrefix+characterName, message, ttl).Err()
}

func (s *noticeStore) Get(ctx context.Context, characterName string) (string, error) {
	msg, err := s.client.Get(ctx, noticeKeyPrefix+characterName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return msg, nil
}
