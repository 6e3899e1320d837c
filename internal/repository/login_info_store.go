package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const loginInfoKey = "dashboard:saved_login_info"

// SavedLoginInfo is the opt-in sign-in prefill record.
type SavedLoginInfo struct {
	CharacterName string `json:"character_name"`
	Password      string `json:"password"`
}

// LoginInfoStore persists the saved sign-in prefill in Redis. The record is
// a single key: the dashboard remembers at most one opted-in identity.
type LoginInfoStore interface {
	Save(ctx context.Context, info SavedLoginInfo) error
	Get(ctx context.Context) (*SavedLoginInfo, error)
	Clear(ctx context.Context) error
}

type loginInfoStore struct {
	client *redis.Client
}

// NewLoginInfoStore returns a Redis-backed implementation.
func NewLoginInfoStore(client *redis.Client) LoginInfoStore {
	return &loginInfoStore{client: client}
}

func (s *loginInfoStore) Save(ctx context.Context, info SavedLoginInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, loginInfoKey, payload, 0).Err()
}

func (s *loginInfoStore) Get(ctx context.Context) (*SavedLoginInfo, error) {
	payload, err := s.client.Get(ctx, loginInfoKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var info SavedLoginInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *loginInfoStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, loginInfoKey).Err()
}
