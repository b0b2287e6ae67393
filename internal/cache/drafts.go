package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDraftNotFound is returned when a wizard draft is absent or expired.
var ErrDraftNotFound = errors.New("draft not found")

// DraftStore keeps in-progress event wizard forms in Redis so a half-filled
// form survives a page reload or a pod restart. Drafts expire on their own;
// saving the event deletes the draft explicitly.
type DraftStore struct {
	TTL time.Duration
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{TTL: ttl}
}

func draftKey(userID int, draftID string) string {
	return fmt.Sprintf("draft:%d:%s", userID, draftID)
}

// Save stores the raw draft payload, resetting the TTL.
func (s *DraftStore) Save(ctx context.Context, userID int, draftID string, payload []byte) error {
	if client == nil {
		return errors.New("cache unavailable")
	}
	return client.Set(ctx, draftKey(userID, draftID), payload, s.TTL).Err()
}

// Get returns the raw draft payload.
func (s *DraftStore) Get(ctx context.Context, userID int, draftID string) ([]byte, error) {
	if client == nil {
		return nil, ErrDraftNotFound
	}
	data, err := client.Get(ctx, draftKey(userID, draftID)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes a draft, typically after the event was saved.
func (s *DraftStore) Delete(ctx context.Context, userID int, draftID string) {
	if client == nil {
		return
	}
	client.Del(ctx, draftKey(userID, draftID))
}

// List returns the draft ids a user currently has.
func (s *DraftStore) List(ctx context.Context, userID int) ([]string, error) {
	if client == nil {
		return nil, nil
	}
	pattern := fmt.Sprintf("draft:%d:*", userID)
	keys, err := client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, err
	}
	prefix := fmt.Sprintf("draft:%d:", userID)
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k[len(prefix):])
	}
	return ids, nil
}
