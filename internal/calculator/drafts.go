package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	"github.com/go-redis/redis/v8"
)

const DefaultDraftTTL = 12 * time.Hour

var ErrDraftNotFound = errors.New("calculator draft not found")

// DraftStore keeps the in-progress session of an owner in redis. Unlike the
// calculation string, a draft holds the full session, so expression sources
// and raw multiplier text survive a reload.
type DraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDraftStore(rdb *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{
		rdb: rdb,
		ttl: ttl,
	}
}

func draftKey(ownerID string, group units.Group) string {
	return fmt.Sprintf("sumcalc:draft:%s:%s", ownerID, group)
}

func (s *DraftStore) Save(ctx context.Context, ownerID string, session sumcalc.Session) error {
	sessionBytes, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.rdb.Set(ctx, draftKey(ownerID, session.Group), sessionBytes, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Load(ctx context.Context, ownerID string, group units.Group) (sumcalc.Session, error) {
	sessionBytes, err := s.rdb.Get(ctx, draftKey(ownerID, group)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sumcalc.Session{}, ErrDraftNotFound
		}
		return sumcalc.Session{}, fmt.Errorf("redis get draft: %w", err)
	}

	var session sumcalc.Session
	if err := json.Unmarshal(sessionBytes, &session); err != nil {
		return sumcalc.Session{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return session, nil
}

func (s *DraftStore) Delete(ctx context.Context, ownerID string, group units.Group) error {
	if err := s.rdb.Del(ctx, draftKey(ownerID, group)).Err(); err != nil {
		return fmt.Errorf("redis del draft: %w", err)
	}
	return nil
}
