// Package sessionstore keeps login sessions. RedisStore is used in deployments;
// MemoryStore serves tests and single-process demos.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type sessionRecord struct {
	AccountID string    `json:"account_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RedisStore stores each session as a JSON value under "session:<token>" with
// a TTL matching the session expiry.
type RedisStore struct {
	rdb   *redis.Client
	clock ports.Clock
}

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.ClassifyContextError("redis", err)
	}

	return rdb, nil
}

func NewRedisStore(rdb *redis.Client, clock ports.Clock) *RedisStore {
	return &RedisStore{rdb: rdb, clock: clock}
}

func (s *RedisStore) Save(ctx context.Context, session account.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	ttl := session.ExpiresAt().Sub(s.clock.Now())
	if ttl <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("session", errors.New("already expired"))
	}

	payload, err := json.Marshal(sessionRecord{
		AccountID: session.AccountID().String(),
		Role:      session.Role().String(),
		ExpiresAt: session.ExpiresAt(),
	})
	if err != nil {
		return err
	}

	if err = s.rdb.Set(ctx, keyPrefix+session.Token(), payload, ttl).Err(); err != nil {
		return errs.ClassifyContextError("redis", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (account.Session, error) {
	if token == "" {
		return account.Session{}, fmt.Errorf("%w: missing session token", errs.ErrUnauthorized)
	}

	payload, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return account.Session{}, fmt.Errorf("%w: unknown session", errs.ErrUnauthorized)
	}
	if err != nil {
		return account.Session{}, errs.ClassifyContextError("redis", err)
	}

	var rec sessionRecord
	if err = json.Unmarshal(payload, &rec); err != nil {
		return account.Session{}, fmt.Errorf("decode session: %w", err)
	}

	accountID, err := kernel.UUIDFromString(rec.AccountID)
	if err != nil {
		return account.Session{}, err
	}
	session, err := account.RestoreSession(token, accountID, account.Role(rec.Role), rec.ExpiresAt)
	if err != nil {
		return account.Session{}, err
	}

	if session.IsExpired(s.clock.Now()) {
		return account.Session{}, fmt.Errorf("%w: session expired", errs.ErrUnauthorized)
	}
	return session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		return errs.ClassifyContextError("redis", err)
	}
	return nil
}
