package invites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/AleksGin/business-manager-ci/config"
	"github.com/AleksGin/business-manager-ci/internal/entities"
)

const keyPrefix = "invite:"

// RedisStore keeps invite codes in Redis with a TTL slightly past the
// invite expiry, so reads near the boundary still see the record and
// the expiry decision stays with the domain clock.
type RedisStore struct {
	rdb *redis.Client
	log *zap.SugaredLogger
}

// NewRedisStore connects the store to Redis.
func NewRedisStore(cfg config.RedisConfig, log *zap.SugaredLogger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{
		rdb: rdb,
		log: log.Named("invites.redis"),
	}
}

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Save stores the invite under its code.
func (s *RedisStore) Save(ctx context.Context, invite entities.Invite) error {
	payload, err := json.Marshal(invite)
	if err != nil {
		return fmt.Errorf("marshal invite: %w", err)
	}

	ttl := invite.ExpiresAt.Sub(invite.IssuedAt) + time.Minute
	if err := s.rdb.Set(ctx, keyPrefix+invite.Code, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save invite: %w", err)
	}

	s.log.Infow("invite saved", "team_id", invite.TeamID, "expires_at", invite.ExpiresAt)
	return nil
}

// Get returns the invite by code, or ErrInviteInvalid for unknown codes.
func (s *RedisStore) Get(ctx context.Context, code string) (*entities.Invite, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrInviteInvalid
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}

	var invite entities.Invite
	if err := json.Unmarshal(payload, &invite); err != nil {
		return nil, fmt.Errorf("unmarshal invite: %w", err)
	}
	return &invite, nil
}

// Invalidate deactivates the code while keeping its record until TTL.
func (s *RedisStore) Invalidate(ctx context.Context, code string) error {
	invite, err := s.Get(ctx, code)
	if err != nil {
		return err
	}

	invite.Active = false
	payload, err := json.Marshal(invite)
	if err != nil {
		return fmt.Errorf("marshal invite: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+code, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("invalidate invite: %w", err)
	}
	return nil
}
