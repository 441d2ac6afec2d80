package redis

import (
	"Chronicle/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 基于 Redis 的令牌吊销表与孤儿媒体队列
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// RevokeToken 按 jti 吊销令牌, 有效期与令牌剩余寿命一致
func (s *Store) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, consts.TokenRevokedKey+tokenID, 1, ttl).Err()
}

// IsTokenRevoked jti 是否在吊销表中
func (s *Store) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.rdb.Get(ctx, consts.TokenRevokedKey+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnqueueOrphans 记录待清理的媒体对象键
func (s *Store) EnqueueOrphans(ctx context.Context, keys ...string) error {
	members := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			members = append(members, k)
		}
	}
	if len(members) == 0 {
		return nil
	}
	return s.rdb.SAdd(ctx, consts.MediaOrphanKey, members...).Err()
}

// PopOrphans 取出至多 n 个待清理对象键
func (s *Store) PopOrphans(ctx context.Context, n int64) ([]string, error) {
	keys, err := s.rdb.SPopN(ctx, consts.MediaOrphanKey, n).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return keys, nil
}
