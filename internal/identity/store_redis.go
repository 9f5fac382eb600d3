// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minhanle/paydeck/internal/platform/apperr"
	"github.com/minhanle/paydeck/internal/platform/constants"
	"github.com/minhanle/paydeck/internal/platform/sec"
)

// RedisResetTokenRepository implements [ResetTokenRepository] using Redis.
//
// Keys carry the token's SHA-256 digest rather than the raw token, so a Redis
// snapshot alone is not enough to take over an account. Expiry is delegated
// to Redis TTLs; no cleanup job is needed.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// resetTokenKey builds the namespaced Redis key for a reset token.
func resetTokenKey(token string) string {
	return constants.RedisPrefixResetToken + sec.HashToken(token)
}

/*
Set stores a reset token with its associated principalID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - principalID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, token string, principalID string, ttl time.Duration) error {
	if err := repository.client.Set(context, resetTokenKey(token), principalID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the principalID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: PrincipalID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {
	principalID, err := repository.client.Get(context, resetTokenKey(token)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return principalID, nil
}

/*
Delete removes the token from Redis after successful use.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, resetTokenKey(token)).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}
