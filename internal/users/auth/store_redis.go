// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Layout:
//   - auth:session:<tokenhash>     -> JSON session document, TTL = session lifetime
//   - auth:session:user:<userid>   -> SET of the user's live token hashes
//
// Expiry is enforced by Redis TTLs; revocation deletes the document, so a
// missing key and an expired one are indistinguishable to callers.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func sessionUserKey(userID string) string {
	return constants.RedisPrefixSession + "user:" + userID
}

/*
Create persists a new session document keyed by its token hash.
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: failed to encode session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return apperr.Internal(errors.New("session expiry must be in the future"))
	}

	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey(session.TokenHash), payload, ttl)
	pipe.SAdd(context, sessionUserKey(session.UserID), session.TokenHash)
	pipe.Expire(context, sessionUserKey(session.UserID), ttl)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis: failed to store session: %w", err)
	}

	return nil
}

/*
FindByTokenHash resolves a token hash into its live session.
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis: failed to load session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis: failed to decode session: %w", err)
	}
	session.TokenHash = tokenHash

	return session, nil
}

/*
Revoke invalidates the session with the token hash. Idempotent.
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			return nil
		}
		return err
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey(tokenHash))
	pipe.SRem(context, sessionUserKey(session.UserID), tokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis: failed to revoke session: %w", err)
	}

	return nil
}

/*
RevokeAll revokes every live session of the user.
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	return repository.revokeSet(context, userID, "")
}

/*
RevokeOthers revokes all of the user's sessions except keepTokenHash.
*/
func (repository *RedisSessionRepository) RevokeOthers(context context.Context, userID, keepTokenHash string) error {
	return repository.revokeSet(context, userID, keepTokenHash)
}

func (repository *RedisSessionRepository) revokeSet(context context.Context, userID, keepTokenHash string) error {
	hashes, err := repository.client.SMembers(context, sessionUserKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis: failed to list user sessions: %w", err)
	}

	pipe := repository.client.TxPipeline()
	for _, hash := range hashes {
		if hash == keepTokenHash {
			continue
		}
		pipe.Del(context, sessionKey(hash))
		pipe.SRem(context, sessionUserKey(userID), hash)
	}

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis: failed to revoke user sessions: %w", err)
	}

	return nil
}

// # Volatile Token Repository

// RedisTokenRepository implements [TokenRepository] using Redis with a fixed
// key prefix. The same implementation backs password reset and email
// verification tokens under different prefixes.
type RedisTokenRepository struct {
	client  *redis.Client
	prefix  string
	missing string
}

// NewResetTokenRepository creates the Redis store for password reset tokens.
func NewResetTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client:  client,
		prefix:  constants.RedisPrefixResetToken,
		missing: "Reset token",
	}
}

// NewVerificationTokenRepository creates the Redis store for email verification tokens.
func NewVerificationTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client:  client,
		prefix:  constants.RedisPrefixVerifyToken,
		missing: "Verification token",
	}
}

/*
Set stores a token with its associated userID and TTL.
*/
func (repository *RedisTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, repository.prefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to store token: %w", err)
	}
	return nil
}

/*
Get retrieves the userID for a given token.
*/
func (repository *RedisTokenRepository) Get(context context.Context, token string) (string, error) {
	userID, err := repository.client.Get(context, repository.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound(repository.missing)
		}
		return "", fmt.Errorf("redis: failed to load token: %w", err)
	}
	return userID, nil
}

/*
Delete removes the token after successful use.
*/
func (repository *RedisTokenRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, repository.prefix+token).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete token: %w", err)
	}
	return nil
}
