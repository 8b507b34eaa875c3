package session

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/querypad/querypad/core/user"
)

// sessionKeyPrefix namespaces session hashes in the cache keyspace.
const sessionKeyPrefix = "session:"

// RedisStore keeps session records as Redis hashes with a native TTL.
// The cache's own expiry is authoritative for session lifetime: an expired
// key is simply a miss, which is why Get reports ErrNotFound uniformly.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create writes the record as a hash and sets the key TTL to the remaining
// session lifetime. HSet and Expire run in one pipeline so no key is left
// behind without an expiry.
func (r *RedisStore) Create(ctx context.Context, rec Record) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return ErrNotInFuture
	}

	fields := map[string]any{
		"secret_hash":  hex.EncodeToString(rec.SecretHash),
		"session_uuid": rec.UUID.String(),
		"user_id":      rec.User.ID.String(),
		"username":     rec.User.Username,
		"role":         rec.User.Role,
		"verified":     strconv.FormatBool(rec.User.Verified),
		"created_at":   strconv.FormatInt(rec.CreatedAt.Unix(), 10),
		"expires_at":   strconv.FormatInt(rec.ExpiresAt.Unix(), 10),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(rec.ID), fields)
	pipe.Expire(ctx, sessionKey(rec.ID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create session hash: %w", err)
	}
	return nil
}

// Get loads the record for id. An absent key, which covers both
// "never existed" and "expired via TTL", is ErrNotFound.
func (r *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	values, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return Record{}, fmt.Errorf("get session hash: %w", err)
	}
	if len(values) == 0 {
		return Record{}, ErrNotFound
	}
	rec, err := parseRecord(values)
	if err != nil {
		return Record{}, err
	}
	rec.ID = id
	return rec, nil
}

// Delete removes the session key. Deleting an absent key is a no-op.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session hash: %w", err)
	}
	return nil
}

// parseRecord rebuilds a Record from the raw hash fields. A hash that does
// not parse is treated as absent rather than leaked to the caller.
func parseRecord(values map[string]string) (Record, error) {
	secretHash, err := hex.DecodeString(values["secret_hash"])
	if err != nil || len(secretHash) == 0 {
		return Record{}, ErrNotFound
	}

	sessionUUID, err := uuid.Parse(values["session_uuid"])
	if err != nil {
		return Record{}, ErrNotFound
	}

	userID, err := uuid.Parse(values["user_id"])
	if err != nil {
		return Record{}, ErrNotFound
	}

	createdAt, err := strconv.ParseInt(values["created_at"], 10, 64)
	if err != nil {
		return Record{}, ErrNotFound
	}
	expiresAt, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return Record{}, ErrNotFound
	}

	verified, _ := strconv.ParseBool(values["verified"])

	return Record{
		UUID:       sessionUUID,
		SecretHash: secretHash,
		User: user.User{
			ID:       userID,
			Username: values["username"],
			Role:     values["role"],
			Verified: verified,
		},
		CreatedAt: time.Unix(createdAt, 0).UTC(),
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}, nil
}
