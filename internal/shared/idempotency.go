package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	pendingPrefix = "pending:"
	donePrefix    = "done:"
)

// ErrIdempotencyConflict indicates the key is held by a request that has not finished.
var ErrIdempotencyConflict = errors.New("idempotent request still in progress")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// IdempotencyStore remembers processed request keys in Redis.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore constructs the store. A nil client disables it.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reservation is the outcome of Reserve. Replay holds the stored result of an
// earlier completed request; Token identifies a fresh reservation.
type Reservation struct {
	Token  string
	Replay []byte
}

// Reserve claims key for module. When the key already completed, the stored
// payload is returned for replay.
func (s *IdempotencyStore) Reserve(ctx context.Context, module, key string) (Reservation, error) {
	if s == nil {
		return Reservation{}, nil
	}
	if key == "" {
		return Reservation{}, errors.New("idempotency key required")
	}
	if module == "" {
		return Reservation{}, errors.New("idempotency module required")
	}
	token := uuid.NewString()
	redisKey := s.key(module, key)
	ok, err := s.client.SetNX(ctx, redisKey, pendingPrefix+token, s.ttl).Result()
	if err != nil {
		return Reservation{}, fmt.Errorf("shared: reserve idempotency key: %w", err)
	}
	if ok {
		return Reservation{Token: token}, nil
	}
	val, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		// Released between SETNX and GET; let the caller retry.
		return Reservation{}, ErrIdempotencyConflict
	}
	if err != nil {
		return Reservation{}, fmt.Errorf("shared: read idempotency key: %w", err)
	}
	if strings.HasPrefix(val, donePrefix) {
		return Reservation{Replay: []byte(strings.TrimPrefix(val, donePrefix))}, nil
	}
	return Reservation{}, ErrIdempotencyConflict
}

// Complete stores payload as the result for key.
func (s *IdempotencyStore) Complete(ctx context.Context, module, key string, payload []byte) error {
	if s == nil {
		return nil
	}
	if err := s.client.Set(ctx, s.key(module, key), donePrefix+string(payload), s.ttl).Err(); err != nil {
		return fmt.Errorf("shared: complete idempotency key: %w", err)
	}
	return nil
}

// Release drops a reservation, typically used to roll back failed processing.
func (s *IdempotencyStore) Release(ctx context.Context, module, key, token string) error {
	if s == nil || token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, s.client, []string{s.key(module, key)}, pendingPrefix+token).Err(); err != nil {
		return fmt.Errorf("shared: release idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(module, key string) string {
	return "idempotency:" + module + ":" + key
}
