package challenge

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/todo-api/internal/constants"
)

const challengeKeyPrefix = "challenge:"

// verifyScript deletes the key only when the stored answer matches, so a
// wrong guess leaves the challenge in place and only one caller can win.
var verifyScript = redis.NewScript(`
local stored = redis.call('GET', KEYS[1])
if stored and stored == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// RedisStore keeps challenges in Redis, relying on key TTLs for expiry.
type RedisStore struct {
	rdb  *redis.Client
	ttl  time.Duration
	intn func(int) int
}

// NewRedisStore creates a Redis-backed store. A non-positive ttl uses the default.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = constants.DefaultChallengeTTL
	}
	return &RedisStore{
		rdb:  rdb,
		ttl:  ttl,
		intn: defaultIntN,
	}
}

// Generate implements Store.
func (s *RedisStore) Generate(ctx context.Context) (Challenge, error) {
	num1, num2 := operands(s.intn)
	id := uuid.NewString()

	if err := s.rdb.Set(ctx, challengeKey(id), num1*num2, s.ttl).Err(); err != nil {
		return Challenge{}, fmt.Errorf("store challenge: %w", err)
	}

	return Challenge{ID: id, Num1: num1, Num2: num2}, nil
}

// Verify implements Store.
func (s *RedisStore) Verify(ctx context.Context, id string, answer int) (bool, error) {
	if id == "" {
		return false, nil
	}

	matched, err := verifyScript.Run(ctx, s.rdb, []string{challengeKey(id)}, strconv.Itoa(answer)).Int()
	if err != nil {
		return false, fmt.Errorf("verify challenge: %w", err)
	}
	return matched == 1, nil
}

func challengeKey(id string) string {
	return challengeKeyPrefix + id
}
