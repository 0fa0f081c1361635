package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rep-lookup/middleware/ratelimit/domain"

	"github.com/redis/go-redis/v9"
)

// KEYS[1] = chave do contador
// ARGV[1] = duração da janela em ms
// Retorna {count, pttl}. A janela começa no primeiro INCR; o PEXPIRE faz o reset.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
    ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisStore é o mesmo contador de janela fixa, mas compartilhado entre
// instâncias. O ciclo INCR/PEXPIRE/PTTL roda atômico dentro do script.
type RedisStore struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

type RedisStoreOption func(*RedisStore)

func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func NewRedisStore(rdb *redis.Client, limit int, window time.Duration, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "lookup:ratelimit",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Limit() int            { return s.limit }
func (s *RedisStore) Window() time.Duration { return s.window }

// Hit implementa domain.WindowStore.
func (s *RedisStore) Hit(ctx context.Context, key domain.Key) (domain.Decision, error) {
	k := s.prefix + ":" + string(key)

	vals, err := fixedWindowScript.Run(ctx, s.rdb, []string{k}, s.window.Milliseconds()).Int64Slice()
	if err != nil {
		return domain.Decision{Limit: s.limit}, fmt.Errorf("redis fixed window: %w", err)
	}
	if len(vals) != 2 {
		return domain.Decision{Limit: s.limit}, fmt.Errorf("redis fixed window: unexpected reply %v", vals)
	}

	count := int(vals[0])
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return domain.Decision{
		Allowed:   count <= s.limit,
		Limit:     s.limit,
		Remaining: remaining,
		ResetIn:   time.Duration(vals[1]) * time.Millisecond,
	}, nil
}
