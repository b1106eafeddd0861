package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

const (
	keyPrefix  = "botgpt:lock:"
	retryDelay = 200 * time.Millisecond
)

// RedisLocker serializes work per key across processes with a redsync mutex.
type RedisLocker struct {
	client redis.UniversalClient
	rs     *redsync.Redsync
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisLocker connects to redisURL, a comma separated list of redis:// URLs
// or host:port addresses.
func NewRedisLocker(ctx context.Context, redisURL string, ttl time.Duration, log zerolog.Logger) (*RedisLocker, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("Redis URL must be provided")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log = log.With().Str("component", "redis-locker").Logger()
	log.Info().Msg("connected to Redis for conversation locks")

	return &RedisLocker{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
		ttl:    ttl,
		log:    log,
	}, nil
}

// Lock acquires the distributed mutex for key. A waiter retries for up to one
// TTL, the longest a live holder can keep the lock. The lock expires after the
// TTL if the holder dies.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(keyPrefix+key, mutexOptions(l.ttl)...)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, acquireError(ctx, key, err)
	}

	return func() {
		unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := mutex.UnlockContext(unlockCtx); err != nil {
			l.log.Error().Err(err).Str("key", key).Msg("failed to unlock mutex")
		}
	}, nil
}

func mutexOptions(ttl time.Duration) []redsync.Option {
	return []redsync.Option{
		redsync.WithExpiry(ttl),
		redsync.WithTries(triesFor(ttl)),
		redsync.WithRetryDelay(retryDelay),
	}
}

func triesFor(wait time.Duration) int {
	return int(wait/retryDelay) + 1
}

// acquireError reports a held lock as TIMEOUT and an unreachable Redis as INTERNAL.
func acquireError(ctx context.Context, key string, err error) error {
	wrapped := fmt.Errorf("acquire lock %s: %w", key, err)

	var taken *redsync.ErrTaken
	switch {
	case errors.Is(err, redsync.ErrFailed), errors.As(err, &taken),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeTimeout,
			"conversation is busy, try again", wrapped, "8b2e4f71-0c9d-4a36-b5e8-1f7d3a6c2b90")
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeInternal,
			"lock backend unavailable", wrapped, "8b2e4f71-0c9d-4a36-b5e8-1f7d3a6c2b91")
	}
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}

func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no Redis addresses provided")
	}
	if len(opts.Addrs) > 1 {
		opts.DB = 0
	}
	return opts, nil
}
