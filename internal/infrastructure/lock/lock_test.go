package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

func TestLocalLockerSerializesSameKey(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, "conversation:1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, locker.slots)
}

func TestLocalLockerIndependentKeys(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, "conversation:1")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := locker.Lock(ctx, "conversation:2")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockerHonoursContext(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), "conversation:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "conversation:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Empty(t, locker.slots)
}

func TestBuildUniversalOptions(t *testing.T) {
	opts, err := buildUniversalOptions("redis://:pw@cache:6379/2")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache:6379"}, opts.Addrs)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildUniversalOptions("a:6379, b:6379")
	require.NoError(t, err)
	assert.Equal(t, []string{"a:6379", "b:6379"}, opts.Addrs)

	_, err = buildUniversalOptions(" , ")
	assert.Error(t, err)
}

func TestTriesForCoversWait(t *testing.T) {
	for _, wait := range []time.Duration{time.Second, 2 * time.Minute, 90*time.Second + 50*time.Millisecond} {
		tries := triesFor(wait)
		assert.GreaterOrEqual(t, time.Duration(tries-1)*retryDelay, wait-retryDelay, "wait %s", wait)
		assert.Greater(t, tries, 1)
	}
}

func TestAcquireError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want platformerrors.ErrorType
	}{
		{"retries exhausted", redsync.ErrFailed, platformerrors.ErrorTypeTimeout},
		{"wrapped retries exhausted", fmt.Errorf("lock: %w", redsync.ErrFailed), platformerrors.ErrorTypeTimeout},
		{"taken on quorum", &redsync.ErrTaken{Nodes: []int{0}}, platformerrors.ErrorTypeTimeout},
		{"deadline", context.DeadlineExceeded, platformerrors.ErrorTypeTimeout},
		{"redis unreachable", &redsync.RedisError{Node: 0, Err: errors.New("dial tcp: connection refused")}, platformerrors.ErrorTypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := acquireError(context.Background(), "conversation:7", tt.err)
			assert.True(t, platformerrors.IsErrorType(err, tt.want), "got %v", err)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "conversation:7")
		})
	}
}
