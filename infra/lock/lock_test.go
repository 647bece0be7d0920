package lock

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/homebanking/corebank/pkg/lock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRedisLocker(rdb, RedisOptions{
		Prefix:     "corebank:",
		Tries:      3,
		RetryDelay: 10 * time.Millisecond,
	}, logger), mr
}

func lockers(t *testing.T) map[string]lock.Locker {
	redisLocker, _ := newRedisLocker(t)
	return map[string]lock.Locker{
		"memory": NewKeyedMutex(),
		"redis":  redisLocker,
	}
}

func TestLocker_SerializesSameKey(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				inside  int
				maxSeen int
			)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					var unlock lock.Unlock
					var err error
					// redis locker gives up after its configured tries, so retry here
					for {
						unlock, err = l.Lock(ctx, lock.Account("014/5301"))
						if err == nil {
							break
						}
						time.Sleep(5 * time.Millisecond)
					}
					mu.Lock()
					inside++
					maxSeen = max(maxSeen, inside)
					mu.Unlock()
					time.Sleep(2 * time.Millisecond)
					mu.Lock()
					inside--
					mu.Unlock()
					unlock()
				}()
			}
			wg.Wait()
			assert.Equal(t, 1, maxSeen)
		})
	}
}

func TestLocker_DisjointKeysDoNotBlock(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			unlockA, err := l.Lock(ctx, lock.Account("014/5301"))
			require.NoError(t, err)
			defer unlockA()

			unlockB, err := l.Lock(ctx, lock.Account("014/5302"))
			require.NoError(t, err)
			unlockB()
			unlockB() // idempotent
		})
	}
}

func TestKeyedMutex_HonoursContext(t *testing.T) {
	l := NewKeyedMutex()
	unlock, err := l.Lock(context.Background(), "a", "b")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "b", "c")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// "c" was not left held by the failed attempt
	unlockC, err := l.Lock(context.Background(), "c")
	require.NoError(t, err)
	unlockC()
	unlock()
}

func TestRedisLocker_ReleasesKeys(t *testing.T) {
	l, mr := newRedisLocker(t)
	unlock, err := l.Lock(context.Background(), lock.Account("014/5302"), lock.Account("014/5301"))
	require.NoError(t, err)
	assert.True(t, mr.Exists("corebank:account:014/5301"))
	assert.True(t, mr.Exists("corebank:account:014/5302"))

	unlock()
	assert.False(t, mr.Exists("corebank:account:014/5301"))
	assert.False(t, mr.Exists("corebank:account:014/5302"))
}

func TestRedisLocker_FailsWhenHeld(t *testing.T) {
	l, _ := newRedisLocker(t)
	unlock, err := l.Lock(context.Background(), lock.Account("014/5301"))
	require.NoError(t, err)
	defer unlock()

	_, err = l.Lock(context.Background(), lock.Account("014/5301"))
	assert.Error(t, err)
}

func TestKeyedMutex_ForgetsIdleKeys(t *testing.T) {
	ctx := context.Background()
	m := NewKeyedMutex()
	for i := 0; i < 50; i++ {
		unlock, err := m.Lock(ctx, lock.Account(fmt.Sprintf("014/53%02d", i)), lock.Client(fmt.Sprint(i)))
		require.NoError(t, err)
		assert.Equal(t, 2, m.Len())
		unlock()
	}
	assert.Zero(t, m.Len())

	unlock, err := m.Lock(ctx, lock.Account("014/5301"))
	require.NoError(t, err)
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = m.Lock(waitCtx, lock.Account("014/5301"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, m.Len())
	unlock()
	assert.Zero(t, m.Len())
}
