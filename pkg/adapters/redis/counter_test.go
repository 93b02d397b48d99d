package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/adapters/redis"
	"github.com/aretw0/scribe/pkg/depth"
	"github.com/aretw0/scribe/pkg/domain"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Counter) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	return mr, redis.NewCounter(client, opts...)
}

func TestCounter_IncrDecr(t *testing.T) {
	mr, counter := setup(t, redis.WithKey("custom:depth"))
	ctx := context.Background()

	n, err := counter.Incr(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = counter.Incr(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.True(t, mr.Exists("custom:depth"), "expected key with custom name to exist")

	cur, err := counter.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cur)

	for _, want := range []int{1, 0, 0} {
		n, err = counter.Decr(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	assert.False(t, mr.Exists("custom:depth"), "key must be removed at zero")

	cur, err = counter.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, cur)
}

func TestCounter_TTLExpiration(t *testing.T) {
	mr, counter := setup(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	_, err := counter.Incr(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	cur, err := counter.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, cur)
}

func TestCounter_SharedCeiling(t *testing.T) {
	_, counter := setup(t)
	guard := depth.NewCounterGuard(domain.DepthLimit, counter)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
		releases []depth.Release
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, release, err := guard.Enter(ctx)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
				releases = append(releases, release)
			case errors.Is(err, domain.ErrDepthLimitExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, domain.DepthLimit, admitted)
	assert.Equal(t, 15, rejected)

	for _, release := range releases {
		release()
	}
	open, err := guard.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, open)
}
