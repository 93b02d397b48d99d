// Package redis shares the inclusion depth counter across processes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "scribe:depth"
	DefaultTTL = 5 * time.Minute
)

// decrScript decrements without going below zero. The key is deleted once
// it reaches zero and otherwise keeps a fresh TTL.
var decrScript = backend.NewScript(`
	local v = redis.call("DECR", KEYS[1])
	if v <= 0 then
		redis.call("DEL", KEYS[1])
		return 0
	end
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	return v
`)

// Counter implements ports.DepthCounter on a single Redis key.
//
// Every increment refreshes the key's TTL, so inclusions left open by a
// crashed process stop counting once the TTL lapses.
type Counter struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

// Option configures a Counter.
type Option func(*Counter)

// WithKey sets the Redis key. Processes sharing a key share the ceiling.
func WithKey(key string) Option {
	return func(c *Counter) {
		c.key = key
	}
}

// WithTTL sets the expiry refreshed on every change.
func WithTTL(ttl time.Duration) Option {
	return func(c *Counter) {
		c.ttl = ttl
	}
}

// NewCounter creates a counter from an existing client.
func NewCounter(client *backend.Client, opts ...Option) *Counter {
	c := &Counter{
		client: client,
		key:    DefaultKey,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient creates a Redis client for addr.
func NewClient(addr, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Incr implements ports.DepthCounter.
func (c *Counter) Incr(ctx context.Context) (int, error) {
	var incr *backend.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		incr = pipe.Incr(ctx, c.key)
		pipe.PExpire(ctx, c.key, c.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis error incrementing %s: %w", c.key, err)
	}
	return int(incr.Val()), nil
}

// Decr implements ports.DepthCounter.
func (c *Counter) Decr(ctx context.Context) (int, error) {
	v, err := decrScript.Run(ctx, c.client, []string{c.key}, c.ttl.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("redis error decrementing %s: %w", c.key, err)
	}
	return v, nil
}

// Current implements ports.DepthCounter.
func (c *Counter) Current(ctx context.Context) (int, error) {
	raw, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, backend.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis error reading %s: %w", c.key, err)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid counter value %q at %s: %w", raw, c.key, err)
	}
	return n, nil
}
