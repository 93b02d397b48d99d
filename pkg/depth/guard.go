package depth

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

// Release closes an admitted inclusion. It is safe to call more than once;
// only the first call has an effect.
type Release func()

// Scope names a depth accounting strategy.
type Scope string

const (
	// ScopeChain counts inclusions per top-level expansion.
	ScopeChain Scope = "chain"
	// ScopeProcess counts every open inclusion of the process against one ceiling.
	ScopeProcess Scope = "process"
	// ScopeRedis shares one ceiling across every process using the same Redis key.
	ScopeRedis Scope = "redis"
)

// ParseScope converts a configuration string into a Scope. Empty means ScopeChain.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeChain, nil
	case ScopeChain, ScopeProcess, ScopeRedis:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown depth scope %q", s)
	}
}

// Guard admits nested inclusions under a depth ceiling.
type Guard interface {
	// Enter admits one more nested inclusion. On success it returns the
	// context for the nested expansion and its Release. On rejection it
	// returns an error wrapping domain.ErrDepthLimitExceeded and leaves the
	// depth state unchanged.
	Enter(ctx context.Context) (context.Context, Release, error)

	// Open reports the number of currently open inclusions tracked by the guard.
	Open(ctx context.Context) (int, error)
}

// ChainGuard enforces the ceiling per inclusion chain by passing the depth in the context.
type ChainGuard struct {
	limit int
	open  atomic.Int64
}

// NewChainGuard creates a guard with the given ceiling.
func NewChainGuard(limit int) *ChainGuard {
	return &ChainGuard{limit: limit}
}

// Enter implements Guard.
func (g *ChainGuard) Enter(ctx context.Context) (context.Context, Release, error) {
	next := FromContext(ctx) + 1
	if next > g.limit {
		return ctx, nil, fmt.Errorf("%w: depth %d", domain.ErrDepthLimitExceeded, next)
	}
	g.open.Add(1)
	return WithDepth(ctx, next), once(func() { g.open.Add(-1) }), nil
}

// Open returns the open inclusions across all chains. It is informational only.
func (g *ChainGuard) Open(context.Context) (int, error) {
	return int(g.open.Load()), nil
}

// CounterGuard enforces the ceiling against a single shared counter.
type CounterGuard struct {
	limit   int
	counter ports.DepthCounter
}

// NewCounterGuard creates a guard backed by counter.
func NewCounterGuard(limit int, counter ports.DepthCounter) *CounterGuard {
	return &CounterGuard{limit: limit, counter: counter}
}

// Enter implements Guard. The counter's atomic increment returns each caller's
// own post-increment value, so the ceiling check cannot race with other
// callers. A rejected increment is undone before returning.
func (g *CounterGuard) Enter(ctx context.Context) (context.Context, Release, error) {
	n, err := g.counter.Incr(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to increment depth counter: %w", err)
	}
	if n > g.limit {
		if _, derr := g.counter.Decr(ctx); derr != nil {
			return ctx, nil, fmt.Errorf("%w: depth %d (restoring counter: %v)", domain.ErrDepthLimitExceeded, n, derr)
		}
		return ctx, nil, fmt.Errorf("%w: depth %d", domain.ErrDepthLimitExceeded, n)
	}

	nested := WithDepth(ctx, FromContext(ctx)+1)
	release := once(func() {
		// The nested expansion may have been cancelled; the decrement must still land.
		_, _ = g.counter.Decr(context.WithoutCancel(ctx))
	})
	return nested, release, nil
}

// Open implements Guard.
func (g *CounterGuard) Open(ctx context.Context) (int, error) {
	return g.counter.Current(ctx)
}

func once(fn func()) Release {
	var o sync.Once
	return func() { o.Do(fn) }
}
