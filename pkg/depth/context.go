package depth

import "context"

type contextKey struct{}

// WithDepth returns a context carrying the number of open inclusions of the current chain.
func WithDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, contextKey{}, depth)
}

// FromContext returns the chain depth carried by ctx, zero for a top-level expansion.
func FromContext(ctx context.Context) int {
	if d, ok := ctx.Value(contextKey{}).(int); ok {
		return d
	}
	return 0
}
