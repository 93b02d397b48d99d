package ports

import "context"

// DepthCounter is a shared recursion-depth counter.
// Incr and Decr must be atomic with respect to each other and return the
// value after the change, so that each caller observes its own admission.
type DepthCounter interface {
	Incr(ctx context.Context) (int, error)
	Decr(ctx context.Context) (int, error)
	Current(ctx context.Context) (int, error)
}
