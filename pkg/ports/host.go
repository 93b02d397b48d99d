package ports

import "context"

// Host describes the capabilities of the environment running the engine.
type Host interface {
	// SupportsFilesystemPaths reports whether documents have on-disk paths
	// the host is allowed to reveal.
	SupportsFilesystemPaths() bool

	// ActiveSelection returns the text highlighted in the focused editing surface.
	// Returns domain.ErrNoActiveView when no surface is focused.
	ActiveSelection(ctx context.Context) (string, error)
}
