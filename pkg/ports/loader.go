package ports

import (
	"context"

	"github.com/aretw0/scribe/pkg/domain"
)

// Watchable defines an interface for stores that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that receives the path of each changed document.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}

// Catalog defines an interface for stores that can list their notes.
type Catalog interface {
	Notes(ctx context.Context) ([]domain.Note, error)
}
