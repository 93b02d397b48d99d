package ports

import (
	"context"

	"github.com/aretw0/scribe/pkg/domain"
)

// DocumentStore defines how the engine reads and manipulates vault documents.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type DocumentStore interface {
	// Read returns the full raw text of the document at path.
	// Returns an error wrapping domain.ErrNotFound if it cannot be read.
	Read(ctx context.Context, path string) (string, error)

	// Stat returns the entry at path, file or folder.
	// Returns an error wrapping domain.ErrNotFound if nothing exists there.
	Stat(ctx context.Context, path string) (domain.Document, error)

	// ResolveLink resolves a human-readable link path to the first matching entry.
	// sourcePath is the disambiguation context; it may be empty.
	// found is false when nothing matches.
	ResolveLink(ctx context.Context, name, sourcePath string) (doc domain.Document, found bool, err error)

	// Rename moves the document at path to newPath.
	Rename(ctx context.Context, path, newPath string) error

	// Tags returns the tags declared by the document, deduplicated.
	Tags(ctx context.Context, path string) ([]string, error)
}

// FilesystemBacked is implemented by stores whose documents live on a local filesystem.
type FilesystemBacked interface {
	// BasePath returns the absolute on-disk path of the vault root.
	BasePath() string
}
