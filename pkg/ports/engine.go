package ports

import (
	"context"

	"github.com/aretw0/scribe/pkg/domain"
)

// Parser expands raw template text in the context of a document.
// Implementations must be reentrant: template functions invoked during
// Parse may call Parse again.
type Parser interface {
	Parse(ctx context.Context, text string, doc domain.Document, mode domain.ContextMode) (string, error)
}

// Invocation carries what a module needs to bind its table to one expansion.
type Invocation struct {
	Parser   Parser
	Document domain.Document
	Mode     domain.ContextMode
}

// Module generates a named set of template functions for one document.
type Module interface {
	// Name identifies the module, e.g. "file".
	Name() string

	// Generate builds a fresh table bound to inv.Document.
	// ctx is the context of the expansion the table serves.
	Generate(ctx context.Context, inv Invocation) (domain.Table, error)
}

// Expander is the surface the transport adapters (HTTP, MCP, CLI) depend on.
type Expander interface {
	// Expand reads the document at path and expands it.
	Expand(ctx context.Context, path string, mode domain.ContextMode) (string, error)

	// ExpandText expands text as if it were the content of the document at path.
	ExpandText(ctx context.Context, text, path string, mode domain.ContextMode) (string, error)
}
