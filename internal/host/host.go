// Package host provides ports.Host implementations for environments
// without an interactive editor, such as the CLI and the servers.
package host

import (
	"context"
	"sync"

	"github.com/aretw0/scribe/pkg/domain"
)

// Static is a Host whose capabilities are fixed at construction.
// The selection can be replaced at runtime, e.g. per request.
type Static struct {
	filesystemPaths bool

	mu        sync.RWMutex
	selection *string
}

// Option configures a Static host.
type Option func(*Static)

// WithFilesystemPaths sets whether the host reveals on-disk paths.
func WithFilesystemPaths(enabled bool) Option {
	return func(s *Static) {
		s.filesystemPaths = enabled
	}
}

// WithSelection marks an editing surface as focused with the given selection.
func WithSelection(text string) Option {
	return func(s *Static) {
		s.selection = &text
	}
}

// New creates a host that supports filesystem paths and has no active view.
func New(opts ...Option) *Static {
	s := &Static{filesystemPaths: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SupportsFilesystemPaths implements ports.Host.
func (s *Static) SupportsFilesystemPaths() bool {
	return s.filesystemPaths
}

// ActiveSelection implements ports.Host.
func (s *Static) ActiveSelection(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection == nil {
		return "", domain.ErrNoActiveView
	}
	return *s.selection, nil
}

// Focus sets the active selection.
func (s *Static) Focus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = &text
}

// Blur removes the active view.
func (s *Static) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}
