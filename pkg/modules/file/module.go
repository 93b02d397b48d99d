package file

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/scribe/internal/dateformat"
	"github.com/aretw0/scribe/internal/host"
	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/depth"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

// Name is the module name.
const Name = "file"

// IncludeFunc is the template name of the include operation.
const IncludeFunc = "include"

// Module generates the document accessor set and the include operation.
type Module struct {
	store  ports.DocumentStore
	host   ports.Host
	guard  depth.Guard
	format dateformat.Formatter
	hooks  domain.InclusionHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Module.
type Option func(*Module)

// WithHost sets the host capabilities. Defaults to a host with filesystem
// paths and no active view.
func WithHost(h ports.Host) Option {
	return func(m *Module) {
		m.host = h
	}
}

// WithGuard sets the depth guard. Defaults to a chain-scoped guard.
func WithGuard(g depth.Guard) Option {
	return func(m *Module) {
		m.guard = g
	}
}

// WithDateFormatter sets the formatter used by the date accessors.
func WithDateFormatter(f dateformat.Formatter) Option {
	return func(m *Module) {
		m.format = f
	}
}

// WithHooks registers inclusion observability hooks.
func WithHooks(hooks domain.InclusionHooks) Option {
	return func(m *Module) {
		m.hooks = hooks
	}
}

// WithLogger sets a structured logger for the module.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Module) {
		m.logger = logger
	}
}

// New creates a file module reading from store.
func New(store ports.DocumentStore, opts ...Option) *Module {
	m := &Module{
		store:  store,
		host:   host.New(),
		guard:  depth.NewChainGuard(domain.DepthLimit),
		format: dateformat.Format,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name implements ports.Module.
func (m *Module) Name() string {
	return Name
}

// Guard returns the depth guard shared by every table the module generates.
func (m *Module) Guard() depth.Guard {
	return m.guard
}

// Generate implements ports.Module. The returned table is bound to
// inv.Document; rename updates the binding for later calls on the same table.
func (m *Module) Generate(ctx context.Context, inv ports.Invocation) (domain.Table, error) {
	b := &binding{doc: inv.Document}

	t := domain.Table{}
	t.Set("content", domain.Op(m.content(b)))
	t.Set("creation_date", domain.Op(m.date(b, "creation_date", func(d domain.Document) time.Time { return d.Created })))
	// Literal so that a bare cursor position never renders as empty output.
	t.Set("cursor", domain.Literal(domain.CursorMarker))
	t.Set("folder", domain.Op(m.folder(b)))
	t.Set(IncludeFunc, domain.Op(m.include(inv, b)))
	t.Set("last_modified_date", domain.Op(m.date(b, "last_modified_date", func(d domain.Document) time.Time { return d.Modified })))
	t.Set("path", domain.Op(m.path(b)))
	t.Set("rename", domain.Op(m.rename(b)))
	t.Set("selection", domain.Op(m.selection()))
	t.Set("tags", domain.Op(m.tags(b)))
	t.Set("title", domain.Op(m.title(b)))
	return t, nil
}

// binding is the document a table is bound to.
type binding struct {
	mu  sync.RWMutex
	doc domain.Document
}

func (b *binding) current() domain.Document {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc
}

func (b *binding) set(doc domain.Document) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc = doc
}
