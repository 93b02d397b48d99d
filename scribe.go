package scribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"

	"github.com/aretw0/scribe/internal/dateformat"
	"github.com/aretw0/scribe/internal/host"
	"github.com/aretw0/scribe/internal/logging"
	loamAdapter "github.com/aretw0/scribe/pkg/adapters/loam"
	"github.com/aretw0/scribe/pkg/depth"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/modules/file"
	"github.com/aretw0/scribe/pkg/observability"
	"github.com/aretw0/scribe/pkg/parser"
	"github.com/aretw0/scribe/pkg/ports"
)

// Engine is the high-level entry point for the Scribe library.
// It wires a document store, the file module and the parser, and expands
// documents on request.
type Engine struct {
	store    ports.DocumentStore
	host     ports.Host
	guard    depth.Guard
	format   dateformat.Formatter
	hooks    domain.InclusionHooks
	metrics  *observability.Metrics
	modules  []ports.Module
	loamOpts []loam.Option
	logger   *slog.Logger

	parser *parser.Parser
	file   *file.Module
	Name   string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a custom DocumentStore, bypassing the default Loam initialization.
func WithStore(s ports.DocumentStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLoamOptions sets the options used to open the default Loam vault.
func WithLoamOptions(opts ...loam.Option) Option {
	return func(e *Engine) {
		e.loamOpts = opts
	}
}

// WithHost sets the host capabilities exposed to templates.
func WithHost(h ports.Host) Option {
	return func(e *Engine) {
		e.host = h
	}
}

// WithDepthGuard sets how nested inclusions are counted.
// The default counts per inclusion chain.
func WithDepthGuard(g depth.Guard) Option {
	return func(e *Engine) {
		e.guard = g
	}
}

// WithDateFormatter sets the formatter used by the date accessors.
func WithDateFormatter(f dateformat.Formatter) Option {
	return func(e *Engine) {
		e.format = f
	}
}

// WithInclusionHooks registers observability hooks for include calls.
func WithInclusionHooks(hooks domain.InclusionHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMetrics records expansions and inclusions into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithModules registers additional template modules next to "file".
func WithModules(modules ...ports.Module) Option {
	return func(e *Engine) {
		e.modules = append(e.modules, modules...)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Scribe Engine.
// By default, it opens a Loam vault at the given path.
// If WithStore option is provided, vaultPath can be empty and Loam is skipped.
func New(vaultPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.store == nil {
		if vaultPath == "" {
			return nil, fmt.Errorf("vaultPath is required when no custom store is provided")
		}
		store, err := loamAdapter.Open(vaultPath, eng.loamOpts...)
		if err != nil {
			return nil, err
		}
		eng.store = store
		eng.Name = filepath.Base(store.BasePath())
	} else if vaultPath != "" {
		eng.Name = filepath.Base(vaultPath)
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("vault", eng.Name)
	}

	if eng.host == nil {
		eng.host = host.New()
	}
	if eng.guard == nil {
		eng.guard = depth.NewChainGuard(domain.DepthLimit)
	}
	if eng.format == nil {
		eng.format = dateformat.Format
	}

	hooks := eng.hooks
	if eng.metrics != nil {
		hooks = hooks.Merge(eng.metrics.Hooks())
	}

	eng.file = file.New(eng.store,
		file.WithHost(eng.host),
		file.WithGuard(eng.guard),
		file.WithDateFormatter(eng.format),
		file.WithHooks(hooks),
		file.WithLogger(eng.logger),
	)

	eng.parser = parser.New(parser.WithLogger(eng.logger))
	for _, m := range append([]ports.Module{eng.file}, eng.modules...) {
		if err := eng.parser.Register(m); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

// Expand reads the document at path and expands it. When path does not
// name an existing document it is resolved as a link, so "daily" finds
// "journal/daily.md".
func (e *Engine) Expand(ctx context.Context, path string, mode domain.ContextMode) (string, error) {
	doc, err := e.Locate(ctx, path)
	if err != nil {
		return "", err
	}
	text, err := e.store.Read(ctx, doc.Path)
	if err != nil {
		return "", err
	}
	return e.expand(ctx, text, doc, mode)
}

// ExpandText expands text as if it were the content of the document at
// path. An empty path expands text without a bound document; accessors then
// see an empty document at the vault root.
func (e *Engine) ExpandText(ctx context.Context, text, path string, mode domain.ContextMode) (string, error) {
	var doc domain.Document
	if path != "" {
		located, err := e.Locate(ctx, path)
		if err != nil {
			return "", err
		}
		doc = located
	}
	return e.expand(ctx, text, doc, mode)
}

// Locate returns the document at path, falling back to link resolution.
func (e *Engine) Locate(ctx context.Context, path string) (domain.Document, error) {
	doc, err := e.store.Stat(ctx, path)
	if errors.Is(err, domain.ErrNotFound) {
		resolved, found, rerr := e.store.ResolveLink(ctx, path, "")
		if rerr != nil {
			return domain.Document{}, rerr
		}
		if !found {
			return domain.Document{}, err
		}
		doc, err = resolved, nil
	}
	if err != nil {
		return domain.Document{}, err
	}
	if doc.IsFolder() {
		return domain.Document{}, fmt.Errorf("%s: %w", doc.Path, domain.ErrTargetIsContainer)
	}
	return doc, nil
}

func (e *Engine) expand(ctx context.Context, text string, doc domain.Document, mode domain.ContextMode) (string, error) {
	start := time.Now()
	out, err := e.parser.Parse(ctx, text, doc, mode)
	took := time.Since(start)

	if e.metrics != nil {
		e.metrics.ObserveExpansion(mode, took, err)
	}
	if err != nil {
		e.logger.Error("Expansion failed", "path", doc.Path, "mode", mode, "error", err)
		return "", err
	}
	e.logger.Info("Expansion finished", "path", doc.Path, "mode", mode, "duration", took)
	return out, nil
}

// OpenInclusions reports the inclusions currently open according to the depth guard.
func (e *Engine) OpenInclusions(ctx context.Context) (int, error) {
	return e.guard.Open(ctx)
}

// Notes lists the vault's notes when the store supports it.
func (e *Engine) Notes(ctx context.Context) ([]domain.Note, error) {
	if c, ok := e.store.(ports.Catalog); ok {
		return c.Notes(ctx)
	}
	return nil, fmt.Errorf("current store does not support listing")
}

// IncludeGraph lists the literal include calls of every note in the vault.
// Includes whose argument is computed at expansion time are not reported.
func (e *Engine) IncludeGraph(ctx context.Context) ([]domain.Note, []domain.Link, error) {
	notes, err := e.Notes(ctx)
	if err != nil {
		return nil, nil, err
	}

	var links []domain.Link
	for i, note := range notes {
		doc, err := e.Locate(ctx, note.ID)
		if err != nil {
			return nil, nil, err
		}
		notes[i].ID = doc.Path

		text, err := e.store.Read(ctx, doc.Path)
		if err != nil {
			return nil, nil, err
		}
		targets, err := parser.LiteralCalls(text, file.IncludeFunc)
		if err != nil {
			e.logger.Warn("Skipping unparsable document", "path", doc.Path, "error", err)
			continue
		}
		for _, name := range targets {
			link := domain.Link{Source: doc.Path, Target: name}
			target, found, err := e.store.ResolveLink(ctx, name, "")
			if err != nil {
				return nil, nil, err
			}
			if found && !target.IsFolder() {
				link.Target, link.Resolved = target.Path, true
			}
			links = append(links, link)
		}
	}
	return notes, links, nil
}

// Watch returns a channel that signals when the underlying vault changes.
// Returns error if the store does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.store.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current store does not support watching")
}

// Store returns the underlying DocumentStore used by the engine.
func (e *Engine) Store() ports.DocumentStore {
	return e.store
}

// Parser returns the engine's parser.
func (e *Engine) Parser() ports.Parser {
	return e.parser
}
