// Package parser expands template text written with "<% %>" directives.
//
// The grammar is Go's text/template with custom delimiters. Functions come
// from registered modules: on every Parse each module generates a fresh
// table bound to the document being expanded, so nested expansions (as
// issued by include) never share bindings with their caller.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"text/template"

	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

const (
	LeftDelim  = "<%"
	RightDelim = "%>"
)

// Parser implements ports.Parser. It is reentrant and safe for concurrent use.
type Parser struct {
	mu      sync.RWMutex
	modules []ports.Module
	logger  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithModules registers modules at construction. Duplicate names panic.
func WithModules(modules ...ports.Module) Option {
	return func(p *Parser) {
		for _, m := range modules {
			if err := p.Register(m); err != nil {
				panic(err)
			}
		}
	}
}

// WithLogger sets a structured logger for the parser.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register adds a module. Module names must be unique.
func (p *Parser) Register(m ports.Module) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.modules {
		if existing.Name() == m.Name() {
			return fmt.Errorf("module %q already registered", m.Name())
		}
	}
	p.modules = append(p.modules, m)
	return nil
}

// Modules returns the registered module names in registration order.
func (p *Parser) Modules() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, len(p.modules))
	for i, m := range p.modules {
		names[i] = m.Name()
	}
	return names
}

// Parse implements ports.Parser.
func (p *Parser) Parse(ctx context.Context, text string, doc domain.Document, mode domain.ContextMode) (string, error) {
	name := doc.Path
	if name == "" {
		name = "inline"
	}

	funcs, err := p.funcMap(ctx, ports.Invocation{Parser: p, Document: doc, Mode: mode})
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).
		Delims(LeftDelim, RightDelim).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", name, err)
	}

	data := map[string]any{
		"mode": mode.String(),
		"path": doc.Path,
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", name, err)
	}
	p.logger.Debug("Expanded document", "path", doc.Path, "mode", mode, "bytes", out.Len())
	return out.String(), nil
}

// funcMap generates every module's table for inv and flattens them into a
// template.FuncMap. Operations close over ctx so that the depth carried by
// the context reaches nested includes.
func (p *Parser) funcMap(ctx context.Context, inv ports.Invocation) (template.FuncMap, error) {
	p.mu.RLock()
	modules := append([]ports.Module(nil), p.modules...)
	p.mu.RUnlock()

	funcs := builtins()
	owner := make(map[string]string, len(funcs))
	for name := range funcs {
		owner[name] = "builtin"
	}

	for _, m := range modules {
		table, err := m.Generate(ctx, inv)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name(), err)
		}
		for _, name := range table.Names() {
			if prev, taken := owner[name]; taken {
				return nil, fmt.Errorf("function %q of module %s conflicts with %s", name, m.Name(), prev)
			}
			owner[name] = m.Name()
			value, _ := table.Lookup(name)
			funcs[name] = bind(ctx, value)
		}
	}
	return funcs, nil
}

func bind(ctx context.Context, v domain.Value) any {
	if v.Kind() == domain.KindLiteral {
		lit := v.Literal()
		return func() any { return lit }
	}
	return func(args ...any) (any, error) {
		return v.Call(ctx, args...)
	}
}
