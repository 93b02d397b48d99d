package file

import (
	"context"
	"fmt"

	"github.com/aretw0/scribe/pkg/depth"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

func (m *Module) include(inv ports.Invocation, b *binding) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		name, err := requiredString(IncludeFunc, args)
		if err != nil {
			return nil, err
		}
		source := b.current()

		// 1. Resolve
		target, found, err := m.store.ResolveLink(ctx, name, "")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve include %q: %w", name, err)
		}
		if !found {
			return nil, fmt.Errorf("include %q from %s: %w", name, source.Path, domain.ErrTargetNotFound)
		}
		if target.IsFolder() {
			return nil, fmt.Errorf("include %q from %s: %w", name, source.Path, domain.ErrTargetIsContainer)
		}

		event := &domain.InclusionEvent{
			Source: source.Path,
			Target: target.Path,
			Mode:   inv.Mode,
		}

		// 2. Admit
		nested, release, err := m.guard.Enter(ctx)
		if err != nil {
			event.Type = domain.EventInclusionRejected
			event.Depth = depth.FromContext(ctx) + 1
			event.Err = err
			m.logger.Warn("Inclusion rejected",
				"source", source.Path, "target", target.Path, "depth", event.Depth, "error", err)
			m.emit(ctx, m.hooks.OnInclusionRejected, event)
			return nil, err
		}
		defer release()

		event.Type = domain.EventInclusionEnter
		event.Depth = depth.FromContext(nested)
		m.logger.Debug("Inclusion admitted", "source", source.Path, "target", target.Path, "depth", event.Depth)
		m.emit(nested, m.hooks.OnInclusionEnter, event)

		// 3. Expand
		out, err := m.expand(nested, inv, target)

		leave := *event
		leave.Type = domain.EventInclusionLeave
		leave.Err = err
		m.emit(nested, m.hooks.OnInclusionLeave, &leave)

		if err != nil {
			return nil, fmt.Errorf("include %q: %w", name, err)
		}
		return out, nil
	}
}

func (m *Module) expand(ctx context.Context, inv ports.Invocation, target domain.Document) (string, error) {
	text, err := m.store.Read(ctx, target.Path)
	if err != nil {
		return "", err
	}
	if inv.Parser == nil {
		return "", fmt.Errorf("no parser bound to the invocation")
	}
	return inv.Parser.Parse(ctx, text, target, inv.Mode)
}

func (m *Module) emit(ctx context.Context, hook func(context.Context, *domain.InclusionEvent), e *domain.InclusionEvent) {
	if hook == nil {
		return
	}
	e.Timestamp = m.now()
	hook(ctx, e)
}
