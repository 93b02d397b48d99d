package file

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

func (m *Module) content(b *binding) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		if err := maxArgs("content", args, 0); err != nil {
			return nil, err
		}
		doc := b.current()
		text, err := m.store.Read(ctx, doc.Path)
		if err != nil {
			return nil, fmt.Errorf("content of %s: %w", doc.Path, err)
		}
		return text, nil
	}
}

func (m *Module) date(b *binding, name string, pick func(domain.Document) time.Time) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		if err := maxArgs(name, args, 1); err != nil {
			return nil, err
		}
		pattern, err := stringArg(name, args, 0, domain.DefaultDateFormat)
		if err != nil {
			return nil, err
		}
		return m.format(pick(b.current()), pattern), nil
	}
}

func (m *Module) folder(b *binding) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		if err := maxArgs("folder", args, 1); err != nil {
			return nil, err
		}
		relative, err := boolArg("folder", args, 0, false)
		if err != nil {
			return nil, err
		}
		parent := b.current().Parent()
		if relative {
			return parent.Path, nil
		}
		return parent.Name, nil
	}
}

func (m *Module) path(b *binding) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		if err := maxArgs("path", args, 1); err != nil {
			return nil, err
		}
		relative, err := boolArg("path", args, 0, false)
		if err != nil {
			return nil, err
		}
		if !m.host.SupportsFilesystemPaths() {
			return nil, fmt.Errorf("path: %w", domain.ErrUnsupportedEnvironment)
		}
		fs, ok := m.store.(ports.FilesystemBacked)
		if !ok {
			return nil, fmt.Errorf("path: %w", domain.ErrInvalidAdapter)
		}
		doc := b.current()
		if relative {
			return doc.Path, nil
		}
		return filepath.Join(fs.BasePath(), filepath.FromSlash(doc.Path)), nil
	}
}

func (m *Module) rename(b *binding) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		title, err := requiredString("rename", args)
		if err != nil {
			return nil, err
		}
		doc := b.current()

		name := title
		if ext := doc.Extension(); ext != "" {
			name += "." + ext
		}
		newPath := name
		if parent := doc.Parent(); !parent.IsRoot() {
			newPath = path.Join(parent.Path, name)
		}

		if err := m.store.Rename(ctx, doc.Path, newPath); err != nil {
			return nil, fmt.Errorf("rename %s: %w", doc.Path, err)
		}

		renamed, err := m.store.Stat(ctx, newPath)
		if err != nil {
			m.logger.Warn("Stat after rename failed", "from", doc.Path, "to", newPath, "error", err)
			renamed = doc
			renamed.Path = newPath
		}
		b.set(renamed)
		m.logger.Debug("Document renamed", "from", doc.Path, "to", newPath)
		return "", nil
	}
}

func (m *Module) selection() domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		if err := maxArgs("selection", args, 0); err != nil {
			return nil, err
		}
		text, err := m.host.ActiveSelection(ctx)
		if err != nil {
			return nil, fmt.Errorf("selection: %w", err)
		}
		return text, nil
	}
}

func (m *Module) tags(b *binding) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		if err := maxArgs("tags", args, 0); err != nil {
			return nil, err
		}
		doc := b.current()
		tags, err := m.store.Tags(ctx, doc.Path)
		if err != nil {
			return nil, fmt.Errorf("tags of %s: %w", doc.Path, err)
		}
		return dedupe(tags), nil
	}
}

func (m *Module) title(b *binding) domain.Operation {
	return func(ctx context.Context, args ...any) (any, error) {
		if err := maxArgs("title", args, 0); err != nil {
			return nil, err
		}
		return b.current().Basename(), nil
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
