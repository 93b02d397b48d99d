package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/natefinch/atomic"

	"github.com/aretw0/scribe/internal/frontmatter"
	"github.com/aretw0/scribe/internal/fsmeta"
	"github.com/aretw0/scribe/internal/linkpath"
	"github.com/aretw0/scribe/pkg/domain"
)

// Store adapts a loam vault on disk to ports.DocumentStore.
//
// Raw text, timestamps and renames go straight to the filesystem so that
// documents are seen byte for byte, frontmatter included. Loam provides
// vault initialisation, the typed note listing and change notifications.
type Store struct {
	root string
	Repo *loam.TypedRepository[NoteMetadata]
}

// DefaultOptions are the loam options used by Open when none are given.
// The vault is opened read-only; renames do not go through loam.
func DefaultOptions() []loam.Option {
	return []loam.Option{
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	}
}

// Open initialises loam on root and returns a store over it.
func Open(root string, opts ...loam.Option) (*Store, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid vault path: %w", err)
	}
	if len(opts) == 0 {
		opts = DefaultOptions()
	}
	repo, err := loam.Init(absPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(absPath, loam.NewTypedRepository[NoteMetadata](repo)), nil
}

// New creates a store over an already initialised repository rooted at root.
func New(root string, repo *loam.TypedRepository[NoteMetadata]) *Store {
	return &Store{root: root, Repo: repo}
}

// BasePath implements ports.FilesystemBacked.
func (s *Store) BasePath() string {
	return s.root
}

// Read implements ports.DocumentStore.
func (s *Store) Read(ctx context.Context, p string) (string, error) {
	abs, err := s.abs(p)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", translate(p, err)
	}
	return string(data), nil
}

// Stat implements ports.DocumentStore.
func (s *Store) Stat(ctx context.Context, p string) (domain.Document, error) {
	abs, err := s.abs(p)
	if err != nil {
		return domain.Document{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return domain.Document{}, translate(p, err)
	}
	rel := clean(p)
	if rel == "" {
		rel = domain.RootPath
	}
	return s.document(rel, abs, info), nil
}

// ResolveLink implements ports.DocumentStore.
func (s *Store) ResolveLink(ctx context.Context, name, sourcePath string) (domain.Document, bool, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return domain.Document{}, false, err
	}
	doc, found := linkpath.Resolve(name, sourcePath, entries)
	return doc, found, nil
}

// Rename implements ports.DocumentStore. The destination must not exist;
// missing parent folders are created.
func (s *Store) Rename(ctx context.Context, from, to string) error {
	src, err := s.abs(from)
	if err != nil {
		return err
	}
	dst, err := s.abs(to)
	if err != nil {
		return err
	}
	if src == dst {
		return nil
	}

	if _, err := os.Stat(src); err != nil {
		return translate(from, err)
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("cannot rename %s: destination %s already exists", from, to)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", to, err)
	}
	if err := atomic.ReplaceFile(src, dst); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", from, to, err)
	}
	return nil
}

// Tags implements ports.DocumentStore.
func (s *Store) Tags(ctx context.Context, p string) ([]string, error) {
	text, err := s.Read(ctx, p)
	if err != nil {
		return nil, err
	}
	return frontmatter.Tags(text)
}

// Notes implements ports.Catalog with the frontmatter decoded by loam.
func (s *Store) Notes(ctx context.Context) ([]domain.Note, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	notes := make([]domain.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, domain.Note{
			ID:      filepath.ToSlash(doc.ID),
			Title:   doc.Data.Title,
			Aliases: doc.Data.Aliases,
			Tags:    doc.Data.TagList(),
		})
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

// Watch implements ports.Watchable. It emits the ID of every changed note.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- filepath.ToSlash(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

// entries walks the vault, skipping hidden files and folders.
func (s *Store) entries(ctx context.Context) ([]domain.Document, error) {
	var entries []domain.Document
	err := filepath.WalkDir(s.root, func(abs string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if abs == s.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, abs)
		if err != nil {
			return err
		}
		entries = append(entries, s.document(filepath.ToSlash(rel), abs, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault: %w", err)
	}
	return entries, nil
}

func (s *Store) document(rel, abs string, info fs.FileInfo) domain.Document {
	kind := domain.KindFile
	if info.IsDir() {
		kind = domain.KindFolder
	}
	return domain.Document{
		Path:     rel,
		Kind:     kind,
		Created:  fsmeta.BirthTime(abs, info),
		Modified: info.ModTime(),
	}
}

// abs maps a vault-relative path to the filesystem, refusing paths that
// leave the vault.
func (s *Store) abs(p string) (string, error) {
	rel := clean(p)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %q is outside the vault", p)
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

func clean(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

func translate(p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", p, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", p, err)
}
