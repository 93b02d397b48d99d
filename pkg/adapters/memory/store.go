package memory

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/scribe/internal/frontmatter"
	"github.com/aretw0/scribe/internal/linkpath"
	"github.com/aretw0/scribe/pkg/domain"
)

type file struct {
	text     string
	created  time.Time
	modified time.Time
}

// Store implements ports.DocumentStore in memory.
// Folders are implied by file paths and can also be added explicitly.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	files   map[string]*file
	folders map[string]time.Time
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for creation and modification times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty in-memory vault.
func NewStore(opts ...Option) *Store {
	s := &Store{
		files:   make(map[string]*file),
		folders: make(map[string]time.Time),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromFiles creates a vault holding the given path → text documents.
func NewFromFiles(files map[string]string, opts ...Option) *Store {
	s := NewStore(opts...)
	for p, text := range files {
		s.Put(p, text)
	}
	return s
}

// Put creates or overwrites a document. The creation time of an existing
// document is kept.
func (s *Store) Put(p, text string) {
	p = clean(p)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.files[p]; ok {
		f.text = text
		f.modified = now
		return
	}
	s.files[p] = &file{text: text, created: now, modified: now}
	s.addParentsLocked(p, now)
}

// AddFolder creates an empty folder and its parents.
func (s *Store) AddFolder(p string) {
	p = clean(p)
	if p == "" {
		return
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[p]; !ok {
		s.folders[p] = now
	}
	s.addParentsLocked(p, now)
}

// Read implements ports.DocumentStore.
func (s *Store) Read(ctx context.Context, p string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[clean(p)]
	if !ok {
		return "", fmt.Errorf("%s: %w", p, domain.ErrNotFound)
	}
	return f.text, nil
}

// Stat implements ports.DocumentStore.
func (s *Store) Stat(ctx context.Context, p string) (domain.Document, error) {
	p = clean(p)
	if p == "" {
		return domain.Document{Path: domain.RootPath, Kind: domain.KindFolder}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.files[p]; ok {
		return fileDoc(p, f), nil
	}
	if created, ok := s.folders[p]; ok {
		return domain.Document{Path: p, Kind: domain.KindFolder, Created: created, Modified: created}, nil
	}
	return domain.Document{}, fmt.Errorf("%s: %w", p, domain.ErrNotFound)
}

// ResolveLink implements ports.DocumentStore.
func (s *Store) ResolveLink(ctx context.Context, name, sourcePath string) (domain.Document, bool, error) {
	s.mu.RLock()
	entries := make([]domain.Document, 0, len(s.files)+len(s.folders))
	for p, f := range s.files {
		entries = append(entries, fileDoc(p, f))
	}
	for p, created := range s.folders {
		entries = append(entries, domain.Document{Path: p, Kind: domain.KindFolder, Created: created, Modified: created})
	}
	s.mu.RUnlock()

	doc, found := linkpath.Resolve(name, sourcePath, entries)
	return doc, found, nil
}

// Rename implements ports.DocumentStore.
func (s *Store) Rename(ctx context.Context, from, to string) error {
	from, to = clean(from), clean(to)
	if from == to {
		return nil
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[from]
	if !ok {
		return fmt.Errorf("%s: %w", from, domain.ErrNotFound)
	}
	if _, exists := s.files[to]; exists {
		return fmt.Errorf("cannot rename %s: destination %s already exists", from, to)
	}
	if _, exists := s.folders[to]; exists {
		return fmt.Errorf("cannot rename %s: destination %s is a folder", from, to)
	}
	delete(s.files, from)
	f.modified = now
	s.files[to] = f
	s.addParentsLocked(to, now)
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

// Notes implements ports.Catalog. Notes are listed in path order.
func (s *Store) Notes(ctx context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	paths := make([]string, 0, len(s.files))
	texts := make(map[string]string, len(s.files))
	for p, f := range s.files {
		paths = append(paths, p)
		texts[p] = f.text
	}
	s.mu.RUnlock()
	sort.Strings(paths)

	notes := make([]domain.Note, 0, len(paths))
	for _, p := range paths {
		note := domain.Note{ID: p}
		if meta, _, err := frontmatter.Split(texts[p]); err == nil {
			note.Title, _ = meta["title"].(string)
			note.Aliases = frontmatter.MetaTags(meta["aliases"])
		}
		if tags, err := frontmatter.Tags(texts[p]); err == nil && len(tags) > 0 {
			note.Tags = tags
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (s *Store) addParentsLocked(p string, now time.Time) {
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if _, ok := s.folders[dir]; ok {
			return
		}
		s.folders[dir] = now
	}
}

func fileDoc(p string, f *file) domain.Document {
	return domain.Document{Path: p, Kind: domain.KindFile, Created: f.created, Modified: f.modified}
}

func clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}
