package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/domain"
	contract "github.com/aretw0/scribe/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewFromFiles(contract.Fixture)
	contract.DocumentStoreContractTest(t, store)
}

func TestMemoryStore_PutKeepsCreationTime(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	store.Put("a.md", "v1")
	clock = clock.Add(time.Hour)
	store.Put("a.md", "v2")

	doc, err := store.Stat(ctx, "a.md")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), doc.Created)
	assert.Equal(t, time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), doc.Modified)

	text, err := store.Read(ctx, "a.md")
	require.NoError(t, err)
	assert.Equal(t, "v2", text)
}

func TestMemoryStore_Folders(t *testing.T) {
	store := memory.NewStore()
	store.AddFolder("empty/inner")
	ctx := context.Background()

	for _, p := range []string{"empty", "empty/inner", "/"} {
		doc, err := store.Stat(ctx, p)
		require.NoError(t, err, p)
		assert.True(t, doc.IsFolder(), p)
	}

	doc, found, err := store.ResolveLink(ctx, "empty/inner", "")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, doc.IsFolder())
}

func TestMemoryStore_RenameConflicts(t *testing.T) {
	store := memory.NewFromFiles(map[string]string{"a.md": "a", "b.md": "b"})
	ctx := context.Background()

	err := store.Rename(ctx, "a.md", "b.md")
	require.Error(t, err)

	err = store.Rename(ctx, "missing.md", "c.md")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, store.Rename(ctx, "a.md", "sub/a.md"))
	doc, err := store.Stat(ctx, "sub")
	require.NoError(t, err)
	assert.True(t, doc.IsFolder())

	notes, err := store.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "b.md", notes[0].ID)
	assert.Equal(t, "sub/a.md", notes[1].ID)
}

func TestMemoryStore_Notes(t *testing.T) {
	store := memory.NewFromFiles(map[string]string{
		"n.md": "---\ntitle: Note\naliases: [first, second]\ntags: x\n---\nbody #y",
	})
	notes, err := store.Notes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.Note{
		ID:      "n.md",
		Title:   "Note",
		Aliases: []string{"first", "second"},
		Tags:    []string{"#x", "#y"},
	}, notes[0])
}
