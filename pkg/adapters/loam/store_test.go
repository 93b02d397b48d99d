package loam_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/internal/testutils"
	loamAdapter "github.com/aretw0/scribe/pkg/adapters/loam"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
	contract "github.com/aretw0/scribe/pkg/ports/tests"
)

func newStore(t *testing.T, files map[string]string) (string, *loamAdapter.Store) {
	t.Helper()
	dir, repo := testutils.SetupTestVault(t, files)
	return dir, loamAdapter.New(dir, loam.NewTypedRepository[loamAdapter.NoteMetadata](repo))
}

func TestStore_Contract(t *testing.T) {
	_, store := newStore(t, contract.Fixture)
	contract.DocumentStoreContractTest(t, store)
}

func TestStore_Open(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"a.md": "A"})

	store, err := loamAdapter.Open(dir)
	require.NoError(t, err)

	var _ ports.FilesystemBacked = store
	var _ ports.Watchable = store

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, store.BasePath())

	text, err := store.Read(context.Background(), "a.md")
	require.NoError(t, err)
	assert.Equal(t, "A", text)
}

func TestStore_IgnoresHiddenEntries(t *testing.T) {
	_, store := newStore(t, map[string]string{
		".hidden/secret.md": "secret",
		"visible.md":        "visible",
	})

	_, found, err := store.ResolveLink(context.Background(), "secret", "")
	require.NoError(t, err)
	assert.False(t, found)

	doc, found, err := store.ResolveLink(context.Background(), "visible", "")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "visible.md", doc.Path)
}

func TestStore_RejectsPathsOutsideVault(t *testing.T) {
	_, store := newStore(t, map[string]string{"a.md": "A"})

	_, err := store.Read(context.Background(), "../outside.md")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_RenameCreatesFoldersAndRefusesOverwrite(t *testing.T) {
	dir, store := newStore(t, map[string]string{"a.md": "A", "b.md": "B"})
	ctx := context.Background()

	require.Error(t, store.Rename(ctx, "a.md", "b.md"))

	require.NoError(t, store.Rename(ctx, "a.md", "archive/2024/a.md"))
	data, err := os.ReadFile(filepath.Join(dir, "archive", "2024", "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "A", string(data))

	err = store.Rename(ctx, "a.md", "c.md")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_StatTimes(t *testing.T) {
	dir, store := newStore(t, map[string]string{"a.md": "A"})
	stamp := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "a.md"), stamp, stamp))

	doc, err := store.Stat(context.Background(), "a.md")
	require.NoError(t, err)
	assert.True(t, doc.Modified.Equal(stamp), "modified %v", doc.Modified)
	assert.False(t, doc.Created.IsZero())

	root, err := store.Stat(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.RootPath, root.Path)
	assert.True(t, root.IsFolder())
}

func TestNoteMetadata_TagList(t *testing.T) {
	meta := loamAdapter.NoteMetadata{Tags: []any{"one", "#two"}, Tag: "three, four"}
	assert.Equal(t, []string{"#one", "#two", "#three", "#four"}, meta.TagList())
}
