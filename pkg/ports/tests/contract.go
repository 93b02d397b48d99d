package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture is the vault layout a store must contain before running the contract.
// Keys are vault-relative paths, values are raw document text. The folders
// "notes" and "notes/deep" are implied by the paths.
var Fixture = map[string]string{
	"alpha.md":            "---\ntags: [one, two]\n---\nAlpha body #three and #one again\n",
	"notes/beta.md":       "Beta body\n",
	"notes/deep/gamma.md": "Gamma body\n",
}

// DocumentStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.DocumentStore.
// The store must be seeded with Fixture. The suite renames a document, so it must run last on a given store.
func DocumentStoreContractTest(t *testing.T, store ports.DocumentStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Read_Success", func(t *testing.T) {
		for path, expected := range Fixture {
			content, err := store.Read(ctx, path)
			require.NoError(t, err, "reading %s", path)
			assert.Equal(t, expected, content, "content mismatch for %s", path)
		}
	})

	t.Run("Read_NotFound", func(t *testing.T) {
		_, err := store.Read(ctx, "does/not/exist.md")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "expected ErrNotFound, got %v", err)
	})

	t.Run("Stat", func(t *testing.T) {
		doc, err := store.Stat(ctx, "notes/beta.md")
		require.NoError(t, err)
		assert.Equal(t, "notes/beta.md", doc.Path)
		assert.Equal(t, domain.KindFile, doc.Kind)
		assert.False(t, doc.Modified.IsZero(), "modified time must be set")
		assert.False(t, doc.Created.IsZero(), "created time must be set")

		folder, err := store.Stat(ctx, "notes")
		require.NoError(t, err)
		assert.Equal(t, domain.KindFolder, folder.Kind)

		_, err = store.Stat(ctx, "missing.md")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "expected ErrNotFound, got %v", err)
	})

	t.Run("ResolveLink", func(t *testing.T) {
		cases := map[string]string{
			"alpha":               "alpha.md",
			"alpha.md":            "alpha.md",
			"beta":                "notes/beta.md",
			"deep/gamma":          "notes/deep/gamma.md",
			"notes/deep/gamma.md": "notes/deep/gamma.md",
		}
		for name, want := range cases {
			doc, found, err := store.ResolveLink(ctx, name, "")
			require.NoError(t, err, name)
			require.True(t, found, "expected %q to resolve", name)
			assert.Equal(t, want, doc.Path, name)
			assert.Equal(t, domain.KindFile, doc.Kind, name)
		}

		folder, found, err := store.ResolveLink(ctx, "notes", "")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, domain.KindFolder, folder.Kind)

		_, found, err = store.ResolveLink(ctx, "missing-doc", "")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Tags", func(t *testing.T) {
		tags, err := store.Tags(ctx, "alpha.md")
		require.NoError(t, err)
		assert.Equal(t, []string{"#one", "#two", "#three"}, tags)

		tags, err = store.Tags(ctx, "notes/beta.md")
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("Rename", func(t *testing.T) {
		require.NoError(t, store.Rename(ctx, "notes/beta.md", "notes/renamed.md"))

		content, err := store.Read(ctx, "notes/renamed.md")
		require.NoError(t, err)
		assert.Equal(t, Fixture["notes/beta.md"], content)

		_, err = store.Read(ctx, "notes/beta.md")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "old path must be gone, got %v", err)
	})
}
