package domain_test

import (
	"testing"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Basename(t *testing.T) {
	tests := []struct {
		path     string
		basename string
		ext      string
	}{
		{"note.md", "note", "md"},
		{"folder/note.md", "note", "md"},
		{"a/b/archive.tar.gz", "archive.tar", "gz"},
		{"README", "README", ""},
		{"dir/.hidden", ".hidden", ""},
		{"dir/.config.yaml", ".config", "yaml"},
		{"v1.2.3.md", "v1.2.3", "md"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			doc := domain.Document{Path: tt.path, Kind: domain.KindFile}
			assert.Equal(t, tt.basename, doc.Basename())
			assert.Equal(t, tt.ext, doc.Extension())
		})
	}
}

func TestDocument_Parent(t *testing.T) {
	tests := []struct {
		path       string
		name       string
		folderPath string
	}{
		{"note.md", "", "/"},
		{"projects/note.md", "projects", "projects"},
		{"projects/2024/note.md", "2024", "projects/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			parent := domain.Document{Path: tt.path}.Parent()
			assert.Equal(t, tt.name, parent.Name)
			assert.Equal(t, tt.folderPath, parent.Path)
		})
	}
}

func TestDocument_ParentNameEqualsPathOnlyForTopLevelFolders(t *testing.T) {
	paths := []string{"root.md", "top/a.md", "top/nested/b.md", "x/y/z/c.md"}
	for _, p := range paths {
		parent := domain.Document{Path: p}.Parent()
		grand := domain.Document{Path: parent.Path}.Parent()
		atRoot := !parent.IsRoot() && grand.IsRoot()
		assert.Equal(t, atRoot, parent.Name == parent.Path, p)
	}
}

func TestParseContextMode(t *testing.T) {
	mode, err := domain.ParseContextMode("")
	assert.NoError(t, err)
	assert.Equal(t, domain.ModeTopLevel, mode)

	mode, err = domain.ParseContextMode("user_internal")
	assert.NoError(t, err)
	assert.Equal(t, domain.ModeUserInternal, mode)

	_, err = domain.ParseContextMode("bogus")
	assert.Error(t, err)
}
