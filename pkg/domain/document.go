package domain

import (
	"path"
	"strings"
	"time"
)

// EntryKind distinguishes single documents from folders in the store.
type EntryKind string

const (
	KindFile   EntryKind = "file"
	KindFolder EntryKind = "folder"
)

// RootPath is the path reported for the vault root folder.
const RootPath = "/"

// Document is a single entry in the document store, identified by its
// vault-relative slash path. Folders are represented with KindFolder.
type Document struct {
	Path     string    `json:"path"`
	Kind     EntryKind `json:"kind"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// Folder identifies the parent folder of a document.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// IsRoot reports whether f is the vault root.
func (f Folder) IsRoot() bool {
	return f.Path == RootPath
}

// Name returns the base name of the document, extension included.
func (d Document) Name() string {
	if d.Path == "" || d.Path == RootPath {
		return ""
	}
	return path.Base(d.Path)
}

// Extension returns the text after the last dot of the name.
// Names without a dot, or whose only dot is the leading one, have no extension.
func (d Document) Extension() string {
	name := d.Name()
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return name[idx+1:]
}

// Basename returns the name with its extension stripped.
func (d Document) Basename() string {
	name := d.Name()
	ext := d.Extension()
	if ext == "" {
		return name
	}
	return strings.TrimSuffix(name, "."+ext)
}

// Parent returns the folder containing the document.
func (d Document) Parent() Folder {
	dir := path.Dir(d.Path)
	if dir == "." || dir == "/" || dir == "" {
		return Folder{Name: "", Path: RootPath}
	}
	return Folder{Name: path.Base(dir), Path: dir}
}

// IsFolder reports whether the entry is a folder.
func (d Document) IsFolder() bool {
	return d.Kind == KindFolder
}

// Note summarises one vault document for listings.
type Note struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Link is one literal include found in a document.
type Link struct {
	Source string `json:"source"`
	// Target is the resolved document path, or the raw link text when
	// Resolved is false.
	Target   string `json:"target"`
	Resolved bool   `json:"resolved"`
}
