// Package linkpath normalizes human-readable document links and resolves
// them against a listing of vault entries using first-match rules.
package linkpath

import (
	"path"
	"sort"
	"strings"

	"github.com/aretw0/scribe/pkg/domain"
)

// Normalize turns a link as written in a template into a vault-relative
// slash path: wiki brackets, aliases ("|x"), heading and block references
// ("#x", "^x") are stripped, separators are unified and duplicate, leading
// and trailing slashes removed.
func Normalize(name string) string {
	link := strings.TrimSpace(name)
	link = strings.TrimPrefix(link, "[[")
	link = strings.TrimSuffix(link, "]]")
	if idx := strings.IndexAny(link, "|#^"); idx >= 0 {
		link = link[:idx]
	}
	link = strings.ReplaceAll(link, "\\", "/")
	link = strings.ReplaceAll(link, "\u00a0", " ")
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	link = path.Clean("/" + link)
	return strings.Trim(link, "/")
}

// WithDefaultExtension appends the markdown extension when link has none.
func WithDefaultExtension(link string) string {
	if path.Ext(path.Base(link)) != "" {
		return link
	}
	return link + "." + domain.MarkdownExtension
}

// Resolve returns the first entry matching name.
//
// Order: exact file path, exact file path with the markdown extension,
// exact folder path, then files whose path ends with the link (with or
// without the extension). Among suffix matches, a file in the same folder
// as sourcePath wins, then the shortest path, then lexical order.
func Resolve(name, sourcePath string, entries []domain.Document) (domain.Document, bool) {
	link := Normalize(name)
	if link == "" {
		return domain.Document{}, false
	}
	withExt := WithDefaultExtension(link)

	byPath := make(map[string]domain.Document, len(entries))
	for _, e := range entries {
		byPath[e.Path] = e
	}

	if doc, ok := byPath[link]; ok && !doc.IsFolder() {
		return doc, true
	}
	if doc, ok := byPath[withExt]; ok && !doc.IsFolder() {
		return doc, true
	}
	if doc, ok := byPath[link]; ok && doc.IsFolder() {
		return doc, true
	}

	var candidates []domain.Document
	for _, e := range entries {
		if e.IsFolder() {
			continue
		}
		if hasPathSuffix(e.Path, link) || hasPathSuffix(e.Path, withExt) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return domain.Document{}, false
	}

	sourceDir := ""
	if sourcePath != "" {
		sourceDir = domain.Document{Path: sourcePath}.Parent().Path
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if sourceDir != "" {
			aLocal := a.Parent().Path == sourceDir
			bLocal := b.Parent().Path == sourceDir
			if aLocal != bLocal {
				return aLocal
			}
		}
		if len(a.Path) != len(b.Path) {
			return len(a.Path) < len(b.Path)
		}
		return a.Path < b.Path
	})
	return candidates[0], true
}

func hasPathSuffix(p, suffix string) bool {
	return p == suffix || strings.HasSuffix(p, "/"+suffix)
}
