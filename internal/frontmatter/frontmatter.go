// Package frontmatter splits markdown documents into their YAML header and
// body, and extracts the tags a document declares.
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Split separates a leading YAML frontmatter block from the body.
// Text without frontmatter yields a nil map and the text unchanged.
func Split(text string) (map[string]any, string, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(normalized, delimiter+"\n") {
		return nil, text, nil
	}

	rest := normalized[len(delimiter)+1:]
	var header, body string
	found := false
	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		trimmed := strings.TrimRight(line, "\n")
		if trimmed == delimiter || trimmed == "..." {
			header = rest[:offset]
			body = rest[offset+len(line):]
			found = true
			break
		}
		offset += len(line)
	}
	if !found {
		// An unterminated block is body text, not metadata.
		return nil, text, nil
	}

	meta := make(map[string]any)
	if strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
			return nil, body, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}
	return meta, body, nil
}

var inlineTag = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_/\-]+)`)

var numericTag = regexp.MustCompile(`^[0-9]+$`)

// Tags returns the tags of a raw document: frontmatter "tags"/"tag" first,
// then inline #tags from the body outside code spans and code blocks. Every tag is
// returned with a leading '#', deduplicated, in first-seen order.
func Tags(text string) ([]string, error) {
	meta, body, err := Split(text)
	if err != nil {
		return nil, err
	}

	var tags []string
	seen := make(map[string]bool)
	add := func(raw string) {
		tag := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
		if tag == "" || numericTag.MatchString(tag) {
			return
		}
		tag = "#" + tag
		if seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, key := range []string{"tags", "tag"} {
		for _, tag := range MetaTags(meta[key]) {
			add(tag)
		}
	}

	bodyTags([]byte(body), add)
	return tags, nil
}

// bodyTags feeds the inline #tags of a markdown body to add. Only text
// nodes are scanned, so code spans, code blocks and raw HTML never yield
// tags. Adjacent text nodes are joined before matching because the parser
// splits text at literal delimiters such as '_'.
func bodyTags(src []byte, add func(string)) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var run []byte
	last := -1
	flush := func() {
		for _, m := range inlineTag.FindAllSubmatch(run, -1) {
			add(string(m[1]))
		}
		run = run[:0]
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			flush()
			last = -1
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan, *ast.RawHTML:
			// Text right after inline code is not at a word boundary.
			flush()
			run = append(run, '`')
			last = -2
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			seg := n.Segment
			switch {
			case last == -2:
			case seg.Start != last:
				flush()
				run = append(run, ' ')
			}
			run = append(run, seg.Value(src)...)
			last = seg.Stop
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock {
			flush()
			last = -1
		}
		return ast.WalkContinue, nil
	})
	flush()
}

// MetaTags normalizes a frontmatter tag value, which may be a single
// comma/space separated string or a list.
func MetaTags(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}
