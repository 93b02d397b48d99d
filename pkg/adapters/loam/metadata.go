package loam

import (
	"strings"

	"github.com/aretw0/scribe/internal/frontmatter"
)

// NoteMetadata is the frontmatter of a vault note as decoded by loam.
// Tags may be written as a list or as a comma/space separated string.
type NoteMetadata struct {
	Title   string   `json:"title" mapstructure:"title"`
	Aliases []string `json:"aliases" mapstructure:"aliases"`
	Tags    any      `json:"tags" mapstructure:"tags"`
	Tag     any      `json:"tag" mapstructure:"tag"`
}

// TagList returns the declared frontmatter tags, "#"-prefixed.
func (m NoteMetadata) TagList() []string {
	raw := append(frontmatter.MetaTags(m.Tags), frontmatter.MetaTags(m.Tag)...)
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			tags = append(tags, "#"+t)
		}
	}
	return tags
}
