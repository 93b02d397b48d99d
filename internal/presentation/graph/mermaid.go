package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/scribe/pkg/domain"
)

// GraphOverlay contains extra state to highlight on the graph.
type GraphOverlay struct {
	// Focus is the document the graph is centred on, if any.
	Focus string
}

// GenerateMermaid produces a Mermaid flowchart of include relations.
// It applies semantic styling:
// - Document: [Rectangle]
// - Unresolved target: [/Parallelogram/] reached by a dotted arrow
// - Include across folders: -.-> instead of -->
// A self include is drawn like any other edge.
func GenerateMermaid(notes []domain.Note, links []domain.Link, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, note := range notes {
		label := note.ID
		if note.Title != "" {
			label = fmt.Sprintf("%s <br/> %s", note.Title, note.ID)
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeMermaidID(note.ID), escape(label)))
	}

	dangling := make(map[string]bool)
	for _, link := range links {
		safeFrom := sanitizeMermaidID(link.Source)

		if !link.Resolved {
			safeTo := "missing_" + sanitizeMermaidID(link.Target)
			if !dangling[safeTo] {
				dangling[safeTo] = true
				sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", safeTo, escape(link.Target)))
			}
			sb.WriteString(fmt.Sprintf("    %s -. missing .-> %s\n", safeFrom, safeTo))
			continue
		}

		arrow := "-->"
		if path.Dir(link.Source) != path.Dir(link.Target) {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, sanitizeMermaidID(link.Target)))
	}

	if overlay != nil && overlay.Focus != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Focus)))
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "[", "_", "]", "_", "|", "_", "#", "_")
	return r.Replace(id)
}
