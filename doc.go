/*
Package scribe expands markdown templates stored in a vault.

Templates use "<% %>" directives on top of Go's text/template grammar. The
"file" module binds each expansion to one document and exposes it to the
template:

	Written <% creation_date "dddd, MMMM Do" %> in <% folder %>.
	Tags: <% join tags ", " %>

	<% include "snippets/footer" %>

include resolves a link to another document and expands that document's
raw text in place, with the target as the current document. Nested
inclusions stop at a depth of ten (domain.DepthLimit); by default the depth
is counted per inclusion chain, so concurrent expansions never interfere.

# Usage

	eng, err := scribe.New("./vault")
	if err != nil {
		log.Fatal(err)
	}
	out, err := eng.Expand(ctx, "daily.md", domain.ModeTopLevel)

A custom store, host, depth guard or extra template modules can be
injected with the With* options. See cmd/scribe for the CLI, HTTP and MCP
surfaces.
*/
package scribe
