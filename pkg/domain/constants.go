package domain

const (
	// DepthLimit is the maximum number of open nested inclusions allowed
	// before an include is rejected.
	DepthLimit = 10

	// DefaultDateFormat is the pattern used by the date accessors when the
	// template does not supply one.
	DefaultDateFormat = "YYYY-MM-DD HH:mm"

	// CursorMarker is substituted verbatim for the cursor placeholder so that
	// post-processing can locate the cursor position.
	CursorMarker = "<% cursor %>"

	// MarkdownExtension is the default extension assumed for link paths.
	MarkdownExtension = "md"
)
