package rendering

import (
	_ "embed"
	"strings"

	"golang.org/x/net/html"
)

// Stylesheet is embedded into every composed sheet. Its class hooks (.grid,
// .Power, .At-Will, .Encounter, .Daily) are what the rewritten fragments target.
//
//go:embed assets/powers.css
var Stylesheet string

const (
	// DocumentTitle is the <title> of every composed sheet
	DocumentTitle = "Power Texts"
	// GridClass is the class of the element holding all cards
	GridClass = "grid"
	// ContainerClass is the class of the element wrapping each card
	ContainerClass = "power"
)

// ComposeOptions configures the composed sheet.
type ComposeOptions struct {
	// Title is written HTML-escaped into <title>. Empty means DocumentTitle.
	Title string
}

// ComposeDocument wraps each fragment in a container and embeds them, in order,
// in the printable sheet. Fragments are trusted markup and are not escaped.
// An empty slice yields a sheet with an empty grid.
func ComposeDocument(fragments []string) string {
	return ComposeDocumentWithOptions(fragments, ComposeOptions{})
}

// ComposeDocumentWithOptions is ComposeDocument with a configurable title.
func ComposeDocumentWithOptions(fragments []string, opts ComposeOptions) string {
	title := opts.Title
	if title == "" {
		title = DocumentTitle
	}

	var sb strings.Builder
	size := len(Stylesheet) + 256
	for _, f := range fragments {
		size += len(f) + 32
	}
	sb.Grow(size)

	sb.WriteString("<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>\n<style>\n")
	sb.WriteString(Stylesheet)
	sb.WriteString("</style>\n</head>\n<body>\n<div class='")
	sb.WriteString(GridClass)
	sb.WriteString("'>")

	for _, fragment := range fragments {
		sb.WriteString("<div class='")
		sb.WriteString(ContainerClass)
		sb.WriteString("'>")
		sb.WriteString(fragment)
		sb.WriteString("</div>")
	}

	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String()
}
