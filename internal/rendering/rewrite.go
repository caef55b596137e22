package rendering

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/powercards/internal/types"
)

// DefaultSentinelID is the id stored fragments give the element that becomes the power card
const DefaultSentinelID = "detail"

// PowerClass is the class every rewritten card carries ahead of its usage category
const PowerClass = "Power"

// RewriteFragment locates the first element of record.Markup whose id equals
// sentinelID, sets its id to the power's name and its class to
// "Power <usage>", and returns that element's outer HTML. An existing class
// attribute is replaced, not extended.
func RewriteFragment(record types.PowerRecord, sentinelID string) (string, error) {
	if sentinelID == "" {
		sentinelID = DefaultSentinelID
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(record.Markup))
	if err != nil {
		return "", &FragmentStructureError{
			Power:   record.Name,
			Message: "failed to parse stored markup",
			Cause:   err,
		}
	}

	// Compare the attribute directly so sentinel ids that are not valid CSS identifiers still match
	detail := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == sentinelID
	}).First()
	if detail.Length() == 0 {
		return "", &FragmentStructureError{
			Power:   record.Name,
			Message: fmt.Sprintf("no element with id %q", sentinelID),
		}
	}

	detail.SetAttr("id", record.Name)
	detail.SetAttr("class", ClassList(record.Usage))

	return serializeNode(record.Name, detail.Get(0))
}

// ClassList returns the class attribute value for a power of the given usage.
func ClassList(usage string) string {
	return PowerClass + " " + usage
}

// serializeNode renders node and its subtree as HTML.
func serializeNode(power string, node *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return "", &SerializationError{
			Power:   power,
			Message: "failed to render rewritten element",
			Cause:   err,
		}
	}
	return buf.String(), nil
}
