package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// NoDescriptionSentinel replaces a blank document so downstream matching
// never operates on an empty string for a retained candidate.
const NoDescriptionSentinel = "No detailed description available."

// PatentExtractor pulls the three text sections out of a Google Patents page
type PatentExtractor struct{}

// NewPatentExtractor creates a new patent extractor
func NewPatentExtractor() *PatentExtractor {
	return &PatentExtractor{}
}

// Document holds the independently extracted sections of one patent page.
// Any section the page lacks is the empty string.
type Document struct {
	Abstract    string
	Description string
	Claims      string
}

// Extract parses the page markup and extracts abstract, description, and
// claims, each tolerantly and independently:
//   - abstract from <meta name="DC.description" content="...">
//   - description from the text of <div class="description">
//   - claims from the text of <section itemprop="claims">
func (e *PatentExtractor) Extract(htmlContent string) (Document, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return Document{}, err
	}

	var d Document
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if d.Abstract == "" && attr(n, "name") == "DC.description" {
					d.Abstract = strings.TrimSpace(attr(n, "content"))
				}
			case "div":
				if d.Description == "" && hasClass(n, "description") {
					d.Description = strings.TrimSpace(visibleText(n))
					return // Children already consumed
				}
			case "section":
				if d.Claims == "" && attr(n, "itemprop") == "claims" {
					d.Claims = strings.TrimSpace(visibleText(n))
					return
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return d, nil
}

// Text concatenates the sections with blank-line separators. A document that
// is blank after trimming yields the sentinel instead of an empty string.
func (d Document) Text() string {
	full := d.Abstract + "\n\n" + d.Description + "\n\n" + d.Claims
	if strings.TrimSpace(full) == "" {
		return NoDescriptionSentinel
	}
	return full
}

// attr returns the value of the named attribute, or "" when absent
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains the given
// class token.
func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// visibleText extracts text nodes beneath n, skipping scripts and styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
