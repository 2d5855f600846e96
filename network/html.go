package network

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// maxPreviewChars bounds the extracted text; the viewport shows a
// preview, not the whole document.
const maxPreviewChars = 20000

// pageMeta is what a single parse pass pulls out of an HTML document.
type pageMeta struct {
	title       string
	faviconHref string
	cspContent  string // <meta http-equiv="Content-Security-Policy">
	text        string
}

func (m pageMeta) cspBlocksEmbedding() bool {
	return frameAncestorsBlock(m.cspContent)
}

// extractMeta parses an HTML document and collects its title, favicon
// link, meta CSP, and readable text. The x/net/html parser never fails
// on malformed input; it produces a best-effort tree, which is exactly
// the forgiveness a preview needs.
func extractMeta(body []byte) pageMeta {
	var meta pageMeta

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		meta.text = previewText(string(body))
		return meta
	}

	var textParts []string
	var textLen int

	var walk func(n *html.Node, skipText bool)
	walk = func(n *html.Node, skipText bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.title == "" {
					meta.title = strings.TrimSpace(nodeText(n))
				}
				skipText = true
			case "link":
				if meta.faviconHref == "" && isIconLink(n) {
					meta.faviconHref = attr(n, "href")
				}
			case "meta":
				if strings.EqualFold(attr(n, "http-equiv"), "Content-Security-Policy") {
					meta.cspContent = attr(n, "content")
				}
			case "script", "style", "noscript", "template", "head":
				skipText = true
			}
		}
		if n.Type == html.TextNode && !skipText && textLen < maxPreviewChars {
			if t := strings.TrimSpace(n.Data); t != "" {
				textParts = append(textParts, t)
				textLen += len(t)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, skipText)
		}
	}
	walk(root, false)

	meta.text = previewText(strings.Join(textParts, " "))
	return meta
}

// nodeText concatenates the text nodes directly under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

// isIconLink reports whether a link element declares a favicon.
func isIconLink(n *html.Node) bool {
	rel := strings.ToLower(attr(n, "rel"))
	for _, token := range strings.Fields(rel) {
		if token == "icon" || token == "shortcut" || token == "apple-touch-icon" {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// previewText collapses whitespace and truncates to the preview bound.
func previewText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxPreviewChars {
		s = s[:maxPreviewChars]
	}
	return s
}
