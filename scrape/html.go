// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findNodeByTag returns the first element with the given tag in document order.
func findNodeByTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNodeByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAllByTag returns every element with the given tag in document order.
func findAllByTag(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return nodes
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// headingLinks returns the href of the first anchor in each h2.
// Headings without an anchor, or whose anchor has no href, are skipped.
func headingLinks(doc *html.Node) []string {
	var links []string
	for _, h2 := range findAllByTag(doc, "h2") {
		a := findNodeByTag(h2, "a")
		if a == nil {
			continue
		}
		if href := strings.TrimSpace(attr(a, "href")); href != "" {
			links = append(links, href)
		}
	}
	return links
}

// extractTitle extracts the title from the HTML document
func extractTitle(doc *html.Node) string {
	title := findNodeByTag(doc, "title")
	if title == nil {
		return ""
	}
	return strings.TrimSpace(textContent(title))
}

// extractMeta returns the content of the first meta tag whose attribute key
// equals val, e.g. name=description or property=article:published_time.
func extractMeta(doc *html.Node, key, val string) string {
	for _, meta := range findAllByTag(doc, "meta") {
		if attr(meta, key) == val {
			return attr(meta, "content")
		}
	}
	return ""
}

// contentNode picks the article body: <main> if present, else <body>, else the document.
func contentNode(doc *html.Node) *html.Node {
	if main := findNodeByTag(doc, "main"); main != nil {
		return main
	}
	if body := findNodeByTag(doc, "body"); body != nil {
		return body
	}
	return doc
}
