package page

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var selectorRe = regexp.MustCompile(`^\[\s*([A-Za-z_][\w:.-]*)\s*(\^?=)\s*(?:"([^"]*)"|'([^']*)'|([^\]\s]*))\s*\](?:\s+([A-Za-z][A-Za-z0-9]*))?$`)

// Selector is the attribute selector subset the quiz page needs:
// [attr=value] or [attr^=value], optionally followed by a descendant tag.
type Selector struct {
	Attr   string
	Value  string
	Prefix bool
	Tag    string
}

func ParseSelector(s string) (Selector, error) {
	m := selectorRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Selector{}, fmt.Errorf("%w: %q", ErrBadSelector, s)
	}

	return Selector{
		Attr:   strings.ToLower(m[1]),
		Value:  m[3] + m[4] + m[5],
		Prefix: m[2] == "^=",
		Tag:    strings.ToLower(m[6]),
	}, nil
}

func (s Selector) String() string {
	op := "="
	if s.Prefix {
		op = "^="
	}
	out := fmt.Sprintf("[%s%s%q]", s.Attr, op, s.Value)
	if s.Tag != "" {
		out += " " + s.Tag
	}
	return out
}

func (s Selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != s.Attr {
			continue
		}
		if s.Prefix {
			return s.Value != "" && strings.HasPrefix(a.Val, s.Value)
		}
		return a.Val == s.Value
	}
	return false
}

// containers returns every element matching the attribute part, in
// document order.
func (s Selector) containers(root *html.Node) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if s.matches(n) {
			out = append(out, n)
		}
	})
	return out
}

// target resolves the descendant tag inside a container; without a tag the
// container itself is the target.
func (s Selector) target(container *html.Node) *html.Node {
	if s.Tag == "" {
		return container
	}
	var found *html.Node
	for c := container.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(n *html.Node) {
			if found == nil && n.Type == html.ElementNode && n.Data == s.Tag {
				found = n
			}
		})
	}
	return found
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// text returns the rendered text of n with whitespace collapsed.
func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	collectText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template":
			return
		case "br":
			b.WriteByte('\n')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
