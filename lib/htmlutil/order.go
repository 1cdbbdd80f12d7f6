package htmlutil

import (
	"regexp"

	"eplgraph/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Order numbers the nodes of a document in document order, it answers "does
// this element come after that heading" questions that goquery's tree-shaped
// traversal can't.
type Order struct {
	index map[*html.Node]int
	// end[n] is the index of the last node inside n's subtree
	end map[*html.Node]int
}

func NewOrder(root *html.Node) Order {
	o := Order{
		index: make(map[*html.Node]int),
		end:   make(map[*html.Node]int),
	}
	counter := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		o.index[n] = counter
		counter++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		o.end[n] = counter - 1
	}
	walk(root)
	return o
}

// NewDocumentOrder numbers the whole document.
func NewDocumentOrder(doc *goquery.Document) Order {
	return NewOrder(doc.Nodes[0])
}

// Before reports whether a starts before b.
func (o Order) Before(a, b *html.Node) bool {
	return o.index[a] < o.index[b]
}

// After filters `sel` down to the nodes that start after `node` ends, the
// descendants of `node` are not part of the result.
func (o Order) After(sel *goquery.Selection, node *html.Node) *goquery.Selection {
	last := o.end[node]
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return o.index[s.Nodes[0]] > last
	})
}

// Between filters `sel` down to the nodes after `from` and before `to`.
func (o Order) Between(sel *goquery.Selection, from, to *html.Node) *goquery.Selection {
	last := o.end[from]
	limit := o.index[to]
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		i := o.index[s.Nodes[0]]
		return i > last && i < limit
	})
}

// NextAfter returns the first node of `sel` after `node`, or nil.
func (o Order) NextAfter(sel *goquery.Selection, node *html.Node) *html.Node {
	after := o.After(sel, node)
	if after.Length() == 0 {
		return nil
	}
	return after.Nodes[0]
}

// Heading is a section heading of an encyclopedia page.
type Heading struct {
	Node *html.Node
	// Tag is "h2", "h3", ...
	Tag  string
	ID   string
	Text string
}

var editSectionRegex = regexp.MustCompile(`\[\s*edit\s*\]`)

// Headings lists the headings of the given tags in document order. Both the
// current markup (<h2 id=..>) and the older one (<h2><span class="mw-headline" id=..>)
// are understood.
func Headings(root *goquery.Selection, tags string) []Heading {
	var out []Heading
	root.Find(tags).Each(func(_ int, s *goquery.Selection) {
		node := s.Nodes[0]
		id := s.AttrOr("id", "")
		if id == "" {
			id = s.Find(".mw-headline").AttrOr("id", "")
		}

		titled := s.Clone()
		titled.Find(".mw-editsection").Remove()
		text := GetText(titled.Nodes[0])
		text = editSectionRegex.ReplaceAllString(text, "")
		text = textutil.CollapseSpace(textutil.StripFootnotes(text))

		out = append(out, Heading{
			Node: node,
			Tag:  node.Data,
			ID:   id,
			Text: text,
		})
	})
	return out
}

// FindHeading returns the first heading whose text or id matches `pattern`.
func FindHeading(headings []Heading, pattern *regexp.Regexp) (Heading, bool) {
	for _, h := range headings {
		if pattern.MatchString(h.Text) || pattern.MatchString(h.ID) {
			return h, true
		}
	}
	return Heading{}, false
}
