package fbref

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is a parsed HTML table: the innermost header row and the body rows.
type Table struct {
	ID     string
	Header []string
	Rows   [][]string
}

// ParseTables returns every table in the document in order, including tables
// embedded in HTML comments.
func ParseTables(r io.Reader) ([]Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var tables []Table
	if err := collectTables(doc, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func collectTables(n *html.Node, out *[]Table) error {
	switch {
	case n.Type == html.ElementNode && n.DataAtom == atom.Table:
		*out = append(*out, parseTable(n))
		return nil
	case n.Type == html.CommentNode && strings.Contains(n.Data, "<table"):
		inner, err := html.Parse(strings.NewReader(n.Data))
		if err != nil {
			return err
		}
		return collectTables(inner, out)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectTables(c, out); err != nil {
			return err
		}
	}
	return nil
}

func parseTable(n *html.Node) Table {
	t := Table{ID: attr(n, "id")}
	var headerRows, bodyRows [][]string

	var walk func(*html.Node, bool)
	walk = func(node *html.Node, inHead bool) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead:
				walk(c, true)
			case atom.Tbody, atom.Tfoot:
				walk(c, false)
			case atom.Tr:
				if hasClass(c, "thead") || hasClass(c, "over_header") {
					continue
				}
				cells := rowCells(c)
				if inHead || (len(headerRows) == 0 && len(bodyRows) == 0 && allHeaderCells(c)) {
					headerRows = append(headerRows, cells)
				} else {
					bodyRows = append(bodyRows, cells)
				}
			case atom.Table:
				// nested tables are reported on their own
			default:
				walk(c, inHead)
			}
		}
	}
	walk(n, false)

	if len(headerRows) > 0 {
		t.Header = headerRows[len(headerRows)-1]
	}
	t.Rows = bodyRows
	return t
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, strings.Join(strings.Fields(textContent(c)), " "))
		}
	}
	return cells
}

func allHeaderCells(tr *html.Node) bool {
	seen := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Td {
			return false
		}
		if c.DataAtom == atom.Th {
			seen = true
		}
	}
	return seen
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
