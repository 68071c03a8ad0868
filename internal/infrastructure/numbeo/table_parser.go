package numbeo

import (
	"fmt"
	"log"
	"strings"

	"github.com/costlens/backend/internal/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTableClass is the class carried by price tables on city pages
const DefaultTableClass = "data_wide_table"

// maxSnippetLength caps how much markup is logged when no table is found
const maxSnippetLength = 500

// TableParser extracts label/price rows from the price tables of a page
type TableParser struct {
	tableClass string
}

// NewTableParser creates a parser for tables carrying the given class
func NewTableParser(tableClass string) *TableParser {
	if tableClass == "" {
		tableClass = DefaultTableClass
	}
	return &TableParser{tableClass: tableClass}
}

// ParseRows returns one row per table row with at least two cells, taking the
// text of the first two cells. Tables and rows are visited in document order.
// It fails with domain.ErrNoPriceTable when the page has no matching table.
func (p *TableParser) ParseRows(markup string) ([]domain.ScrapedRow, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	tables := findAll(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Table && hasClass(n, p.tableClass)
	})
	if len(tables) == 0 {
		snippet := markup
		if len(snippet) > maxSnippetLength {
			snippet = snippet[:maxSnippetLength]
		}
		log.Printf("[PARSE] No %s table found. HTML snippet:\n%s", p.tableClass, snippet)
		return nil, domain.ErrNoPriceTable
	}

	var rows []domain.ScrapedRow
	for _, table := range tables {
		for _, tr := range findAll(table, isElement(atom.Tr)) {
			cells := findAll(tr, isElement(atom.Td))
			if len(cells) < 2 {
				continue
			}
			rows = append(rows, domain.ScrapedRow{
				Label: nodeText(cells[0]),
				Price: nodeText(cells[1]),
			})
		}
	}

	return rows, nil
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

// findAll returns the descendants of root matching pred, in document order
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(root)
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// nodeText joins the trimmed, non-empty text nodes under n with single spaces
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
