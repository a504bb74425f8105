package export

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/rostermerge/transform"
)

// exportHTML writes a standalone HTML document holding the report table
func (e *Exporter) exportHTML(report *transform.Report, w io.Writer) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	title := element(atom.Title)
	title.AppendChild(text("Report"))
	head.AppendChild(title)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(tableNode(report))

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func tableNode(report *transform.Report) *html.Node {
	table := element(atom.Table)
	table.Attr = []html.Attribute{{Key: "border", Val: "1"}}

	thead := element(atom.Thead)
	tr := element(atom.Tr)
	for _, col := range report.Columns {
		th := element(atom.Th)
		th.AppendChild(text(col))
		tr.AppendChild(th)
	}
	thead.AppendChild(tr)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range report.Rows {
		tr := element(atom.Tr)
		for _, v := range row {
			td := element(atom.Td)
			td.AppendChild(text(v))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	return table
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
