// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/tabula/docx"
	"github.com/tsawler/tabula/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const pageStyle = "body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }"

// DOCXToHTML renders the headings and paragraphs of a DOCX file as a
// standalone HTML page.
func (c *Converter) DOCXToHTML(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	r, err := docx.Open(in)
	if err != nil {
		return fmt.Errorf("converting DOCX to HTML: %w", failed(err))
	}
	defer r.Close()
	doc, err := r.Document()
	if err != nil {
		return fmt.Errorf("converting DOCX to HTML: %w", failed(err))
	}

	root, body := htmlPage("Converted Document")
	for _, page := range doc.Pages {
		for _, el := range page.Elements {
			switch e := el.(type) {
			case *model.Heading:
				level := min(max(e.Level, 1), 6)
				a := atom.Lookup([]byte("h" + strconv.Itoa(level)))
				body.AppendChild(textElement(a, e.Text))
			case model.TextElement:
				body.AppendChild(textElement(atom.P, e.GetText()))
			}
		}
	}

	err = writeFile(out, func(w io.Writer) error { return html.Render(w, root) })
	if err != nil {
		return fmt.Errorf("converting DOCX to HTML: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

// DOCXToText writes the raw text of a DOCX file.
func (c *Converter) DOCXToText(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	r, err := docx.Open(in)
	if err != nil {
		return fmt.Errorf("converting DOCX to TXT: %w", failed(err))
	}
	defer r.Close()
	text, err := r.Text()
	if err != nil {
		return fmt.Errorf("converting DOCX to TXT: %w", failed(err))
	}

	err = writeFile(out, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
	if err != nil {
		return fmt.Errorf("converting DOCX to TXT: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

// htmlPage builds an HTML5 document skeleton and returns its root and body.
func htmlPage(title string) (root, body *html.Node) {
	root = &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "UTF-8"}))
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1.0"}))
	head.AppendChild(textElement(atom.Title, title))
	head.AppendChild(textElement(atom.Style, pageStyle))
	htmlEl.AppendChild(head)

	body = element(atom.Body)
	htmlEl.AppendChild(body)
	return root, body
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: strings.TrimSpace(text)})
	return n
}
