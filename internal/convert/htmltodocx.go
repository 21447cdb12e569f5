// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	blockSelector  = "h1, h2, h3, h4, h5, h6, p, li, div, pre"
	inlineSelector = "span, code"
)

// HTMLToDOCX writes the text-bearing elements of an HTML file as DOCX
// paragraphs, mapping headings, list items, and code to matching styles.
func (c *Converter) HTMLToDOCX(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("converting HTML to DOCX: %w", failed(err))
	}
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(bytes.ToValidUTF8(data, nil)))
	if err != nil {
		return fmt.Errorf("converting HTML to DOCX: %w", failed(err))
	}

	w := newDocxWriter()
	for _, b := range htmlBlocks(page) {
		switch b.tag {
		case "h1":
			w.heading(b.text, 1)
		case "h2":
			w.heading(b.text, 2)
		case "h3", "h4", "h5", "h6":
			w.heading(b.text, 3)
		case "pre", "code":
			w.mono(b.text)
		case "li":
			w.bullet(b.text)
		default:
			w.body(b.text)
		}
	}
	if w.paragraphs == 0 {
		for _, line := range textNodes(page.Selection.Nodes...) {
			w.body(line)
		}
	}

	if err := w.save(out); err != nil {
		return fmt.Errorf("converting HTML to DOCX: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

type htmlBlock struct {
	tag  string
	text string
}

// htmlBlocks returns, in document order, the elements whose text becomes a
// paragraph: block elements containing no other block, and inline elements
// outside every block. A block that does contain blocks contributes only
// the text outside them.
func htmlBlocks(page *goquery.Document) []htmlBlock {
	var out []htmlBlock
	page.Find(blockSelector + ", " + inlineSelector).Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		var text string
		switch {
		case s.Is(blockSelector) && s.Find(blockSelector).Length() > 0:
			text = normalizeSpace(ownText(s.Nodes[0]))
		case s.Is(blockSelector):
			text = normalizeSpace(s.Text())
		case s.ParentsFiltered(blockSelector).Length() > 0:
			return
		default:
			text = normalizeSpace(s.Text())
		}
		if text != "" {
			out = append(out, htmlBlock{tag: tag, text: text})
		}
	})
	return out
}

var blockAtoms = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.P: true, atom.Li: true, atom.Div: true, atom.Pre: true,
}

// ownText returns the text under n that does not belong to a nested block.
func ownText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			switch ch.Type {
			case html.TextNode:
				b.WriteString(ch.Data)
			case html.ElementNode:
				if blockAtoms[ch.DataAtom] {
					b.WriteByte(' ')
					continue
				}
				if ch.DataAtom == atom.Script || ch.DataAtom == atom.Style {
					continue
				}
				walk(ch)
			}
		}
	}
	walk(n)
	return b.String()
}

// textNodes collects the trimmed, non-empty text nodes under the given
// nodes, skipping script and style content.
func textNodes(nodes ...*html.Node) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			for _, line := range strings.Split(n.Data, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					out = append(out, line)
				}
			}
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
