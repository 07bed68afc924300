package document

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Stats counts the blocks seen while transforming one document.
type Stats struct {
	// Blocks is the number of chart blocks found.
	Blocks int

	// Rendered is the number of blocks replaced by a chart.
	Rendered int

	// Skipped is the number of blocks left unchanged.
	Skipped int
}

// fullDocument matches sources that are complete HTML documents rather than
// fragments.
var fullDocument = regexp.MustCompile(`(?is)^\s*(<!--.*?-->\s*)*(<!doctype|<html)`)

// TransformHTML replaces the chart blocks of an HTML document or fragment.
//
// PARAMETERS:
//   - src: A complete document (starting with a doctype or <html>) or a
//     fragment such as rendered Markdown.
//
// RETURNS:
//   - The rewritten HTML. Fragments are rendered back as fragments.
//   - Statistics about the blocks found.
//   - An error if the source cannot be parsed or rendered.
func (a *Adapter) TransformHTML(src []byte) ([]byte, Stats, error) {
	if fullDocument.Match(src) {
		doc, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, Stats{}, fmt.Errorf("failed to parse HTML: %w", err)
		}

		stats := a.transform(doc)

		var out bytes.Buffer
		if err := html.Render(&out, doc); err != nil {
			return nil, Stats{}, fmt.Errorf("failed to render HTML: %w", err)
		}
		return out.Bytes(), stats, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	stats := a.transform(body)

	var out bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return nil, Stats{}, fmt.Errorf("failed to render HTML: %w", err)
		}
	}
	return out.Bytes(), stats, nil
}

// TransformMarkdown renders Markdown to HTML and replaces its chart blocks.
// Fenced code blocks become <pre><code class="language-X"> elements.
func (a *Adapter) TransformMarkdown(src []byte) ([]byte, Stats, error) {
	md := goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))

	var rendered bytes.Buffer
	if err := md.Convert(src, &rendered); err != nil {
		return nil, Stats{}, fmt.Errorf("failed to render Markdown: %w", err)
	}

	return a.TransformHTML(rendered.Bytes())
}

// transform runs both passes over root.
func (a *Adapter) transform(root *html.Node) Stats {
	edits := a.Collect(root)
	rendered := a.Apply(edits, a.options.SaveOriginal)

	return Stats{
		Blocks:   len(edits),
		Rendered: rendered,
		Skipped:  len(edits) - rendered,
	}
}
