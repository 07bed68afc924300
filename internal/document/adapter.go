// =============================================================================
// Time-Series Chart Renderer - Document Adapter
// =============================================================================
//
// This module finds chart blocks in an HTML node tree and replaces each one
// with its rendered chart.
//
// BLOCK SHAPE:
//   A chart block is a <pre> whose first child is a <code> element carrying
//   the class "language-<lang>":
//
//     <pre><code class="language-csv">date,a,b
//     2020-01-01,1,2
//     </code></pre>
//
// TWO PASSES:
//   1. Collect walks the tree in document order and renders every block into
//      an Edit. It never mutates the tree.
//   2. Apply commits the successful edits. A block whose edit failed stays in
//      the tree exactly as it was.
//
// REPLACEMENT:
//   saveOriginal=true   <div class="timeseries-chart-container"><svg/><pre/></div>
//   saveOriginal=false  <svg/>
//
// =============================================================================

package document

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ginjaninja78/timeseries-chart/internal/drawtree"
	"github.com/ginjaninja78/timeseries-chart/internal/svgwriter"
)

// BlockRenderer turns the text of one block into a chart.
type BlockRenderer interface {
	RenderBlock(raw string) (*drawtree.Tree, error)
}

// Logger receives diagnostics. Arguments are alternating keys and values.
type Logger interface {
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}

// Options controls block selection and replacement.
type Options struct {
	// Language selects blocks by their "language-<Language>" class.
	// Default: "csv"
	Language string

	// ContainerClass is the class of the wrapping <div>.
	// Default: "timeseries-chart-container"
	ContainerClass string

	// SaveOriginal keeps the source block inside the container.
	SaveOriginal bool
}

// Adapter rewrites documents.
type Adapter struct {
	renderer BlockRenderer
	options  Options
	logger   Logger
}

// NewAdapter creates an adapter. A nil logger discards diagnostics.
func NewAdapter(renderer BlockRenderer, options Options, logger Logger) *Adapter {
	if options.Language == "" {
		options.Language = "csv"
	}
	if options.ContainerClass == "" {
		options.ContainerClass = "timeseries-chart-container"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{renderer: renderer, options: options, logger: logger}
}

// Options returns the effective options.
func (a *Adapter) Options() Options { return a.options }

// =============================================================================
// COLLECTION PASS
// =============================================================================

// Edit is the planned replacement of one block.
type Edit struct {
	// Block is the <pre> element of the block.
	Block *html.Node

	// Replacement is the rendered <svg> element. It is nil when Err is set.
	Replacement *html.Node

	// Err is the reason the block cannot be charted.
	Err error
}

// OK reports whether the block rendered.
func (e Edit) OK() bool { return e.Err == nil && e.Replacement != nil }

// Collect renders every chart block under root, in document order.
func (a *Adapter) Collect(root *html.Node) []Edit {
	var edits []Edit
	class := "language-" + a.options.Language

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if code := blockCode(n, class); code != nil {
			edits = append(edits, a.render(n, code))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return edits
}

// render builds the edit of a single block.
func (a *Adapter) render(pre, code *html.Node) Edit {
	edit := Edit{Block: pre}

	tree, err := a.renderer.RenderBlock(blockText(code))
	if err != nil {
		a.logger.Debug("leaving block unchanged", "error", err)
		edit.Err = err
		return edit
	}

	edit.Replacement = ElementNode(svgwriter.Build(tree))
	return edit
}

// blockCode returns the <code> child when n is a chart block with the given
// class, and nil otherwise.
func blockCode(n *html.Node, class string) *html.Node {
	if n.Type != html.ElementNode || n.DataAtom != atom.Pre || n.Parent == nil {
		return nil
	}

	code := n.FirstChild
	for code != nil && code.Type == html.TextNode && strings.TrimSpace(code.Data) == "" {
		code = code.NextSibling
	}
	if code == nil || code.Type != html.ElementNode || code.DataAtom != atom.Code {
		return nil
	}

	if !slices.Contains(strings.Fields(attrValue(code, "class")), class) {
		return nil
	}
	return code
}

// blockText joins the text children of code with newlines and trims the
// result. Non-text children contribute an empty line.
func blockText(code *html.Node) string {
	var parts []string
	for c := code.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			parts = append(parts, c.Data)
		} else {
			parts = append(parts, "")
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// =============================================================================
// COMMIT PASS
// =============================================================================

// Apply replaces the block of every successful edit and returns how many
// blocks were replaced. Failed edits and detached blocks are skipped.
func (a *Adapter) Apply(edits []Edit, saveOriginal bool) int {
	replaced := 0

	for _, edit := range edits {
		if !edit.OK() || edit.Block.Parent == nil {
			continue
		}

		parent := edit.Block.Parent
		if saveOriginal {
			container := &html.Node{
				Type:     html.ElementNode,
				Data:     "div",
				DataAtom: atom.Div,
				Attr:     []html.Attribute{{Key: "class", Val: a.options.ContainerClass}},
			}
			parent.InsertBefore(container, edit.Block)
			parent.RemoveChild(edit.Block)
			container.AppendChild(edit.Replacement)
			container.AppendChild(edit.Block)
		} else {
			parent.InsertBefore(edit.Replacement, edit.Block)
			parent.RemoveChild(edit.Block)
		}
		replaced++
	}

	return replaced
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ElementNode converts an SVG element tree into detached HTML nodes in the
// SVG namespace.
func ElementNode(element svgwriter.Element) *html.Node {
	name := element.XMLName.Local
	node := &html.Node{
		Type:      html.ElementNode,
		Data:      name,
		DataAtom:  atom.Lookup([]byte(name)),
		Namespace: "svg",
	}

	for _, a := range element.Attributes {
		node.Attr = append(node.Attr, html.Attribute{Key: a.Name.Local, Val: a.Value})
	}

	if element.Value != "" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: element.Value})
	}
	for _, child := range element.Children {
		node.AppendChild(ElementNode(child))
	}

	return node
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
