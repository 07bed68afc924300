// =============================================================================
// Time-Series Chart Renderer - SVG Writer Module
// =============================================================================
//
// This module turns a draw tree into an SVG element tree and serializes it.
// The element tree is shared with the document adapter, which grafts it into
// an HTML node tree instead of writing it out as text.
//
// SVG STRUCTURE:
//
//   <svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 640 300"
//        preserveAspectRatio="none" width="100%" height="100%">
//     <rect x="0" y="0" width="640" height="300" fill="#fff"/>
//     <text x="320" y="20" fill="#000" font-size="16" text-anchor="middle">Title</text>
//     <line x1="50" y1="270" x2="620" y2="270" stroke="#000"/>
//     ...
//     <path d="M50,270C..." fill="none" stroke="#1f77b4" stroke-width="1.5"
//           stroke-linejoin="round" stroke-linecap="round"/>
//   </svg>
//
// NUMBERS:
//   Coordinates are rounded to three decimals and written without trailing
//   zeros.
//
// =============================================================================

package svgwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ginjaninja78/timeseries-chart/internal/drawtree"
)

// Namespace is the SVG namespace URI.
const Namespace = "http://www.w3.org/2000/svg"

// =============================================================================
// SVG GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for SVG generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: false
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootAttributes override or extend the attributes of the <svg> element.
	// Example: {"width": "640", "height": "300"} for a fixed-size file.
	RootAttributes map[string]string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:         "  ",
		XMLVersion:     "1.0",
		Encoding:       "UTF-8",
		RootAttributes: make(map[string]string),
	}
}

// StandaloneOptions returns options for writing a chart to its own .svg file:
// an XML declaration and a pixel size instead of 100%.
func StandaloneOptions(tree *drawtree.Tree) GenerateOptions {
	options := DefaultGenerateOptions()
	options.IncludeXMLDeclaration = true
	options.RootAttributes["width"] = FormatNumber(tree.Width())
	options.RootAttributes["height"] = FormatNumber(tree.Height())
	return options
}

// =============================================================================
// SVG GENERATION FUNCTIONS
// =============================================================================

// Generate serializes the chart with the default options.
func Generate(tree *drawtree.Tree) ([]byte, error) {
	return GenerateWithOptions(tree, DefaultGenerateOptions())
}

// GenerateWithOptions serializes the chart with custom options.
//
// PARAMETERS:
//   - tree: The chart to serialize.
//   - options: The generation options.
//
// RETURNS:
//   - The SVG document as a byte slice.
//   - An error if the options are unusable.
func GenerateWithOptions(tree *drawtree.Tree, options GenerateOptions) ([]byte, error) {
	if strings.TrimSpace(options.Indent) != "" {
		return nil, fmt.Errorf("indent must be whitespace, got %q", options.Indent)
	}

	var buffer bytes.Buffer

	// Write XML declaration if requested.
	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	root := Build(tree)
	applyRootAttributes(&root, options.RootAttributes)

	writeElement(&buffer, root, options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// ELEMENT TREE BUILDING
// =============================================================================

// Element represents a generic SVG element.
type Element struct {
	XMLName    xml.Name
	Attributes []xml.Attr `xml:",attr"`
	Value      string     `xml:",chardata"`
	Children   []Element  `xml:",any"`
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Build maps the draw tree onto an <svg> element, one child per shape.
//
// The root scales with its container: viewBox is the chart size, width and
// height are 100% and the aspect ratio is not preserved.
func Build(tree *drawtree.Tree) Element {
	root := Element{
		XMLName: xml.Name{Local: "svg"},
		Attributes: []xml.Attr{
			attr("xmlns", Namespace),
			attr("viewBox", fmt.Sprintf("0 0 %s %s", FormatNumber(tree.Width()), FormatNumber(tree.Height()))),
			attr("preserveAspectRatio", "none"),
			attr("width", "100%"),
			attr("height", "100%"),
		},
	}

	for _, node := range tree.Nodes() {
		root.Children = append(root.Children, buildNode(node))
	}

	return root
}

// buildNode converts a single shape.
func buildNode(node drawtree.Node) Element {
	switch n := node.(type) {
	case drawtree.Rect:
		return Element{
			XMLName: xml.Name{Local: "rect"},
			Attributes: append([]xml.Attr{
				numberAttr("x", n.X),
				numberAttr("y", n.Y),
				numberAttr("width", n.Width),
				numberAttr("height", n.Height),
			}, styleAttrs(n.Style)...),
		}

	case drawtree.Line:
		return Element{
			XMLName: xml.Name{Local: "line"},
			Attributes: append([]xml.Attr{
				numberAttr("x1", n.X1),
				numberAttr("y1", n.Y1),
				numberAttr("x2", n.X2),
				numberAttr("y2", n.Y2),
			}, styleAttrs(n.Style)...),
		}

	case drawtree.Text:
		return Element{
			XMLName: xml.Name{Local: "text"},
			Attributes: append([]xml.Attr{
				numberAttr("x", n.X),
				numberAttr("y", n.Y),
			}, styleAttrs(n.Style)...),
			Value: n.Content,
		}

	case drawtree.Path:
		return Element{
			XMLName:    xml.Name{Local: "path"},
			Attributes: append([]xml.Attr{attr("d", PathData(n.Segments))}, styleAttrs(n.Style)...),
		}
	}

	return Element{XMLName: xml.Name{Local: "g"}}
}

// styleAttrs lists the set style attributes in a fixed order.
func styleAttrs(style drawtree.Style) []xml.Attr {
	var attrs []xml.Attr

	if style.Fill != "" {
		attrs = append(attrs, attr("fill", style.Fill))
	}
	if style.Stroke != "" {
		attrs = append(attrs, attr("stroke", style.Stroke))
	}
	if style.StrokeWidth != 0 {
		attrs = append(attrs, numberAttr("stroke-width", style.StrokeWidth))
	}
	if style.DashArray != "" {
		attrs = append(attrs, attr("stroke-dasharray", style.DashArray))
	}
	if style.LineJoin != "" {
		attrs = append(attrs, attr("stroke-linejoin", style.LineJoin))
	}
	if style.LineCap != "" {
		attrs = append(attrs, attr("stroke-linecap", style.LineCap))
	}
	if style.FontSize != 0 {
		attrs = append(attrs, numberAttr("font-size", style.FontSize))
	}
	if style.TextAnchor != "" {
		attrs = append(attrs, attr("text-anchor", style.TextAnchor))
	}

	return attrs
}

// applyRootAttributes overwrites existing root attributes in place and
// appends new ones sorted by name.
func applyRootAttributes(root *Element, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}

	seen := make(map[string]bool, len(overrides))
	for i, a := range root.Attributes {
		if value, ok := overrides[a.Name.Local]; ok {
			root.Attributes[i].Value = value
			seen[a.Name.Local] = true
		}
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		root.Attributes = append(root.Attributes, attr(key, overrides[key]))
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func numberAttr(name string, value float64) xml.Attr {
	return attr(name, FormatNumber(value))
}

// FormatNumber rounds to three decimals and drops trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// PathData encodes path segments as an SVG path "d" attribute.
func PathData(segments []drawtree.Segment) string {
	var buffer strings.Builder

	for _, s := range segments {
		switch s.Op {
		case drawtree.MoveTo:
			buffer.WriteString("M" + FormatNumber(s.X) + "," + FormatNumber(s.Y))
		case drawtree.LineTo:
			buffer.WriteString("L" + FormatNumber(s.X) + "," + FormatNumber(s.Y))
		case drawtree.CurveTo:
			buffer.WriteString("C" + strings.Join([]string{
				FormatNumber(s.X1), FormatNumber(s.Y1),
				FormatNumber(s.X2), FormatNumber(s.Y2),
				FormatNumber(s.X), FormatNumber(s.Y),
			}, ","))
		case drawtree.Close:
			buffer.WriteString("Z")
		}
	}

	return buffer.String()
}

// writeElement writes an element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element Element, indent string, level int) {
	// Write indentation.
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	// Write opening tag.
	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	// Write attributes.
	for _, attr := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", attr.Name.Local, escapeXML(attr.Value)))
	}

	// Check if element has children or value.
	if len(element.Children) == 0 && element.Value == "" {
		// Self-closing tag.
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	// Write value or children.
	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		// Write indentation for closing tag.
		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	// Write closing tag.
	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
