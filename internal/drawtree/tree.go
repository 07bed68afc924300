// =============================================================================
// Time-Series Chart Renderer - Draw Tree
// =============================================================================
//
// A draw tree is the serialization-independent description of one chart: a
// flat, ordered list of primitive shapes in absolute pixel coordinates. Later
// shapes paint over earlier ones.
//
// SHAPES:
//   Rect  - background and legend swatches
//   Line  - axes, tick marks and grid lines
//   Text  - title, legend labels and tick labels
//   Path  - one per series
//
// Every shape carries a Role so consumers (and tests) can find the parts of
// the chart without inspecting coordinates.
//
// =============================================================================

package drawtree

// =============================================================================
// ROLES AND STYLE
// =============================================================================

// Role tags what a shape is for.
type Role int

const (
	RoleBackground Role = iota + 1
	RoleTitle
	RoleLegendSwatch
	RoleLegendLabel
	RoleAxis
	RoleTickMark
	RoleTickLabel
	RoleGridLine
	RoleSeries
)

var roleNames = map[Role]string{
	RoleBackground:   "background",
	RoleTitle:        "title",
	RoleLegendSwatch: "legend-swatch",
	RoleLegendLabel:  "legend-label",
	RoleAxis:         "axis",
	RoleTickMark:     "tick-mark",
	RoleTickLabel:    "tick-label",
	RoleGridLine:     "grid-line",
	RoleSeries:       "series",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Style holds presentation attributes. Zero values mean "not set".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	DashArray   string
	LineJoin    string
	LineCap     string
	FontSize    float64
	TextAnchor  string
}

// =============================================================================
// SHAPES
// =============================================================================

// Node is one primitive shape. The set of shapes is closed.
type Node interface {
	NodeRole() Role
	isNode()
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Style         Style
	Role          Role
}

// Line is a straight segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Style  Style
	Role   Role
}

// Text is a label anchored at (X, Y).
type Text struct {
	X, Y    float64
	Content string
	Style   Style
	Role    Role
}

// Path is a sequence of drawing commands.
type Path struct {
	Segments []Segment
	Style    Style
	Role     Role
}

func (n Rect) NodeRole() Role { return n.Role }
func (n Line) NodeRole() Role { return n.Role }
func (n Text) NodeRole() Role { return n.Role }
func (n Path) NodeRole() Role { return n.Role }

func (Rect) isNode() {}
func (Line) isNode() {}
func (Text) isNode() {}
func (Path) isNode() {}

// Op is a path drawing command.
type Op int

const (
	// MoveTo starts a subpath at (X, Y).
	MoveTo Op = iota
	// LineTo draws a straight line to (X, Y).
	LineTo
	// CurveTo draws a cubic Bézier to (X, Y) with control points (X1, Y1)
	// and (X2, Y2).
	CurveTo
	// Close closes the current subpath.
	Close
)

// Segment is one path command and its coordinates.
type Segment struct {
	Op     Op
	X1, Y1 float64
	X2, Y2 float64
	X, Y   float64
}

// =============================================================================
// TREE
// =============================================================================

// Tree is an immutable chart description of the given pixel size.
type Tree struct {
	width, height float64
	nodes         []Node
}

// New creates a tree. The node slice is copied.
func New(width, height float64, nodes []Node) *Tree {
	copied := make([]Node, len(nodes))
	copy(copied, nodes)
	return &Tree{width: width, height: height, nodes: copied}
}

// Width returns the width of the view box.
func (t *Tree) Width() float64 { return t.width }

// Height returns the height of the view box.
func (t *Tree) Height() float64 { return t.height }

// Nodes returns the shapes in paint order. The returned slice is a copy.
func (t *Tree) Nodes() []Node {
	nodes := make([]Node, len(t.nodes))
	copy(nodes, t.nodes)
	return nodes
}

// Len returns the number of shapes.
func (t *Tree) Len() int { return len(t.nodes) }

// Filter returns the shapes with the given role, in paint order.
func (t *Tree) Filter(role Role) []Node {
	var nodes []Node
	for _, n := range t.nodes {
		if n.NodeRole() == role {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Count returns the number of shapes with the given role.
func (t *Tree) Count(role Role) int {
	count := 0
	for _, n := range t.nodes {
		if n.NodeRole() == role {
			count++
		}
	}
	return count
}
