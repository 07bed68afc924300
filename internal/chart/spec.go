package chart

// Margins is the space reserved around the plot area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins returns the fixed chart margins.
func DefaultMargins() Margins {
	return Margins{Top: 40, Right: 20, Bottom: 30, Left: 50}
}

// Spec is the rendering configuration of one chart.
type Spec struct {
	// Width and Height are the view box size in pixels.
	Width, Height float64

	// Margin is the space around the plot area.
	Margin Margins

	// Title is drawn centered above the plot when not empty.
	Title string

	// TextColor is the fill of all text. Default: "#000"
	TextColor string

	// BackgroundColor fills the whole view box when not empty.
	BackgroundColor string

	// Language is the code block label that selects chart blocks.
	Language string

	// SaveOriginal keeps the source block next to the chart.
	SaveOriginal bool

	// LegendLabelWidth truncates legend labels to this many terminal cells.
	// 0 keeps labels whole.
	LegendLabelWidth int
}

// DefaultSpec returns the spec used when no options are given.
func DefaultSpec() Spec {
	return Spec{
		Width:            640,
		Height:           300,
		Margin:           DefaultMargins(),
		TextColor:        "#000",
		Language:         "csv",
		SaveOriginal:     true,
	}
}

// plotArea returns the pixel bounds of the plot.
func (s Spec) plotArea() (left, top, right, bottom float64) {
	return s.Margin.Left, s.Margin.Top, s.Width - s.Margin.Right, s.Height - s.Margin.Bottom
}

func (s Spec) textColor() string {
	if s.TextColor == "" {
		return "#000"
	}
	return s.TextColor
}
