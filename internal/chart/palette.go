package chart

// category10 is the ten-color categorical palette series are drawn with.
var category10 = [...]string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// Color returns the color of the i-th series. Colors repeat after ten series.
func Color(i int) string {
	n := len(category10)
	return category10[((i%n)+n)%n]
}
