// =============================================================================
// Time-Series Chart Renderer - Main Entry Point
// =============================================================================
//
// USAGE:
//   tschart render   - Render every document in the input directory
//   tschart chart    - Render one CSV file to a standalone SVG
//   tschart detect   - Report how a CSV file would be read
//   tschart version  - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Parsing, layout, serialization and document adaptation
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/timeseries-chart/cmd"
)

func main() {
	cmd.Execute()
}
