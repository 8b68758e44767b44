package placer

import (
	"fmt"

	"github.com/kegliz/nacompile/compiler/model"
)

// Diagnostic reports a single verification failure. Verify never aborts
// the caller's flow; it only reports.
type Diagnostic struct {
	Message string
}

// Verify checks that mapping is a well-formed placement on an nx x ny
// chip: every site is in-bounds and no two qubits share a site.
func Verify(mapping model.Mapping, nx, ny int) []Diagnostic {
	var diags []Diagnostic
	seen := make(map[model.Site]int, len(mapping))
	for q, s := range mapping {
		if s.X < 0 || s.X >= nx || s.Y < 0 || s.Y >= ny {
			diags = append(diags, Diagnostic{fmt.Sprintf("qubit %d placed at out-of-bounds site (%d,%d)", q, s.X, s.Y)})
			continue
		}
		if prior, ok := seen[s]; ok {
			diags = append(diags, Diagnostic{fmt.Sprintf("qubits %d and %d both occupy site (%d,%d)", prior, q, s.X, s.Y)})
			continue
		}
		seen[s] = q
	}
	return diags
}
