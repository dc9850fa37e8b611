// Package render provides output renderers for TCK result patterns.
package render

import "github.com/dkoosis/tck/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}
