// Package reporter provides tck.Reporter front ends: rendered console output,
// a machine-readable JSON summary for CI, and structured log lines.
package reporter

import (
	"fmt"
	"io"

	"github.com/dkoosis/tck/pkg/mapper"
	"github.com/dkoosis/tck/pkg/render"
	"github.com/dkoosis/tck/pkg/results"
)

// Rendered collects a run and, at EndTests, writes it through a renderer.
type Rendered struct {
	*results.Collector
	w        io.Writer
	renderer render.Renderer
	err      error
}

// NewRendered returns a reporter writing r's output to w.
func NewRendered(w io.Writer, r render.Renderer) *Rendered {
	rep := &Rendered{w: w, renderer: r}
	rep.Collector = results.NewCollector(rep.flush)
	return rep
}

// NewText returns a console reporter styled with theme.
func NewText(w io.Writer, theme render.Theme, width int) *Rendered {
	return NewRendered(w, render.NewTerminal(theme, width))
}

// NewLLM returns a plain-text reporter for AI consumption.
func NewLLM(w io.Writer) *Rendered {
	return NewRendered(w, render.NewLLM())
}

// Err returns the first write error, if any.
func (r *Rendered) Err() error { return r.err }

func (r *Rendered) flush(m *results.Matrix) {
	out := r.renderer.Render(mapper.FromMatrix(m))
	if _, err := fmt.Fprint(r.w, out); err != nil && r.err == nil {
		r.err = err
	}
}
