package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects how command results are printed.
type Mode string

// Output modes.
const (
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
	ModeYAML Mode = "yaml"
)

// Renderer writes command results in the configured mode.
type Renderer struct {
	w    io.Writer
	mode Mode
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{w: w, mode: mode}
}

// EffectiveMode resolves auto: text on a terminal, JSON otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.w.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec
		return ModeText
	}
	return ModeJSON
}

// Writer returns the underlying writer.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// Println writes a line of text.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Printf writes formatted text.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// Data writes v as JSON or YAML, depending on the mode.
func (r *Renderer) Data(v any) error {
	if r.EffectiveMode() == ModeYAML {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes rows as a light-styled table.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}
