package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Renderer pretty-prints diagnostics as code frames: the offending line
// with a caret run underlining the span, plus any attached note. It only
// needs the raw source buffer and the byte offsets carried by the
// diagnostic; all line/column data is recomputed on demand.
type Renderer struct {
	out   io.Writer
	label string // file label shown in the location header, may be empty

	errHeading  *color.Color
	noteHeading *color.Color
	gutter      *color.Color
	caret       *color.Color
}

// NewRenderer creates a renderer writing to out. label is the file name
// shown in location headers; pass "" for anonymous buffers. colored
// controls ANSI styling.
func NewRenderer(out io.Writer, label string, colored bool) *Renderer {
	r := &Renderer{
		out:         out,
		label:       label,
		errHeading:  color.New(color.Bold, color.FgHiRed),
		noteHeading: color.New(color.Bold, color.FgHiCyan),
		gutter:      color.New(color.FgHiBlue),
		caret:       color.New(color.Bold, color.FgHiRed),
	}
	if !colored {
		r.errHeading.DisableColor()
		r.noteHeading.DisableColor()
		r.gutter.DisableColor()
		r.caret.DisableColor()
	}
	return r
}

// Render writes one diagnostic, followed by its note if present.
func (r *Renderer) Render(src string, d Diagnostic) {
	r.frame(src, r.errHeading.Sprint("error"), d.Msg, d.Loc)
	if d.Note != nil {
		if d.Note.Loc != nil {
			r.frame(src, r.noteHeading.Sprint("note"), d.Note.Msg, *d.Note.Loc)
		} else {
			fmt.Fprintf(r.out, "%s: %s\n", r.noteHeading.Sprint("note"), d.Note.Msg)
		}
	}
}

// RenderAll writes every diagnostic in the list.
func (r *Renderer) RenderAll(src string, list List) {
	for i, d := range list {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.Render(src, d)
	}
}

func (r *Renderer) frame(src string, heading, msg string, loc Loc) {
	pos := PositionOf(src, int(loc.Start))
	line := src[pos.LineStart:pos.LineEnd]

	fmt.Fprintf(r.out, "%s: %s\n", heading, msg)
	if r.label != "" {
		fmt.Fprintf(r.out, "  %s %s:%d:%d\n", r.gutter.Sprint("-->"), r.label, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(r.out, "  %s %d:%d\n", r.gutter.Sprint("-->"), pos.Line, pos.Column)
	}

	width := len(loc.Text(src))
	if end := int(loc.End); end > pos.LineEnd {
		// Multi-line span: underline to the end of the first line.
		width = pos.LineEnd - int(loc.Start)
	}
	if width < 1 {
		width = 1
	}

	fmt.Fprintf(r.out, "%s\n", r.gutter.Sprint("   |"))
	fmt.Fprintf(r.out, "%s %s\n", r.gutter.Sprintf("%3d|", pos.Line), line)
	fmt.Fprintf(r.out, "%s %s%s\n",
		r.gutter.Sprint("   |"),
		strings.Repeat(" ", pos.Column-1),
		r.caret.Sprint(strings.Repeat("^", width)))
}
