package diag

import "fmt"

// Loc is a half-open byte range [Start, End) into the source buffer
// a diagnostic or token refers to.
type Loc struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes the location covers.
func (l Loc) Len() int {
	return int(l.End - l.Start)
}

// Text returns the slice of src the location covers.
func (l Loc) Text(src string) string {
	return src[l.Start:l.End]
}

// Note is a secondary message attached to a diagnostic, typically a
// cross-reference ("other declaration here"). The location is optional.
type Note struct {
	Msg string
	Loc *Loc
}

// Diagnostic is a reported problem: a message, the primary source span,
// and an optional note. Both the parser and the analyser produce this
// exact shape so consumers need a single rendering path.
type Diagnostic struct {
	Msg  string
	Loc  Loc
	Note *Note
}

// WithNote returns a copy of the diagnostic carrying the given note.
func (d Diagnostic) WithNote(msg string, loc Loc) Diagnostic {
	d.Note = &Note{Msg: msg, Loc: &loc}
	return d
}

// New creates a diagnostic for the given span.
func New(msg string, loc Loc) Diagnostic {
	return Diagnostic{Msg: msg, Loc: loc}
}

// Newf creates a diagnostic with a formatted message.
func Newf(loc Loc, format string, args ...any) Diagnostic {
	return Diagnostic{Msg: fmt.Sprintf(format, args...), Loc: loc}
}

// List is an ordered collection of diagnostics. A nil or empty list
// means "no problems". Lists are plain values: each producer returns its
// own list and no state is shared between invocations.
type List []Diagnostic

// Add appends a diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Addf appends a diagnostic with a formatted message.
func (l *List) Addf(loc Loc, format string, args ...any) {
	l.Add(Newf(loc, format, args...))
}

// HasErrors reports whether the list contains any diagnostics.
func (l List) HasErrors() bool {
	return len(l) > 0
}

// Error implements the error interface so a List can cross error-shaped
// boundaries (the root facade returns one as error).
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Msg
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Msg, len(l)-1)
	}
}
