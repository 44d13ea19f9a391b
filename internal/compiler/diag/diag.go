// Package diag defines the structured diagnostics emitted by the compiler.
// Every phase reports the complete batch of diagnostics it found rather than
// stopping at the first one, so a single run surfaces every actionable error.
package diag

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/strata-lang/strata/internal/compiler/ast"
)

// Severity indicates how serious a diagnostic is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Phase identifies the compilation phase that produced a diagnostic
type Phase string

const (
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseDeclare Phase = "declare"
	PhaseBind    Phase = "bind"
	PhaseResolve Phase = "resolve"
	PhaseEmit    Phase = "emit"
)

// Diagnostic is a single compiler message tied to a source location.
type Diagnostic struct {
	Phase    Phase              `json:"phase"`
	Code     string             `json:"code"`
	Severity Severity           `json:"severity"`
	Message  string             `json:"message"`
	Location ast.SourceLocation `json:"location"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s [%s] %s",
		d.Location.File, d.Location.Line, d.Location.Column, d.Severity, d.Code, d.Message)
}

// List accumulates diagnostics across compilation phases.
type List struct {
	diagnostics []Diagnostic
}

// NewList creates an empty diagnostic list.
func NewList() *List {
	return &List{diagnostics: []Diagnostic{}}
}

// Error appends an error diagnostic.
func (l *List) Error(phase Phase, code string, loc ast.SourceLocation, format string, args ...interface{}) {
	l.diagnostics = append(l.diagnostics, Diagnostic{
		Phase:    phase,
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// Warning appends a warning diagnostic.
func (l *List) Warning(phase Phase, code string, loc ast.SourceLocation, format string, args ...interface{}) {
	l.diagnostics = append(l.diagnostics, Diagnostic{
		Phase:    phase,
		Code:     code,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// Add appends an already-built diagnostic.
func (l *List) Add(d Diagnostic) {
	l.diagnostics = append(l.diagnostics, d)
}

// Merge appends all diagnostics from another list.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.diagnostics = append(l.diagnostics, other.diagnostics...)
}

// HasErrors reports whether any error-severity diagnostics were recorded.
func (l *List) HasErrors() bool {
	for _, d := range l.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of recorded diagnostics.
func (l *List) Len() int {
	return len(l.diagnostics)
}

// All returns the diagnostics sorted by file, then line, then column.
// Sorting keeps output stable across runs regardless of phase interleaving.
func (l *List) All() []Diagnostic {
	sorted := make([]Diagnostic, len(l.diagnostics))
	copy(sorted, l.diagnostics)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Location, sorted[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return sorted
}

// Summary renders every diagnostic on its own line, sorted by location.
func (l *List) Summary() string {
	if len(l.diagnostics) == 0 {
		return "no diagnostics"
	}
	var sb strings.Builder
	for i, d := range l.All() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// MarshalJSON renders the diagnostic list as a JSON array.
func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.All())
}
