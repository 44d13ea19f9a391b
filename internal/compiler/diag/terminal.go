package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor    = color.New(color.FgRed, color.Bold)
	warningColor  = color.New(color.FgYellow, color.Bold)
	locationColor = color.New(color.FgCyan)
	codeColor     = color.New(color.FgWhite, color.Faint)
)

// RenderTerminal writes diagnostics to w with ANSI colors, one block per
// diagnostic, followed by a summary line.
func RenderTerminal(w io.Writer, list *List) {
	diagnostics := list.All()

	errors := 0
	warnings := 0

	for _, d := range diagnostics {
		switch d.Severity {
		case SeverityError:
			errors++
			errorColor.Fprintf(w, "error")
		case SeverityWarning:
			warnings++
			warningColor.Fprintf(w, "warning")
		}

		codeColor.Fprintf(w, "[%s]", d.Code)
		fmt.Fprintf(w, ": %s\n", d.Message)

		if d.Location.File != "" {
			locationColor.Fprintf(w, "  --> %s:%d:%d\n", d.Location.File, d.Location.Line, d.Location.Column)
		}
		fmt.Fprintln(w)
	}

	if errors > 0 || warnings > 0 {
		parts := []string{}
		if errors > 0 {
			parts = append(parts, fmt.Sprintf("%d error(s)", errors))
		}
		if warnings > 0 {
			parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
		}
		fmt.Fprintf(w, "Found %s\n", strings.Join(parts, " and "))
	}
}
