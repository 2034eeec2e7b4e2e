// Package diagnostics renders lexer/parser/type/runtime/IO problems in the
// `kind: message / --> file:line:col / NNN | source / ^^^^ label` shape
// required by §6/§7, colored through fatih/color the way hashicorp/nomad
// colors its CLI output.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Kind classifies a diagnostic into the taxonomy from §7.
type Kind string

const (
	Syntax  Kind = "syntax"
	Parse   Kind = "parse"
	Type    Kind = "type"
	Runtime Kind = "runtime"
	IO      Kind = "io"
)

// Severity distinguishes hard errors from the non-exhaustive-patterns
// warning channel (§4.2/§7).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is the single carrier every stage uses to report a problem.
type Diagnostic struct {
	Kind       Kind
	Code       string
	Message    string
	Span       token.Span
	File       string
	Severity   Severity
	Suggestion string
}

// Error implements the error interface so Diagnostic can be returned
// wherever Go idiom expects one.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// New constructs an error-severity Diagnostic.
func New(kind Kind, code string, span token.Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), Span: span}
}

// Warning constructs a warning-severity Diagnostic.
func Warning(kind Kind, code string, span token.Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), Span: span, Severity: SeverityWarning}
}

// WithSuggestion attaches a Levenshtein-derived suggestion string.
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	d.Suggestion = s
	return d
}

// lineCol converts a byte offset into 1-based (line, column, lineStart,
// lineEnd) against source.
func lineCol(source string, offset int) (line, col, lineStart, lineEnd int) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1
	lineStart = 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1
	lineEnd = len(source)
	if idx := strings.IndexByte(source[offset:], '\n'); idx >= 0 {
		lineEnd = offset + idx
	}
	return
}

// Render formats d against source in the spec's carat-underline format.
// When useColor is false, no ANSI escapes are emitted (used for
// non-terminal output, e.g. redirected to a file).
func (d *Diagnostic) Render(source string, useColor bool) string {
	label := color.New(color.FgRed, color.Bold)
	if d.Severity == SeverityWarning {
		label = color.New(color.FgYellow, color.Bold)
	}
	if !useColor {
		label.DisableColor()
	}
	lineNo, col, lineStart, lineEnd := lineCol(source, d.Span.Start)
	srcLine := ""
	if lineStart <= len(source) {
		srcLine = source[lineStart:minInt(lineEnd, len(source))]
	}

	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	// Clamp the underline to the current source line.
	if col-1+width > len(srcLine) {
		width = len(srcLine) - (col - 1)
		if width < 1 {
			width = 1
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", label.Sprint(string(d.Kind)), d.Message)
	file := d.File
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(&b, " --> %s:%d:%d\n", file, lineNo, col)
	fmt.Fprintf(&b, "   |\n")
	fmt.Fprintf(&b, "%3d | %s\n", lineNo, srcLine)
	fmt.Fprintf(&b, "   | %s%s\n", strings.Repeat(" ", col-1), label.Sprint(strings.Repeat("^", width)))
	if d.Suggestion != "" {
		fmt.Fprintf(&b, "   = did you mean %q?\n", d.Suggestion)
	}
	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Levenshtein computes edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		curr[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minInt(minInt(del, ins), sub)
		}
		prev, curr = curr, prev
	}
	return prev[m]
}

// thresholdFor returns the max edit distance considered a plausible typo
// for a name of this length, per §4.2: ≤2/≤5/>5 chars get 1/2/3.
func thresholdFor(name string) int {
	n := len([]rune(name))
	switch {
	case n <= 2:
		return 1
	case n <= 5:
		return 2
	default:
		return 3
	}
}

// Suggest finds the closest candidate to name within its length-scaled
// Levenshtein threshold, or "" if none qualifies.
func Suggest(name string, candidates []string) string {
	threshold := thresholdFor(name)
	best := ""
	bestDist := threshold + 1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := Levenshtein(name, c)
		if d <= threshold && d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
