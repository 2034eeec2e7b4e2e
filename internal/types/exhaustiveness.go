package types

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// checkExhaustiveness implements §4.2's warning-only exhaustiveness check.
// A match is exhaustive if any arm's pattern is a catch-all (wildcard or
// variable); otherwise the check is specialized by the scrutinee's type
// shape. Failure only ever produces a warning, never a type error.
func (inf *Inferencer) checkExhaustiveness(scrutinee Type, pats []ast.Pattern, span token.Span) {
	if hasCatchAll(pats) {
		return
	}

	switch t := scrutinee.(type) {
	case Prim:
		if t.Kind == BoolKind {
			if !(hasBoolLiteral(pats, true) && hasBoolLiteral(pats, false)) {
				inf.warnNonExhaustive(span, "missing true/false case")
			}
			return
		}
		inf.warnNonExhaustive(span, "no catch-all pattern")

	case Con:
		declared := inf.Variants[t.Name]
		if declared == nil {
			inf.warnNonExhaustive(span, "no catch-all pattern")
			return
		}
		seen := map[string]bool{}
		for _, p := range pats {
			if cp, ok := p.(*ast.ConstructorPattern); ok {
				seen[cp.Name] = true
			}
		}
		for _, name := range declared {
			if !seen[name] {
				inf.warnNonExhaustive(span, "missing constructor "+name)
				return
			}
		}

	case List:
		hasEmpty, hasCons := false, false
		for _, p := range pats {
			switch lp := p.(type) {
			case *ast.ListPattern:
				if len(lp.Elements) == 0 {
					hasEmpty = true
				} else {
					hasCons = true
				}
			case *ast.ConsPattern:
				hasCons = true
			}
		}
		if !(hasEmpty && hasCons) {
			inf.warnNonExhaustive(span, "missing [] or head :: tail case")
		}

	default:
		inf.warnNonExhaustive(span, "no catch-all pattern")
	}
}

func hasCatchAll(pats []ast.Pattern) bool {
	for _, p := range pats {
		switch p.(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			return true
		}
	}
	return false
}

func hasBoolLiteral(pats []ast.Pattern, want bool) bool {
	for _, p := range pats {
		if lp, ok := p.(*ast.LiteralPattern); ok && lp.Kind == ast.LitBool && lp.Bool == want {
			return true
		}
	}
	return false
}

func (inf *Inferencer) warnNonExhaustive(span token.Span, detail string) {
	inf.Warnings = append(inf.Warnings, diagnostics.Warning(diagnostics.Type, "T099", span,
		"non-exhaustive patterns: %s", detail))
}
