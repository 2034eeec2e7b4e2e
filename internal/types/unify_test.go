package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Property 1 (§8): for any t1, t2 that unify with s, s(t1) = s(t2) structurally.
func TestUnifySubstitutionSoundness(t *testing.T) {
	cases := []struct {
		name   string
		t1, t2 Type
	}{
		{"var against prim", Var{ID: 0}, Int},
		{"arrow with var operands", Arrow{From: Var{ID: 0}, To: Int}, Arrow{From: Bool, To: Var{ID: 1}}},
		{"nested list", List{Elem: Var{ID: 0}}, List{Elem: Arrow{From: Int, To: Var{ID: 1}}}},
		{"tuple pairwise", Tuple{Elems: []Type{Var{ID: 0}, String}}, Tuple{Elems: []Type{Int, Var{ID: 1}}}},
		{"declared con", Con{Name: "Option", Args: []Type{Var{ID: 0}}}, Con{Name: "Option", Args: []Type{Bool}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := Unify(c.t1, c.t2, token.Span{})
			require.Nil(t, err)
			require.Equal(t, c.t1.Apply(s), c.t2.Apply(s))
		})
	}
}

func TestUnifyRecordsArePermissive(t *testing.T) {
	a := NewRecord([]RecordField{{Name: "a", Type: Int}, {Name: "b", Type: Int}})
	b := NewRecord([]RecordField{{Name: "a", Type: Int}})
	s, err := Unify(a, b, token.Span{})
	require.Nil(t, err)
	require.Equal(t, a.Apply(s), a)
}

func TestUnifyMismatchReportsTypeError(t *testing.T) {
	_, err := Unify(Int, Bool, token.Span{})
	require.NotNil(t, err)
	require.Equal(t, "T001", err.Code)
}

// Property 2 (§8): for v free in t with t != Var(v), unification fails with
// InfiniteType.
func TestUnifyOccursCheck(t *testing.T) {
	v := Var{ID: 7}
	_, err := Unify(v, Arrow{From: v, To: Int}, token.Span{})
	require.NotNil(t, err)
	require.Equal(t, "T002", err.Code)
}

func TestUnifyOccursCheckNestedInList(t *testing.T) {
	v := Var{ID: 3}
	_, err := Unify(v, List{Elem: Tuple{Elems: []Type{v, Int}}}, token.Span{})
	require.NotNil(t, err)
	require.Equal(t, "T002", err.Code)
}

func TestUnifySameVariableIsNotAnOccursViolation(t *testing.T) {
	v := Var{ID: 4}
	s, err := Unify(v, v, token.Span{})
	require.Nil(t, err)
	require.Empty(t, s)
}

// Property 3 (§8): variables quantified by let-generalization are never
// free in the surrounding environment.
func TestGeneralizeExcludesEnvFreeVars(t *testing.T) {
	env := NewEnv().Extend("x", Mono(Var{ID: 0}))
	scheme := Generalize(env, Arrow{From: Var{ID: 0}, To: Var{ID: 1}})

	require.NotContains(t, scheme.Vars, 0)
	require.Contains(t, scheme.Vars, 1)
}

func TestGeneralizeOverEmptyEnvQuantifiesEverything(t *testing.T) {
	env := NewEnv()
	scheme := Generalize(env, Arrow{From: Var{ID: 2}, To: Var{ID: 3}})
	require.ElementsMatch(t, []int{2, 3}, scheme.Vars)
}

func TestInstantiateFreshensQuantifiedVars(t *testing.T) {
	inf := NewInferencer()
	a := inf.Fresh().(Var)
	scheme := Scheme{Vars: []int{a.ID}, Body: Arrow{From: a, To: a}}
	t1 := inf.Instantiate(scheme)
	t2 := inf.Instantiate(scheme)
	require.NotEqual(t, t1, t2, "two instantiations of the same scheme must use distinct fresh variables")

	arrow1 := t1.(Arrow)
	require.Equal(t, arrow1.From, arrow1.To, "both occurrences of the quantified variable must freshen to the same variable")
}

func TestComposeAppliesLeftOverRight(t *testing.T) {
	s1 := Subst{0: Int}
	s2 := Subst{1: Var{ID: 0}}
	composed := Compose(s1, s2)
	require.Equal(t, Int, Var{ID: 1}.Apply(composed))
}
