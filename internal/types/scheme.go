package types

// Scheme is a TypeScheme: a MonoType body universally quantified over a set
// of variable ids (§3).
type Scheme struct {
	Vars []int
	Body Type
}

// Mono wraps t as a scheme with no quantifiers.
func Mono(t Type) Scheme { return Scheme{Body: t} }

// FreeVars of a scheme are its body's free variables minus the quantified
// ones.
func (s Scheme) FreeVars() map[int]bool {
	fv := s.Body.FreeVars()
	if len(fv) == 0 {
		return nil
	}
	bound := make(map[int]bool, len(s.Vars))
	for _, v := range s.Vars {
		bound[v] = true
	}
	out := make(map[int]bool, len(fv))
	for id := range fv {
		if !bound[id] {
			out[id] = true
		}
	}
	return out
}

// Apply substitutes through the scheme body, skipping any id that is
// quantified (those are bound by the scheme itself, not by the outer
// substitution).
func (s Scheme) Apply(sub Subst) Scheme {
	if len(sub) == 0 {
		return s
	}
	filtered := make(Subst, len(sub))
	bound := make(map[int]bool, len(s.Vars))
	for _, v := range s.Vars {
		bound[v] = true
	}
	for id, t := range sub {
		if !bound[id] {
			filtered[id] = t
		}
	}
	return Scheme{Vars: s.Vars, Body: s.Body.Apply(filtered)}
}

// Env is a name -> Scheme mapping. It is persistent (copy-on-extend) so a
// child scope can shadow without mutating the parent, matching §3's
// "stack-walkable … mapping" environment.
type Env struct {
	vars   map[string]Scheme
	parent *Env
}

// NewEnv creates an empty top-level environment.
func NewEnv() *Env { return &Env{vars: map[string]Scheme{}} }

// Extend returns a child environment with name bound to scheme, leaving the
// receiver untouched.
func (e *Env) Extend(name string, scheme Scheme) *Env {
	return &Env{vars: map[string]Scheme{name: scheme}, parent: e}
}

// Lookup walks the chain from youngest to oldest.
func (e *Env) Lookup(name string) (Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if s, ok := cur.vars[name]; ok {
			return s, true
		}
	}
	return Scheme{}, false
}

// Names collects every bound name in the chain, innermost first, for
// Levenshtein suggestion candidates.
func (e *Env) Names() []string {
	seen := map[string]bool{}
	var out []string
	for cur := e; cur != nil; cur = cur.parent {
		for name := range cur.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// FreeVars unions the free variables of every scheme reachable in the
// chain — this is "free in the surrounding environment" for §4.2's
// generalization rule.
func (e *Env) FreeVars() map[int]bool {
	var fv map[int]bool
	for cur := e; cur != nil; cur = cur.parent {
		for _, s := range cur.vars {
			fv = union(fv, s.FreeVars())
		}
	}
	return fv
}

// Generalize quantifies every variable free in t but not free in env,
// per §4.2's let-generalization rule.
func Generalize(env *Env, t Type) Scheme {
	envFree := env.FreeVars()
	tFree := t.FreeVars()
	var vars []int
	for id := range tFree {
		if !envFree[id] {
			vars = append(vars, id)
		}
	}
	return Scheme{Vars: vars, Body: t}
}

// Instantiate freshens every quantified variable of s with a new Var,
// producing the MonoType used at this particular use site.
func (inf *Inferencer) Instantiate(s Scheme) Type {
	if len(s.Vars) == 0 {
		return s.Body
	}
	sub := make(Subst, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = inf.Fresh()
	}
	return s.Body.Apply(sub)
}
