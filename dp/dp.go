// Package dp implements the original Davis-Putnam procedure, which decides
// satisfiability by eliminating variables through resolution instead of
// searching through assignments.
//
// The procedure interleaves four simplification rules (unit propagation,
// tautology removal, pure literal elimination and subsumption elimination)
// with resolution steps on the most frequent variable. Memory usage can grow
// exponentially with the number of variables, so the package is only meant
// for small instances and for cross-checking other solvers.
package dp

import (
	"fmt"
	"sort"
	"strings"
)

// Stats count the simplification and resolution steps performed.
type Stats struct {
	NbPropagations  int
	NbResolutions   int
	NbPureRemoved   int // Clauses removed by pure literal elimination
	NbSubsumptions  int
	NbEliminatedVar int
}

// A clause is a set of non-complementary literals, kept sorted by variable.
type clause []int

func (c clause) key() string {
	var b strings.Builder
	for _, lit := range c {
		fmt.Fprintf(&b, "%d ", lit)
	}
	return b.String()
}

func (c clause) has(lit int) bool {
	for _, l := range c {
		if l == lit {
			return true
		}
	}
	return false
}

// subsumes returns true iff every literal of c appears in other.
func (c clause) subsumes(other clause) bool {
	if len(c) > len(other) {
		return false
	}
	for _, lit := range c {
		if !other.has(lit) {
			return false
		}
	}
	return true
}

// normalize sorts the literals by variable, removes duplicates and reports
// whether the clause is a tautology.
func normalize(lits []int) (clause, bool) {
	c := make(clause, len(lits))
	copy(c, lits)
	sort.Slice(c, func(i, j int) bool {
		vi, vj := c[i], c[j]
		if vi < 0 {
			vi = -vi
		}
		if vj < 0 {
			vj = -vj
		}
		if vi != vj {
			return vi < vj
		}
		return c[i] < c[j]
	})
	out := c[:0]
	for _, lit := range c {
		if len(out) > 0 {
			if prev := out[len(out)-1]; prev == lit {
				continue
			} else if prev == -lit {
				return nil, true
			}
		}
		out = append(out, lit)
	}
	return out, false
}

// A formula is a set of clauses, deduplicated by their canonical key.
type formula map[string]clause

func (f formula) add(c clause) { f[c.key()] = c }

func (f formula) hasEmpty() bool {
	_, ok := f[""]
	return ok
}

type solver struct {
	f     formula
	stats Stats
}

// unitPropagate applies every unit clause of the formula until fixpoint.
// It returns false when the empty clause is derived.
func (s *solver) unitPropagate() bool {
	for {
		var unit int
		for _, c := range s.f {
			if len(c) == 0 {
				return false
			}
			if len(c) == 1 {
				unit = c[0]
				break
			}
		}
		if unit == 0 {
			return !s.f.hasEmpty()
		}
		s.stats.NbPropagations++
		next := make(formula, len(s.f))
		for _, c := range s.f {
			if c.has(unit) {
				continue
			}
			if c.has(-unit) {
				shorter := make(clause, 0, len(c)-1)
				for _, lit := range c {
					if lit != -unit {
						shorter = append(shorter, lit)
					}
				}
				next.add(shorter)
			} else {
				next.add(c)
			}
		}
		s.f = next
	}
}

// pureLiteralElim removes all clauses containing a literal whose negation
// never appears.
func (s *solver) pureLiteralElim() {
	polarity := make(map[int]bool)
	for _, c := range s.f {
		for _, lit := range c {
			polarity[lit] = true
		}
	}
	for key, c := range s.f {
		for _, lit := range c {
			if !polarity[-lit] {
				delete(s.f, key)
				s.stats.NbPureRemoved++
				break
			}
		}
	}
}

// subsumptionElim removes every clause that is a superset of another one.
func (s *solver) subsumptionElim() {
	clauses := make([]clause, 0, len(s.f))
	for _, c := range s.f {
		clauses = append(clauses, c)
	}
	sort.Slice(clauses, func(i, j int) bool { return len(clauses[i]) < len(clauses[j]) })
	for i, c := range clauses {
		if c == nil {
			continue
		}
		for j := i + 1; j < len(clauses); j++ {
			if clauses[j] != nil && c.subsumes(clauses[j]) {
				s.stats.NbSubsumptions++
				delete(s.f, clauses[j].key())
				clauses[j] = nil
			}
		}
	}
}

// selectVar returns the variable with the most occurrences.
func (s *solver) selectVar() int {
	counts := make(map[int]int)
	for _, c := range s.f {
		for _, lit := range c {
			if lit < 0 {
				lit = -lit
			}
			counts[lit]++
		}
	}
	best, bestCount := 0, -1
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best, bestCount = v, count
		}
	}
	return best
}

// eliminate resolves away the given variable: all resolvents between clauses
// containing v and clauses containing -v replace those clauses.
func (s *solver) eliminate(v int) {
	s.stats.NbEliminatedVar++
	var pos, neg []clause
	next := make(formula, len(s.f))
	for _, c := range s.f {
		switch {
		case c.has(v):
			pos = append(pos, c)
		case c.has(-v):
			neg = append(neg, c)
		default:
			next.add(c)
		}
	}
	for _, c1 := range pos {
		for _, c2 := range neg {
			s.stats.NbResolutions++
			merged := make([]int, 0, len(c1)+len(c2)-2)
			for _, lit := range c1 {
				if lit != v {
					merged = append(merged, lit)
				}
			}
			for _, lit := range c2 {
				if lit != -v {
					merged = append(merged, lit)
				}
			}
			if resolvent, tautology := normalize(merged); !tautology {
				next.add(resolvent)
			}
		}
	}
	s.f = next
}

// Solve decides the formula by variable elimination. Unlike search-based
// solvers it produces no model, only the satisfiability answer.
func Solve(cnf [][]int) (bool, Stats) {
	s := &solver{f: make(formula, len(cnf))}
	for _, lits := range cnf {
		if c, tautology := normalize(lits); !tautology {
			s.f.add(c)
		}
	}
	for {
		for {
			before := len(s.f)
			if !s.unitPropagate() {
				return false, s.stats
			}
			s.pureLiteralElim()
			s.subsumptionElim()
			if len(s.f) == before {
				break
			}
		}
		if len(s.f) == 0 {
			return true, s.stats
		}
		if s.f.hasEmpty() {
			return false, s.stats
		}
		s.eliminate(s.selectVar())
	}
}
