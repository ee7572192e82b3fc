package solver

import (
	"fmt"
	"strings"
)

// A Problem is a list of clauses & a nb of vars.
type Problem struct {
	NbVars  int        // Total nb of vars
	Clauses []*Clause  // List of non-empty, non-unit clauses
	Status  Status     // Can be trivially Unsat (empty clause met or inferred), trivially Sat, or Indet.
	Units   []Lit      // Unit literals found in the problem or derived while simplifying it.
	Model   []decLevel // For each var, its root binding: 0 unbound, 1 true, -1 false.
}

// CNF returns a DIMACS CNF representation of the problem.
func (pb *Problem) CNF() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", pb.NbVars, len(pb.Clauses)+len(pb.Units))
	for _, unit := range pb.Units {
		fmt.Fprintf(&b, "%d 0\n", unit.Int())
	}
	for _, clause := range pb.Clauses {
		fmt.Fprintf(&b, "%s\n", clause.CNF())
	}
	return b.String()
}

// Satisfied returns true iff the given full model makes every unit and
// every clause of the problem true. It is meant as an independent check of
// a Sat answer, so it reads the clauses naively.
func (pb *Problem) Satisfied(model []bool) bool {
	if len(model) < pb.NbVars {
		return false
	}
	for _, unit := range pb.Units {
		if model[unit.Var()] != unit.IsPositive() {
			return false
		}
	}
	for _, c := range pb.Clauses {
		sat := false
		for i := 0; i < c.Len(); i++ {
			lit := c.Get(i)
			if model[lit.Var()] == lit.IsPositive() {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

func (pb *Problem) updateStatus(nbClauses int) {
	pb.Clauses = pb.Clauses[:nbClauses]
	if pb.Status == Indet && nbClauses == 0 {
		pb.Status = Sat
	}
}

func (pb *Problem) addUnit(lit Lit) {
	v := lit.Var()
	if pb.Model[v] != 0 {
		if (pb.Model[v] == 1) != lit.IsPositive() {
			pb.Status = Unsat
		}
		return
	}
	if lit.IsPositive() {
		pb.Model[v] = 1
	} else {
		pb.Model[v] = -1
	}
	pb.Units = append(pb.Units, lit)
}

// simplify runs unit propagation on the problem's clauses until fixpoint.
// Satisfied clauses are removed, false literals are stripped, and any
// derived unit is added to pb.Units.
func (pb *Problem) simplify() {
	nbClauses := len(pb.Clauses)
	i := 0
	for i < nbClauses {
		c := pb.Clauses[i]
		nbLits := c.Len()
		clauseSat := false
		j := 0
		for j < nbLits {
			lit := c.Get(j)
			if pb.Model[lit.Var()] == 0 {
				j++
			} else if (pb.Model[lit.Var()] == 1) == lit.IsPositive() {
				clauseSat = true
				break
			} else {
				nbLits--
				c.Set(j, c.Get(nbLits))
			}
		}
		switch {
		case clauseSat:
			nbClauses--
			pb.Clauses[i] = pb.Clauses[nbClauses]
		case nbLits == 0:
			pb.Status = Unsat
			return
		case nbLits == 1:
			pb.addUnit(c.Get(0))
			if pb.Status == Unsat {
				return
			}
			nbClauses--
			pb.Clauses[i] = pb.Clauses[nbClauses]
			i = 0 // This unit might have made an earlier clause unit or sat.
		default:
			if c.Len() != nbLits {
				c.Shrink(nbLits)
			}
			i++
		}
	}
	pb.updateStatus(nbClauses)
}

// EliminatePureLiterals binds, at the root level, every variable that
// appears with a single polarity and simplifies the problem accordingly,
// repeating until fixpoint. It returns the number of variables eliminated.
//
// The transformation preserves satisfiability but is not a consequence of
// the formula, so an Unsat certificate obtained after it cannot be checked
// against the original clauses by unit propagation alone. Whether it pays
// off at all is an empirical question: on DPLL-style search it was measured
// to slow solving down more often than not.
func (pb *Problem) EliminatePureLiterals() int {
	nbEliminated := 0
	for pb.Status == Indet {
		occs := make([]int, pb.NbVars*2)
		for _, c := range pb.Clauses {
			for i := 0; i < c.Len(); i++ {
				occs[c.Get(i)]++
			}
		}
		pure := 0
		for i := 0; i < pb.NbVars; i++ {
			if pb.Model[i] != 0 {
				continue
			}
			lit := Var(i).Lit()
			pos, neg := occs[lit], occs[lit.Negation()]
			if pos == 0 && neg == 0 {
				continue
			}
			if pos == 0 || neg == 0 {
				pb.addUnit(Var(i).SignedLit(pos == 0))
				pure++
			}
		}
		if pure == 0 {
			return nbEliminated
		}
		nbEliminated += pure
		pb.simplify()
	}
	return nbEliminated
}
