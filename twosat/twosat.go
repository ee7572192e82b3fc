// Package twosat decides the satisfiability of formulas whose clauses
// contain at most two literals.
//
// For such formulas, propagating one polarity of a variable and, on failure,
// the other, is a complete decision procedure, so the whole process runs in
// polynomial time. The package exists because many encodings (implication
// graphs, simple schedulings) stay within that fragment, where running a
// full CDCL search would be a waste.
package twosat

import "fmt"

type state struct {
	assign []int8    // For each var, 0 if unbound, 1 if true, -1 if false
	occ    [][][]int // For each literal, the clauses where it appears
	trail  []int     // Bound literals, in order, for undoing
}

// index maps the CNF literal lit to its occurrence slot.
func index(lit int) int {
	if lit < 0 {
		return 2*(-lit-1) + 1
	}
	return 2 * (lit - 1)
}

// value returns the literal's current binding: 1 true, -1 false, 0 unbound.
func (s *state) value(lit int) int8 {
	v := lit
	if v < 0 {
		v = -v
	}
	if lit < 0 {
		return -s.assign[v-1]
	}
	return s.assign[v-1]
}

// propagate binds lit and propagates through binary clauses.
// It returns false when a conflict arises.
func (s *state) propagate(lit int) bool {
	if val := s.value(lit); val != 0 {
		return val > 0
	}
	s.bind(lit)
	queue := []int{lit}
	for len(queue) > 0 {
		lit := queue[0]
		queue = queue[1:]
		for _, clause := range s.occ[index(-lit)] {
			other := 0 // The clause's other literal, if any
			for _, l := range clause {
				if l != -lit {
					other = l
				}
			}
			if other == 0 {
				return false // Unit clause {-lit} was falsified
			}
			switch s.value(other) {
			case -1:
				return false
			case 0:
				s.bind(other)
				queue = append(queue, other)
			}
		}
	}
	return true
}

func (s *state) bind(lit int) {
	v := lit
	val := int8(1)
	if lit < 0 {
		v = -v
		val = -1
	}
	s.assign[v-1] = val
	s.trail = append(s.trail, lit)
}

// undo unbinds every literal bound after the given trail mark.
func (s *state) undo(mark int) {
	for i := mark; i < len(s.trail); i++ {
		lit := s.trail[i]
		if lit < 0 {
			lit = -lit
		}
		s.assign[lit-1] = 0
	}
	s.trail = s.trail[:mark]
}

// Solve decides the formula and, when it is satisfiable, returns a model as
// a slice giving the chosen polarity of each variable, in order.
// An error is returned when a clause contains more than two literals.
func Solve(cnf [][]int, nbVars int) (sat bool, model []int, err error) {
	s := &state{
		assign: make([]int8, nbVars),
		occ:    make([][][]int, nbVars*2),
	}
	for _, clause := range cnf {
		if len(clause) > 2 {
			return false, nil, fmt.Errorf("clause %v has more than two literals", clause)
		}
		if len(clause) == 0 {
			return false, nil, nil
		}
		for _, lit := range clause {
			if lit == 0 || lit > nbVars || -lit > nbVars {
				return false, nil, fmt.Errorf("invalid literal %d for %d vars", lit, nbVars)
			}
			s.occ[index(lit)] = append(s.occ[index(lit)], clause)
		}
	}
	for _, clause := range cnf { // Bind facts first
		if len(clause) == 1 {
			if !s.propagate(clause[0]) {
				return false, nil, nil
			}
		}
	}
	for v := 1; v <= nbVars; v++ {
		if s.assign[v-1] != 0 {
			continue
		}
		mark := len(s.trail)
		if !s.propagate(v) {
			s.undo(mark)
			if !s.propagate(-v) {
				return false, nil, nil
			}
		}
	}
	model = make([]int, nbVars)
	for v := 1; v <= nbVars; v++ {
		if s.assign[v-1] < 0 {
			model[v-1] = -v
		} else {
			model[v-1] = v
		}
	}
	return true, model, nil
}
