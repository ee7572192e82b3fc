// Package check provides an independent checker for unsatisfiability
// certificates in the RUP/DRAT text format.
//
// The package does not share any code with the solver: clauses are plain
// slices of ints and propagation is written as naively as possible, so that
// the checker is easy to audit. Efficiency is not a goal here.
package check

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Problem is a conjunction of clauses over NbVars variables.
type Problem struct {
	Clauses   [][]int
	NbVars    int
	nbClauses int
	units     []int // For each var, 0 if the var is unbound, 1 if true, -1 if false
}

// New returns a checking problem for the given clauses. Literals are
// represented as non-zero ints, following the DIMACS conventions.
func New(clauses [][]int, nbVars int) *Problem {
	pb := &Problem{
		Clauses:   clauses,
		NbVars:    nbVars,
		nbClauses: len(clauses),
		units:     make([]int, nbVars),
	}
	return pb
}

// restore removes all derived clauses, if any.
func (pb *Problem) restore() {
	pb.Clauses = pb.Clauses[:pb.nbClauses]
}

// unsat will be true iff the problem can be proven unsat through unit propagation.
// This method modifies pb.units.
func (pb *Problem) unsat() bool {
	done := make([]bool, len(pb.Clauses)) // clauses that were deemed sat during propagation
	modified := true
	for modified {
		modified = false
		for i, clause := range pb.Clauses {
			if done[i] { // That clause was already proved true
				continue
			}
			unbound := 0
			var unit int // An unbound literal, if any
			sat := false
			for _, lit := range clause {
				v := lit
				if v < 0 {
					v = -v
				}
				binding := pb.units[v-1]
				if binding == 0 {
					unbound++
					if unbound == 1 {
						unit = lit
					} else {
						break
					}
				} else if binding*lit == v { // (binding == -1 && lit < 0) || (binding == 1 && lit > 0)
					sat = true
					break
				}
			}
			if sat {
				done[i] = true
				continue
			}
			if unbound == 0 {
				// All lits are false: problem is UNSAT
				return true
			}
			if unbound == 1 {
				if unit < 0 {
					pb.units[-unit-1] = -1
				} else {
					pb.units[unit-1] = 1
				}
				done[i] = true
				modified = true
			}
		}
	}
	// Problem is either sat or could not be proven unsat through unit propagation
	return false
}

// implied checks whether the clause is implied by the problem through unit
// propagation, by adding the negation of each of its lits as a unit fact.
func implied(pb *Problem, clause []int) bool {
	oldUnits := make([]int, len(pb.units))
	copy(oldUnits, pb.units)
	for _, lit := range clause {
		if lit > 0 {
			pb.units[lit-1] = -1
		} else {
			pb.units[-lit-1] = 1
		}
	}
	res := pb.unsat()
	pb.units = oldUnits // We must restore the previous state
	return res
}

func parseClause(fields []string) ([]int, error) {
	clause := make([]int, 0, len(fields)-1)
	for i, field := range fields {
		lit, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q in certificate", field)
		}
		if lit == 0 {
			if i != len(fields)-1 {
				return nil, fmt.Errorf("literal 0 in the middle of certificate line %q", strings.Join(fields, " "))
			}
			return clause, nil
		}
		clause = append(clause, lit)
	}
	return nil, fmt.Errorf("certificate line %q not terminated by 0", strings.Join(fields, " "))
}

// Unsat parses a certificate and returns true iff it is valid, i.e iff each
// of its clauses is implied by the problem and the previous clauses through
// unit propagation, down to the empty clause.
//
// Lines whose first field is not an integer are ignored; in particular the
// "d" deletion records of DRAT certificates are skipped, which is sound
// since checking against more clauses than the producer kept can only make
// the check succeed more often, never wrongly.
func (pb *Problem) Unsat(cert io.Reader) (valid bool, err error) {
	defer pb.restore()
	sc := bufio.NewScanner(cert)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			// This is not a clause: ignore the line
			continue
		}
		clause, err := parseClause(fields)
		if err != nil {
			return false, err
		}
		if !implied(pb, clause) {
			return false, nil
		}
		if len(clause) == 0 {
			// This is the empty clause: the problem is proven UNSAT.
			return true, nil
		}
		// Since clause is a logical consequence, append it to the problem
		pb.Clauses = append(pb.Clauses, clause)
	}
	if err := sc.Err(); err != nil {
		return false, fmt.Errorf("could not parse certificate: %v", err)
	}
	// The certificate ended without deriving the empty clause
	return false, nil
}
