package solver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// sanitizeLits removes duplicate literals and reports whether the clause is
// a tautology, i.e contains both a literal and its negation. Tautologies
// are true under every assignment and are dropped at creation time, so no
// clause owned by the solver ever contains complementary literals.
func sanitizeLits(lits []Lit) (clean []Lit, tautology bool) {
	clean = lits[:0]
	for _, lit := range lits {
		dup := false
		for _, prev := range clean {
			if prev == lit {
				dup = true
				break
			}
			if prev == lit.Negation() {
				return nil, true
			}
		}
		if !dup {
			clean = append(clean, lit)
		}
	}
	return clean, false
}

// ParseSlice parses a slice of slices of ints and returns the equivalent
// problem. Values must be valid non-zero CNF literals.
func ParseSlice(cnf [][]int) *Problem {
	var pb Problem
	for _, line := range cnf {
		lits := make([]Lit, len(line))
		for j, val := range line {
			if val == 0 {
				panic("null literal in clause")
			}
			lits[j] = IntToLit(val)
			if v := int(lits[j].Var()); v >= pb.NbVars {
				pb.NbVars = v + 1
			}
		}
		lits, tautology := sanitizeLits(lits)
		if tautology {
			continue
		}
		if len(lits) == 0 {
			pb.Status = Unsat
			return &pb
		}
		pb.Clauses = append(pb.Clauses, NewClause(lits))
	}
	pb.Model = make([]decLevel, pb.NbVars)
	pb.simplify()
	return &pb
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// All spaces before the int value are ignored.
// Can return EOF.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, fmt.Errorf("could not read digit: %v", err)
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("cannot read int: %v", err)
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, fmt.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if isSpace(*b) {
			break
		}
	}
	res *= neg
	if err == io.EOF { // The stream may end right after a value
		err = nil
	}
	return res, err
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, fmt.Errorf("cannot read header: %v", err)
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "cnf" {
		return 0, 0, fmt.Errorf("invalid syntax %q in header", "p "+line)
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil || nbVars < 0 {
		return 0, 0, fmt.Errorf("nbvars is not a valid count: %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil || nbClauses < 0 {
		return 0, 0, fmt.Errorf("nbclauses is not a valid count: %q", fields[2])
	}
	return nbVars, nbClauses, nil
}

// ParseCNF parses a DIMACS CNF stream and returns the corresponding
// Problem. The problem line is mandatory and the stream must contain
// exactly the announced number of clauses, each terminated by a 0.
func ParseCNF(f io.Reader) (*Problem, error) {
	r := bufio.NewReader(f)
	var pb Problem
	nbClauses := -1
	nbParsed := 0
	b, err := r.ReadByte()
	for err == nil {
		if b == 'c' { // Ignore comment
			b, err = r.ReadByte()
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		} else if b == 'p' { // Parse header
			if nbClauses >= 0 {
				return nil, fmt.Errorf("duplicate problem line")
			}
			pb.NbVars, nbClauses, err = parseHeader(r)
			if err != nil {
				return nil, fmt.Errorf("cannot parse CNF header: %v", err)
			}
			pb.Model = make([]decLevel, pb.NbVars)
			pb.Clauses = make([]*Clause, 0, nbClauses)
		} else {
			if nbClauses < 0 {
				return nil, fmt.Errorf("clause found before problem line")
			}
			lits := make([]Lit, 0, 3)
			for {
				val, err := readInt(&b, r)
				if err == io.EOF {
					if len(lits) != 0 {
						return nil, fmt.Errorf("clause not terminated by 0 at EOF")
					}
					break // Trailing whitespace at the end of the stream is fine.
				}
				if err != nil {
					return nil, fmt.Errorf("cannot parse clause: %v", err)
				}
				if val == 0 {
					nbParsed++
					lits, tautology := sanitizeLits(lits)
					if !tautology {
						if len(lits) == 0 {
							pb.Status = Unsat
						} else {
							pb.Clauses = append(pb.Clauses, NewClause(lits))
						}
					}
					break
				}
				if val > pb.NbVars || -val > pb.NbVars {
					return nil, fmt.Errorf("invalid literal %d for problem with %d vars only", val, pb.NbVars)
				}
				lits = append(lits, IntToLit(val))
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, err
	}
	if nbClauses < 0 {
		return nil, fmt.Errorf("no problem line found")
	}
	if nbParsed != nbClauses {
		return nil, fmt.Errorf("problem line announces %d clauses but %d were found", nbClauses, nbParsed)
	}
	if pb.Status == Unsat {
		return &pb, nil
	}
	pb.simplify()
	return &pb, nil
}
