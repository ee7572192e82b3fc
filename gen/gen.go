// Package gen generates benchmark CNF formulas.
//
// Formulas are returned as slices of clauses of non-zero ints, following the
// DIMACS conventions, so they can be fed to solver.ParseSlice or written out
// as-is. Php and Pebbling generate well-known unsatisfiable families with
// known hardness properties; Rand generates uniform random k-CNF instances.
package gen

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Php returns the pigeonhole formula stating that each of nbPigeons pigeons
// sits in one of nbHoles holes and that no two pigeons share a hole.
// The variable (p-1)*nbHoles+h, for p and h starting at 1, means
// "pigeon p sits in hole h". The formula is unsatisfiable iff
// nbPigeons > nbHoles; resolution-based solvers need exponential time on it.
func Php(nbPigeons, nbHoles int) [][]int {
	v := func(p, h int) int { return (p-1)*nbHoles + h }
	var cnf [][]int
	for p := 1; p <= nbPigeons; p++ {
		clause := make([]int, nbHoles)
		for h := 1; h <= nbHoles; h++ {
			clause[h-1] = v(p, h)
		}
		cnf = append(cnf, clause)
	}
	for h := 1; h <= nbHoles; h++ {
		for p := 1; p <= nbPigeons; p++ {
			for q := p + 1; q <= nbPigeons; q++ {
				cnf = append(cnf, []int{-v(p, h), -v(q, h)})
			}
		}
	}
	return cnf
}

// Pebbling returns the pebbling contradiction over a pyramid graph of
// height 'height'. Each node of the pyramid carries two variables; sources
// hold at least one of theirs, every inner node inherits the property from
// its two parents, and the sink holds neither. The formula is unsatisfiable
// and is hard for CDCL solvers that do not restart.
func Pebbling(height int) [][]int {
	// Nodes are numbered row by row, from the sources (row 0, 'height' nodes)
	// up to the sink. Node n carries the variables 2n+1 and 2n+2.
	rowStart := make([]int, height)
	n := 0
	for i := 0; i < height; i++ {
		rowStart[i] = n
		n += height - i
	}
	node := func(i, j int) int { return rowStart[i] + j }
	v1 := func(n int) int { return 2*n + 1 }
	v2 := func(n int) int { return 2*n + 2 }
	var cnf [][]int
	for j := 0; j < height; j++ { // Sources
		src := node(0, j)
		cnf = append(cnf, []int{v1(src), v2(src)})
	}
	for i := 1; i < height; i++ {
		for j := 0; j < height-i; j++ {
			c := node(i, j)
			a := node(i-1, j)
			b := node(i-1, j+1)
			for _, la := range []int{v1(a), v2(a)} {
				for _, lb := range []int{v1(b), v2(b)} {
					cnf = append(cnf, []int{-la, -lb, v1(c), v2(c)})
				}
			}
		}
	}
	sink := node(height-1, 0)
	cnf = append(cnf, []int{-v1(sink)}, []int{-v2(sink)})
	return cnf
}

// Rand returns a random k-CNF formula with nbVars variables and nbClauses
// distinct clauses, each over k distinct variables, using the given seed.
// Around the ratio nbClauses/nbVars = 4.26 with k=3, instances are hard on
// average. An error is returned when no such formula exists or when the
// generator cannot find enough distinct clauses.
func Rand(nbVars, nbClauses, k int, seed int64) ([][]int, error) {
	if k <= 0 || k > nbVars {
		return nil, fmt.Errorf("cannot draw %d distinct vars among %d", k, nbVars)
	}
	rnd := rand.New(rand.NewSource(seed))
	seen := make(map[string]bool, nbClauses)
	cnf := make([][]int, 0, nbClauses)
	maxTries := 100 * nbClauses
	for tries := 0; len(cnf) < nbClauses; tries++ {
		if tries > maxTries {
			return nil, fmt.Errorf("could not generate %d distinct clauses over %d vars", nbClauses, nbVars)
		}
		clause := make([]int, 0, k)
		vars := make(map[int]bool, k)
		for len(clause) < k {
			v := rnd.Intn(nbVars) + 1
			if vars[v] {
				continue
			}
			vars[v] = true
			if rnd.Intn(2) == 0 {
				v = -v
			}
			clause = append(clause, v)
		}
		key := clauseKey(clause)
		if seen[key] {
			continue
		}
		seen[key] = true
		cnf = append(cnf, clause)
	}
	return cnf, nil
}

// clauseKey returns a canonical representation of the clause, so that two
// clauses with the same literals in a different order are deemed equal.
func clauseKey(clause []int) string {
	sorted := make([]int, len(clause))
	copy(sorted, clause)
	sort.Ints(sorted)
	return fmt.Sprint(sorted)
}

// CNF returns the DIMACS representation of the given formula.
func CNF(cnf [][]int) string {
	nbVars := 0
	for _, clause := range cnf {
		for _, lit := range clause {
			if lit < 0 {
				lit = -lit
			}
			if lit > nbVars {
				nbVars = lit
			}
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", nbVars, len(cnf))
	for _, clause := range cnf {
		for _, lit := range clause {
			fmt.Fprintf(&b, "%d ", lit)
		}
		b.WriteString("0\n")
	}
	return b.String()
}
