package check

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseCNF reads a problem in the DIMACS CNF format. The parsing is kept
// deliberately simple and lax: comments are skipped, clauses may span
// several lines, and the clause count from the problem line is not enforced.
func ParseCNF(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	nbVars := -1
	var clauses [][]int
	var cur []int
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "%") { // Some benchmark files end with a % marker
			break
		}
		if strings.HasPrefix(line, "p") {
			fields := strings.Fields(line)
			if len(fields) < 4 || fields[1] != "cnf" {
				return nil, fmt.Errorf("invalid problem line %q", line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid number of vars %q", fields[2])
			}
			nbVars = n
			continue
		}
		if nbVars < 0 {
			return nil, fmt.Errorf("clause %q found before problem line", line)
		}
		for _, f := range strings.Fields(line) {
			lit, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid literal %q", f)
			}
			if lit == 0 {
				clauses = append(clauses, cur)
				cur = nil
			} else {
				if lit > nbVars || -lit > nbVars {
					return nil, fmt.Errorf("literal %d out of range for %d vars", lit, nbVars)
				}
				cur = append(cur, lit)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read problem: %v", err)
	}
	if nbVars < 0 {
		return nil, fmt.Errorf("no problem line found")
	}
	if len(cur) != 0 {
		return nil, fmt.Errorf("clause not terminated by 0 at end of input")
	}
	return New(clauses, nbVars), nil
}
