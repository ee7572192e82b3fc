package gen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ovesen/noctua/solver"
)

func TestPhp(t *testing.T) {
	cnf := Php(3, 2)
	// 3 "pigeon somewhere" clauses + 2 holes * 3 pairs of pigeons.
	if len(cnf) != 9 {
		t.Fatalf("expected 9 clauses, got %d", len(cnf))
	}
	s := solver.New(solver.ParseSlice(cnf), solver.DefaultConfig())
	if status := s.Solve(); status != solver.Unsat {
		t.Errorf("expected unsat on Php(3, 2), got %v", status)
	}
	s = solver.New(solver.ParseSlice(Php(3, 3)), solver.DefaultConfig())
	if status := s.Solve(); status != solver.Sat {
		t.Errorf("expected sat on Php(3, 3), got %v", status)
	}
}

func TestPebbling(t *testing.T) {
	cnf := Pebbling(3)
	s := solver.New(solver.ParseSlice(cnf), solver.DefaultConfig())
	if status := s.Solve(); status != solver.Unsat {
		t.Errorf("expected unsat on Pebbling(3), got %v", status)
	}
}

func TestRandReproducible(t *testing.T) {
	first, err := Rand(20, 50, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Rand(20, 50, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed gave different formulas (-first +second):\n%s", diff)
	}
	if len(first) != 50 {
		t.Errorf("expected 50 clauses, got %d", len(first))
	}
	seen := make(map[string]bool)
	for _, clause := range first {
		if len(clause) != 3 {
			t.Fatalf("clause %v does not have 3 literals", clause)
		}
		vars := make(map[int]bool)
		for _, lit := range clause {
			if lit == 0 || lit > 20 || lit < -20 {
				t.Fatalf("invalid literal %d", lit)
			}
			v := lit
			if v < 0 {
				v = -v
			}
			vars[v] = true
		}
		if len(vars) != 3 {
			t.Errorf("clause %v repeats a variable", clause)
		}
		key := clauseKey(clause)
		if seen[key] {
			t.Errorf("clause %v appears twice", clause)
		}
		seen[key] = true
	}
}

func TestRandErrors(t *testing.T) {
	if _, err := Rand(2, 10, 3, 0); err == nil {
		t.Error("expected an error when k exceeds the number of vars")
	}
	if _, err := Rand(2, 100, 2, 0); err == nil {
		t.Error("expected an error when asking for more distinct clauses than exist")
	}
}

func TestCNFOutput(t *testing.T) {
	out := CNF([][]int{{1, -3}, {2}})
	expected := "p cnf 3 2\n1 -3 0\n2 0\n"
	if out != expected {
		t.Errorf("invalid DIMACS output: expected %q, got %q", expected, out)
	}
	if !strings.HasSuffix(out, "0\n") {
		t.Error("formula does not end with a clause terminator")
	}
}
