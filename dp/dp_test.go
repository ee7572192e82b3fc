package dp

import "testing"

func TestSolveSat(t *testing.T) {
	cnf := [][]int{{1, 2}, {-1, 3}, {-2, -3}, {3, 2}}
	sat, _ := Solve(cnf)
	if !sat {
		t.Fatalf("expected sat for %v", cnf)
	}
}

func TestSolveUnsat(t *testing.T) {
	cnf := [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	sat, stats := Solve(cnf)
	if sat {
		t.Fatalf("expected unsat for %v", cnf)
	}
	if stats.NbResolutions == 0 && stats.NbPropagations == 0 {
		t.Error("expected at least one resolution or propagation step")
	}
}

func TestSolveEmptyFormula(t *testing.T) {
	if sat, _ := Solve(nil); !sat {
		t.Error("expected sat on the empty formula")
	}
}

func TestSolveEmptyClause(t *testing.T) {
	if sat, _ := Solve([][]int{{}}); sat {
		t.Error("expected unsat on a formula with the empty clause")
	}
}

func TestSolveContradictoryUnits(t *testing.T) {
	sat, stats := Solve([][]int{{1}, {-1}})
	if sat {
		t.Error("expected unsat on contradictory units")
	}
	if stats.NbPropagations == 0 {
		t.Error("expected unit propagation to fire")
	}
}

func TestSolveTautologyOnly(t *testing.T) {
	// A formula made of tautologies only is trivially satisfiable.
	if sat, _ := Solve([][]int{{1, -1}, {2, -2, 3}}); !sat {
		t.Error("expected sat on a formula of tautologies")
	}
}

func TestSolvePureLiterals(t *testing.T) {
	// 1 and 2 only appear positively: everything is removed by pure
	// literal elimination, no resolution needed.
	cnf := [][]int{{1, 2}, {1}, {2}}
	sat, stats := Solve(cnf)
	if !sat {
		t.Fatalf("expected sat for %v", cnf)
	}
	if stats.NbResolutions != 0 {
		t.Errorf("expected no resolution, got %d", stats.NbResolutions)
	}
}

func TestSolveSubsumption(t *testing.T) {
	// {1, 2} subsumes {1, 2, 3}; after elimination of var 1 the formula
	// stays decidable.
	cnf := [][]int{{1, 2}, {1, 2, 3}, {-1, -2}, {-1, -2, -3}}
	sat, stats := Solve(cnf)
	if !sat {
		t.Fatalf("expected sat for %v", cnf)
	}
	if stats.NbSubsumptions == 0 {
		t.Error("expected subsumption to fire")
	}
}

func TestSolvePigeonhole(t *testing.T) {
	// Pigeonhole with 3 pigeons and 2 holes, small enough for resolution.
	cnf := [][]int{
		{1, 2}, {3, 4}, {5, 6},
		{-1, -3}, {-1, -5}, {-3, -5},
		{-2, -4}, {-2, -6}, {-4, -6},
	}
	if sat, _ := Solve(cnf); sat {
		t.Error("expected unsat on the pigeonhole formula")
	}
}
