package twosat

import "testing"

func satisfies(cnf [][]int, model []int) bool {
	for _, clause := range cnf {
		sat := false
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if model[v-1] == lit {
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

func TestSolveSat(t *testing.T) {
	// An implication cycle 1 -> 2 -> 3 -> 1 plus the fact 1.
	cnf := [][]int{{-1, 2}, {-2, 3}, {-3, 1}, {1}}
	sat, model, err := Solve(cnf, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !sat {
		t.Fatalf("expected sat for %v", cnf)
	}
	if !satisfies(cnf, model) {
		t.Errorf("model %v does not satisfy %v", model, cnf)
	}
}

func TestSolveUnsat(t *testing.T) {
	cnf := [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	sat, _, err := Solve(cnf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sat {
		t.Fatalf("expected unsat for %v", cnf)
	}
}

func TestSolveContradictoryUnits(t *testing.T) {
	sat, _, err := Solve([][]int{{1}, {-1}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if sat {
		t.Error("expected unsat on contradictory units")
	}
}

func TestSolveEmptyClause(t *testing.T) {
	sat, _, err := Solve([][]int{{1, 2}, {}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sat {
		t.Error("expected unsat on a formula containing the empty clause")
	}
}

func TestSolveFreeVars(t *testing.T) {
	// Var 2 appears nowhere: it must still get a polarity in the model.
	sat, model, err := Solve([][]int{{1, 3}, {-3}}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !sat {
		t.Fatal("expected sat")
	}
	if len(model) != 3 || model[1] == 0 {
		t.Errorf("model %v does not bind all vars", model)
	}
	if model[2] != -3 {
		t.Errorf("expected -3 in model, got %v", model)
	}
}

func TestSolveRejectsWideClauses(t *testing.T) {
	if _, _, err := Solve([][]int{{1, 2, 3}}, 3); err == nil {
		t.Error("expected an error on a 3-literal clause")
	}
}

func TestSolveBacktrackFirstPolarity(t *testing.T) {
	// Binding 1 true propagates a conflict, so the solver must retry with 1 false.
	cnf := [][]int{{-1, 2}, {-2, -1}, {1, 2}}
	sat, model, err := Solve(cnf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !sat {
		t.Fatalf("expected sat for %v", cnf)
	}
	if !satisfies(cnf, model) {
		t.Errorf("model %v does not satisfy %v", model, cnf)
	}
}
